package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/config"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/repositories"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/services"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils/addressval"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App wires config, DB pool, repositories, and services together.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool

	PropertyRepo   repositories.PropertyRepository
	UnitRepo       repositories.UnitRepository
	TenantRepo     repositories.TenantRepository
	InvitationRepo repositories.InvitationRepository

	PropertyWizard services.PropertyWizardService
	TenantWizard   services.TenantWizardService
	Invitations    services.InvitationService
	InviteCleanup  services.InvitationCleanupService
}

func NewApp(cfg *config.Config) (*App, error) {
	dbPool, err := connectWithRetry(cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	propertyRepo := repositories.NewPropertyRepository(dbPool)
	unitRepo := repositories.NewUnitRepository(dbPool)
	tenantRepo := repositories.NewTenantRepository(dbPool)
	invitationRepo := repositories.NewInvitationRepository(dbPool)

	addrClient, err := addressval.NewClient(
		cfg.AddressValidationAPIKey, cfg.AddressValidationBaseURL, 2, time.Second)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	email := services.NewSendgridSender(cfg.SendgridAPIKey, cfg.SendgridFromEmail, cfg.SendgridFromName)

	return &App{
		Config:         cfg,
		DB:             dbPool,
		PropertyRepo:   propertyRepo,
		UnitRepo:       unitRepo,
		TenantRepo:     tenantRepo,
		InvitationRepo: invitationRepo,
		PropertyWizard: services.NewPropertyWizardService(propertyRepo, unitRepo, addrClient),
		TenantWizard:   services.NewTenantWizardService(tenantRepo, unitRepo, propertyRepo),
		Invitations: services.NewInvitationService(
			invitationRepo, tenantRepo, unitRepo, propertyRepo,
			email, cfg.AppURL, cfg.InviteTTL,
		),
		InviteCleanup: services.NewInvitationCleanupService(invitationRepo),
	}, nil
}

func connectWithRetry(dbURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = pgxpool.Connect(ctx, dbURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf("Database connection attempt %d/%d failed", i, maxRetries)
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, err
}

func (a *App) Close() {
	utils.Logger.Info("bloom-rent app shutting down.")
	a.DB.Close()
}

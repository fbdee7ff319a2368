package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/app"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/config"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/controllers"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/middleware"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool, repositories, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application.DB)
	propertyCtrl := controllers.NewPropertyWizardController(application.PropertyWizard)
	tenantCtrl := controllers.NewTenantWizardController(application.TenantWizard, application.Invitations)
	inviteCtrl := controllers.NewInvitationController(application.Invitations)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	// Public: invite acceptance
	router.HandleFunc(routes.InviteAccept, inviteCtrl.AcceptHandler).Methods(http.MethodGet)

	// Owner-authenticated surface
	owner := router.PathPrefix("/owners").Subrouter()
	owner.Use(middleware.AuthMiddleware(cfg.JWTPublicKey))

	owner.HandleFunc(trimOwners(routes.Properties), propertyCtrl.ListPropertiesHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddProperty), propertyCtrl.EntryHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddPropertyAddress), propertyCtrl.AddressFormHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddPropertyAddress), propertyCtrl.SaveAddressHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddPropertyType), propertyCtrl.PropertyTypeFormHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddPropertyType), propertyCtrl.SavePropertyTypeHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddPropertySingleUnit), propertyCtrl.UnitDetailsFormHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddPropertySingleUnit), propertyCtrl.SaveSingleUnitHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddPropertyMultiUnit), propertyCtrl.UnitDetailsFormHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddPropertyMultiUnit), propertyCtrl.SaveMultiUnitsHandler).Methods(http.MethodPost)

	owner.HandleFunc(trimOwners(routes.Tenants), tenantCtrl.ListTenantsHandler).Methods(http.MethodGet)
	owner.HandleFunc(trimOwners(routes.AddTenantBasicInfo), tenantCtrl.BasicInfoHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddTenantLeaseDates), tenantCtrl.LeaseDatesHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddTenantSelectUnit), tenantCtrl.SelectUnitHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.AddTenantSendInvitation), tenantCtrl.SendInvitationHandler).Methods(http.MethodPost)

	owner.HandleFunc(trimOwners(routes.InvitationResend), inviteCtrl.ResendHandler).Methods(http.MethodPost)
	owner.HandleFunc(trimOwners(routes.InvitationRevoke), inviteCtrl.RevokeHandler).Methods(http.MethodPost)

	// 5) Nightly invitation-expiry sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("15 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := application.InviteCleanup.CleanupDaily(ctx); err != nil {
			utils.Logger.WithError(err).Error("invitation cleanup run failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule invitation cleanup")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 6) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: c.Handler(router),
	}

	go func() {
		utils.Logger.Infof("Starting %s on :%s", config.AppName, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.WithError(err).Fatal("Server error")
		}
	}()

	// 7) Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	utils.Logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}

// trimOwners strips the subrouter prefix from a full route constant.
func trimOwners(full string) string {
	return full[len("/owners"):]
}

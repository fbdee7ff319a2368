package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/repositories"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

const (
	msgEmailOrPhone  = "Either email or phone is required."
	msgLeaseEndOrder = "Lease end date must be after start date."
)

const leaseDateLayout = "2006-01-02"

// TenantWizardService drives the tenant onboarding flow. Unlike the
// property wizard it has no resume entry point: every run starts fresh
// at basic-info, and activation (unit assignment) is the terminal,
// state-changing operation.
type TenantWizardService interface {
	CreateBasicInfo(ctx context.Context, ownerID uuid.UUID, req *dtos.BasicInfoStepRequest) (*dtos.TenantStepResponse, error)
	SaveLeaseDates(ctx context.Context, ownerID uuid.UUID, req *dtos.LeaseDatesStepRequest) (*dtos.TenantStepResponse, error)
	SelectUnit(ctx context.Context, ownerID uuid.UUID, req *dtos.SelectUnitStepRequest) (*dtos.TenantStepResponse, error)
	ListTenants(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error)
}

type tenantWizardService struct {
	tenants repositories.TenantRepository
	units   repositories.UnitRepository
	props   repositories.PropertyRepository
}

func NewTenantWizardService(
	tenants repositories.TenantRepository,
	units repositories.UnitRepository,
	props repositories.PropertyRepository,
) TenantWizardService {
	return &tenantWizardService{tenants: tenants, units: units, props: props}
}

/* ------------------------------------------------------------------
   Step 1 – basic info
------------------------------------------------------------------ */

func (s *tenantWizardService) CreateBasicInfo(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.BasicInfoStepRequest,
) (*dtos.TenantStepResponse, error) {
	if req.Email == "" && req.Phone == "" {
		// Attached to the email field so the form highlights it.
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    msgEmailOrPhone,
			Details:    map[string]string{"email": msgEmailOrPhone},
		}
	}

	var phone *string
	if req.Phone != "" {
		normalized, err := utils.NormalizeUSPhone(req.Phone)
		if err != nil {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    "Please check the highlighted fields.",
				Details:    map[string]string{"phone": "Must be a valid US phone number."},
				Err:        err,
			}
		}
		phone = &normalized
	}

	var email *string
	if req.Email != "" {
		e := strings.ToLower(strings.TrimSpace(req.Email))
		email = &e
	}

	leaseStart, err := parseLeaseDate(req.LeaseStart, "lease_start")
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		Email:      email,
		Phone:      phone,
		LeaseStart: leaseStart,
		Status:     models.TenantStatusDraft,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return &dtos.TenantStepResponse{
		Tenant:         tenant,
		CompletedSteps: 1,
		NextHref:       wizard.NextAfterBasicInfo(tenant.ID).Href(),
	}, nil
}

/* ------------------------------------------------------------------
   Step 2 – lease dates
------------------------------------------------------------------ */

func (s *tenantWizardService) SaveLeaseDates(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.LeaseDatesStepRequest,
) (*dtos.TenantStepResponse, error) {
	tenant, err := s.ownedTenant(ctx, ownerID, req.TenantID)
	if err != nil {
		return nil, err
	}

	start, err := parseLeaseDate(req.LeaseStart, "lease_start")
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if req.LeaseEnd != "" {
		parsed, err := parseLeaseDate(req.LeaseEnd, "lease_end")
		if err != nil {
			return nil, err
		}
		if !parsed.After(start) {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    msgLeaseEndOrder,
				Details:    map[string]string{"lease_end": msgLeaseEndOrder},
			}
		}
		end = &parsed
	}

	if err := s.tenants.UpdateLeaseDates(ctx, tenant.ID, start, end); err != nil {
		return nil, err
	}
	tenant.LeaseStart = start
	tenant.LeaseEnd = end

	return &dtos.TenantStepResponse{
		Tenant:         tenant,
		CompletedSteps: 2,
		NextHref:       wizard.NextAfterLeaseDates(tenant.ID).Href(),
	}, nil
}

/* ------------------------------------------------------------------
   Step 3 – unit selection = activation
------------------------------------------------------------------ */

func (s *tenantWizardService) SelectUnit(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.SelectUnitStepRequest,
) (*dtos.TenantStepResponse, error) {
	tenant, err := s.ownedTenant(ctx, ownerID, req.TenantID)
	if err != nil {
		return nil, err
	}

	unitID, _ := dtos.ParseID(req.UnitID)
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Unit not found.", utils.ErrUnitNotFound)
	}

	// The unit must belong to a property this owner manages.
	prop, err := s.props.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.OwnerID != ownerID {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Unit not found.", utils.ErrUnitNotFound)
	}

	if err := s.tenants.Activate(ctx, tenant.ID, unit.ID); err != nil {
		return nil, err
	}
	tenant.UnitID = &unit.ID
	tenant.Status = models.TenantStatusActive

	utils.Logger.WithField("tenant_id", tenant.ID).Info("tenant draft activated")

	return &dtos.TenantStepResponse{
		Tenant:         tenant,
		CompletedSteps: 3,
		NextHref:       wizard.NextAfterSelectUnit(tenant.ID).Href(),
	}, nil
}

func (s *tenantWizardService) ListTenants(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	return s.tenants.ListActiveByOwnerID(ctx, ownerID)
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

// parseLeaseDate normalizes YYYY-MM-DD input to UTC midnight.
func parseLeaseDate(value, field string) (time.Time, error) {
	t, err := time.ParseInLocation(leaseDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Please check the highlighted fields.",
			Details:    map[string]string{field: "Must be a date in YYYY-MM-DD format."},
			Err:        err,
		}
	}
	return t, nil
}

func (s *tenantWizardService) ownedTenant(ctx context.Context, ownerID uuid.UUID, tenantID string) (*models.Tenant, error) {
	id, ok := dtos.ParseID(tenantID)
	if !ok {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid tenant id.", nil)
	}
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.OwnerID != ownerID {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Tenant not found.", utils.ErrTenantNotFound)
	}
	return t, nil
}

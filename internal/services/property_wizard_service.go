package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/repositories"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils/addressval"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

// msgMissingPropertyID is the broken-resume-chain error: the user reached
// a later step without a draft id. Distinct from field validation.
const msgMissingPropertyID = "Property ID is missing. Please start from step 1."

// AddressValidator is the slice of the addressval client the wizard uses.
type AddressValidator interface {
	Validate(ctx context.Context, addr addressval.Address) (*addressval.Result, error)
}

type PropertyWizardService interface {
	// ResolveEntry maps the owner's persisted draft state to the step the
	// entry point should redirect to.
	ResolveEntry(ctx context.Context, ownerID uuid.UUID) (wizard.Destination, error)
	// StepForm seeds a step page on (re-)entry from its URL progress.
	StepForm(ctx context.Context, ownerID uuid.UUID, prog wizard.Progress, currentStep int) (*dtos.StepFormResponse, error)

	SaveAddress(ctx context.Context, ownerID uuid.UUID, req *dtos.AddressStepRequest) (*dtos.StepResponse, error)
	SavePropertyType(ctx context.Context, ownerID uuid.UUID, req *dtos.PropertyTypeStepRequest) (*dtos.StepResponse, error)
	SaveSingleUnit(ctx context.Context, ownerID uuid.UUID, req *dtos.SingleUnitStepRequest) (*dtos.StepResponse, error)
	SaveMultiUnits(ctx context.Context, ownerID uuid.UUID, req *dtos.MultiUnitStepRequest) (*dtos.StepResponse, error)

	ListProperties(ctx context.Context, ownerID uuid.UUID) ([]dtos.PropertyListItem, error)
}

type propertyWizardService struct {
	props     repositories.PropertyRepository
	units     repositories.UnitRepository
	validator AddressValidator
}

func NewPropertyWizardService(
	props repositories.PropertyRepository,
	units repositories.UnitRepository,
	validator AddressValidator,
) PropertyWizardService {
	return &propertyWizardService{props: props, units: units, validator: validator}
}

/* ------------------------------------------------------------------
   Entry + resume
------------------------------------------------------------------ */

func (s *propertyWizardService) ResolveEntry(ctx context.Context, ownerID uuid.UUID) (wizard.Destination, error) {
	draft, err := s.props.GetDraftByOwner(ctx, ownerID)
	if err != nil {
		return wizard.Destination{}, err
	}
	if draft == nil {
		return wizard.ResolveProperty(nil, 0), nil
	}

	unitCount, err := s.units.CountByPropertyID(ctx, draft.ID)
	if err != nil {
		return wizard.Destination{}, err
	}
	return wizard.ResolveProperty(draft, unitCount), nil
}

func (s *propertyWizardService) StepForm(
	ctx context.Context,
	ownerID uuid.UUID,
	prog wizard.Progress,
	currentStep int,
) (*dtos.StepFormResponse, error) {
	resp := &dtos.StepFormResponse{
		CompletedSteps: prog.DisplayedCompleted(currentStep),
		UnitType:       string(prog.UnitType),
		CanLinkForward: prog.CanLinkForward(),
	}

	if prog.PropertyID == uuid.Nil {
		return resp, nil
	}
	draft, err := s.ownedProperty(ctx, ownerID, prog.PropertyID)
	if err != nil {
		return nil, err
	}
	resp.Property = draft
	if resp.UnitType == "" {
		resp.UnitType = string(draft.UnitType)
	}
	return resp, nil
}

/* ------------------------------------------------------------------
   Step 1 – address
------------------------------------------------------------------ */

func (s *propertyWizardService) SaveAddress(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.AddressStepRequest,
) (*dtos.StepResponse, error) {
	state, err := utils.NormalizeUSState(req.State)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Please check the highlighted fields.",
			Details:    map[string]string{"state": "Must be a valid US state."},
			Err:        err,
		}
	}

	var draft *models.Property
	if req.PropertyID != "" {
		// Re-entering an already-completed step updates the draft in place.
		id, ok := dtos.ParseID(req.PropertyID)
		if !ok {
			return nil, missingPrerequisite(nil)
		}
		draft, err = s.ownedProperty(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		applyAddress(draft, req, state)
		if err := s.props.Update(ctx, draft); err != nil {
			return nil, err
		}
	} else {
		draft = &models.Property{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Status:  models.PropertyStatusDraft,
		}
		applyAddress(draft, req, state)
		if err := s.props.Create(ctx, draft); err != nil {
			return nil, err
		}
	}

	resp := &dtos.StepResponse{
		Property:       draft,
		CompletedSteps: 1,
		NextHref:       wizard.NextAfterAddress(draft.ID).Href(),
	}

	// Advisory only: a validation hiccup never blocks the step.
	s.validateAddressAdvisory(ctx, draft, resp)

	return resp, nil
}

func applyAddress(p *models.Property, req *dtos.AddressStepRequest, state string) {
	p.AddressLine1 = req.AddressLine1
	p.AddressLine2 = req.AddressLine2
	p.City = req.City
	p.State = state
	p.Zip = req.Zip
	p.Country = req.Country
}

func (s *propertyWizardService) validateAddressAdvisory(
	ctx context.Context,
	draft *models.Property,
	resp *dtos.StepResponse,
) {
	if s.validator == nil {
		return
	}
	result, err := s.validator.Validate(ctx, addressval.Address{
		Line1:   draft.AddressLine1,
		Line2:   draft.AddressLine2,
		City:    draft.City,
		State:   draft.State,
		Zip:     draft.Zip,
		Country: draft.Country,
	})
	if err != nil {
		var rateErr *addressval.RateLimitError
		switch {
		case errors.Is(err, addressval.ErrInvalidKey):
			utils.Logger.WithError(err).Error("address validation misconfigured")
		case errors.As(err, &rateErr):
			utils.Logger.WithError(err).Warn("address validation rate limited")
		default:
			utils.Logger.WithError(err).Warn("address validation unavailable")
		}
		return
	}
	resp.NormalizedAddress = result.NormalizedAddress
	resp.AddressesIdentical = result.AreIdentical
}

/* ------------------------------------------------------------------
   Step 2 – property type
------------------------------------------------------------------ */

func (s *propertyWizardService) SavePropertyType(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.PropertyTypeStepRequest,
) (*dtos.StepResponse, error) {
	draft, err := s.requireDraft(ctx, ownerID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	yearBuilt, err := parseYearBuilt(req.YearBuilt)
	if err != nil {
		return nil, err
	}

	draft.Name = req.Name
	draft.Description = req.Description
	draft.PropertyType = models.PropertyType(req.PropertyType)
	draft.UnitType = models.ParseUnitType(req.UnitType)
	draft.YearBuilt = yearBuilt
	draft.BuildingSqft = parseOptionalInt(req.BuildingSqft)
	draft.LotSqft = parseOptionalInt(req.LotSqft)

	if err := s.props.Update(ctx, draft); err != nil {
		return nil, err
	}

	return &dtos.StepResponse{
		Property:       draft,
		CompletedSteps: 2,
		NextHref:       wizard.NextAfterPropertyType(draft.ID, draft.UnitType).Href(),
	}, nil
}

func parseYearBuilt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1700 || year > time.Now().Year() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Please check the highlighted fields.",
			Details: map[string]string{
				"year_built": "Year built must be between 1700 and " + strconv.Itoa(time.Now().Year()) + ".",
			},
		}
	}
	return &year, nil
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	// Non-digit input was already rejected by the numeric validator.
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

/* ------------------------------------------------------------------
   Step 3 – unit details
------------------------------------------------------------------ */

func (s *propertyWizardService) SaveSingleUnit(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.SingleUnitStepRequest,
) (*dtos.StepResponse, error) {
	draft, err := s.requireUnitStepDraft(ctx, ownerID, req.PropertyID, models.UnitTypeSingle)
	if err != nil {
		return nil, err
	}

	unit := unitFromRequest(draft.ID, req.Unit, "1")
	if err := s.units.Create(ctx, unit); err != nil {
		return nil, err
	}

	return s.completeWizard(ctx, draft)
}

func (s *propertyWizardService) SaveMultiUnits(
	ctx context.Context,
	ownerID uuid.UUID,
	req *dtos.MultiUnitStepRequest,
) (*dtos.StepResponse, error) {
	draft, err := s.requireUnitStepDraft(ctx, ownerID, req.PropertyID, models.UnitTypeMulti)
	if err != nil {
		return nil, err
	}

	for i, u := range req.Units {
		unit := unitFromRequest(draft.ID, u, strconv.Itoa(i+1))
		if err := s.units.Create(ctx, unit); err != nil {
			return nil, err
		}
	}

	return s.completeWizard(ctx, draft)
}

func unitFromRequest(propertyID uuid.UUID, req dtos.UnitRequest, defaultNumber string) *models.Unit {
	number := req.UnitNumber
	if number == "" {
		number = defaultNumber
	}
	return &models.Unit{
		ID:                 uuid.New(),
		PropertyID:         propertyID,
		UnitNumber:         number,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		RentAmountCents:    req.RentAmountCents,
		DepositAmountCents: req.DepositAmountCents,
	}
}

// completeWizard transitions the draft out of draft status once units
// exist, and returns the terminal response.
func (s *propertyWizardService) completeWizard(ctx context.Context, draft *models.Property) (*dtos.StepResponse, error) {
	if err := s.props.SetStatus(ctx, draft.ID, models.PropertyStatusActive); err != nil {
		return nil, err
	}
	draft.Status = models.PropertyStatusActive

	utils.Logger.WithField("property_id", draft.ID).Info("property wizard completed")

	return &dtos.StepResponse{
		Property:       draft,
		CompletedSteps: 3,
		NextHref:       wizard.NextAfterUnits().Href(),
	}, nil
}

/* ------------------------------------------------------------------
   Listing
------------------------------------------------------------------ */

func (s *propertyWizardService) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]dtos.PropertyListItem, error) {
	props, err := s.props.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.PropertyListItem, 0, len(props))
	for _, p := range props {
		units, err := s.units.ListByPropertyID(ctx, p.ID)
		if err != nil {
			utils.Logger.WithError(err).Error("list units")
			return nil, err
		}
		out = append(out, dtos.NewPropertyListItem(p, units))
	}
	return out, nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

func missingPrerequisite(err error) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       utils.ErrCodeMissingPrerequisite,
		Message:    msgMissingPropertyID,
		Err:        err,
	}
}

// requireDraft resolves the propertyId a step 2+ submission carries. A
// missing or unknown id means the resume chain broke, which is reported
// as a prerequisite failure rather than bad input.
func (s *propertyWizardService) requireDraft(ctx context.Context, ownerID uuid.UUID, propertyID string) (*models.Property, error) {
	if propertyID == "" {
		return nil, missingPrerequisite(nil)
	}
	id, ok := dtos.ParseID(propertyID)
	if !ok {
		return nil, missingPrerequisite(nil)
	}
	return s.ownedProperty(ctx, ownerID, id)
}

func (s *propertyWizardService) requireUnitStepDraft(
	ctx context.Context,
	ownerID uuid.UUID,
	propertyID string,
	want models.UnitType,
) (*models.Property, error) {
	draft, err := s.requireDraft(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	if draft.UnitType == "" {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       utils.ErrCodeMissingPrerequisite,
			Message:    "Unit type has not been chosen. Please complete the property type step first.",
		}
	}
	if draft.UnitType != want {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "This property uses the " + string(draft.UnitType) + " flow.",
		}
	}
	return draft, nil
}

func (s *propertyWizardService) ownedProperty(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error) {
	p, err := s.props.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OwnerID != ownerID {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       utils.ErrCodeMissingPrerequisite,
			Message:    msgMissingPropertyID,
			Err:        utils.ErrDraftNotFound,
		}
	}
	return p, nil
}

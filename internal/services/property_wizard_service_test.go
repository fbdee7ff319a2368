package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

type propertyFixture struct {
	svc       PropertyWizardService
	props     *fakePropertyRepo
	units     *fakeUnitRepo
	validator *fakeAddressValidator
	ownerID   uuid.UUID
}

func newPropertyFixture() *propertyFixture {
	f := &propertyFixture{
		props:     newFakePropertyRepo(),
		units:     newFakeUnitRepo(),
		validator: &fakeAddressValidator{},
		ownerID:   uuid.New(),
	}
	f.svc = NewPropertyWizardService(f.props, f.units, f.validator)
	return f
}

func addressRequest() *dtos.AddressStepRequest {
	return &dtos.AddressStepRequest{
		AddressLine1: "123 Main St",
		City:         "Austin",
		State:        "Texas",
		Zip:          "78701",
		Country:      "US",
	}
}

func (f *propertyFixture) saveAddress(t *testing.T) *models.Property {
	t.Helper()
	resp, err := f.svc.SaveAddress(context.Background(), f.ownerID, addressRequest())
	require.NoError(t, err)
	return resp.Property
}

func (f *propertyFixture) saveType(t *testing.T, propertyID string, unitType string) *models.Property {
	t.Helper()
	resp, err := f.svc.SavePropertyType(context.Background(), f.ownerID, &dtos.PropertyTypeStepRequest{
		PropertyID:   propertyID,
		Name:         "Maple Court",
		PropertyType: "apartment",
		UnitType:     unitType,
	})
	require.NoError(t, err)
	return resp.Property
}

/* ------------------------------------------------------------------
   Step 1
------------------------------------------------------------------ */

func TestSaveAddressCreatesDraft(t *testing.T) {
	f := newPropertyFixture()

	resp, err := f.svc.SaveAddress(context.Background(), f.ownerID, addressRequest())

	require.NoError(t, err)
	draft := resp.Property
	assert.Equal(t, models.PropertyStatusDraft, draft.Status)
	assert.Equal(t, "TX", draft.State, "full state name normalized to USPS code")
	assert.Equal(t, 1, resp.CompletedSteps)
	assert.Contains(t, resp.NextHref, routes.AddPropertyType+"?")
	assert.Contains(t, resp.NextHref, "propertyId="+draft.ID.String())

	stored, _ := f.props.GetByID(context.Background(), draft.ID)
	require.NotNil(t, stored)
	assert.Equal(t, f.ownerID, stored.OwnerID)
}

func TestSaveAddressRejectsUnknownState(t *testing.T) {
	f := newPropertyFixture()

	req := addressRequest()
	req.State = "Atlantis"
	_, err := f.svc.SaveAddress(context.Background(), f.ownerID, req)

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Must be a valid US state.", errDetails(t, appErr)["state"])
}

func TestSaveAddressReEntryUpdatesInPlace(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)

	req := addressRequest()
	req.PropertyID = draft.ID.String()
	req.AddressLine1 = "500 Oak Ave"
	resp, err := f.svc.SaveAddress(context.Background(), f.ownerID, req)

	require.NoError(t, err)
	assert.Equal(t, draft.ID, resp.Property.ID, "re-entry must not spawn a second draft")

	all, _ := f.props.ListByOwnerID(context.Background(), f.ownerID)
	require.Len(t, all, 1)
	assert.Equal(t, "500 Oak Ave", all[0].AddressLine1)
}

func TestSaveAddressAttachesAdvisoryValidation(t *testing.T) {
	f := newPropertyFixture()

	resp, err := f.svc.SaveAddress(context.Background(), f.ownerID, addressRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, f.validator.calls)
	assert.NotEmpty(t, resp.NormalizedAddress)
	assert.True(t, resp.AddressesIdentical)
}

func TestSaveAddressSucceedsWhenValidationIsDown(t *testing.T) {
	f := newPropertyFixture()
	f.validator.err = errors.New("upstream timeout")

	resp, err := f.svc.SaveAddress(context.Background(), f.ownerID, addressRequest())

	require.NoError(t, err, "advisory validation must never block the step")
	assert.Empty(t, resp.NormalizedAddress)
	assert.NotNil(t, resp.Property)
}

/* ------------------------------------------------------------------
   Step 2
------------------------------------------------------------------ */

func TestSavePropertyTypeWithoutDraftIDIsBrokenResumeChain(t *testing.T) {
	f := newPropertyFixture()

	for _, propertyID := range []string{"", "not-a-uuid", uuid.NewString()} {
		_, err := f.svc.SavePropertyType(context.Background(), f.ownerID, &dtos.PropertyTypeStepRequest{
			PropertyID:   propertyID,
			Name:         "Maple Court",
			PropertyType: "apartment",
			UnitType:     "single_unit",
		})

		appErr := appErrFrom(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
		assert.Equal(t, utils.ErrCodeMissingPrerequisite, appErr.Code)
		assert.Equal(t, "Property ID is missing. Please start from step 1.", appErr.Message)
	}
}

func TestSavePropertyTypeForeignDraftIsRejected(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)

	_, err := f.svc.SavePropertyType(context.Background(), uuid.New(), &dtos.PropertyTypeStepRequest{
		PropertyID:   draft.ID.String(),
		Name:         "Maple Court",
		PropertyType: "apartment",
		UnitType:     "single_unit",
	})

	appErr := appErrFrom(t, err)
	assert.Equal(t, utils.ErrCodeMissingPrerequisite, appErr.Code)
}

func TestSavePropertyTypePersistsDetails(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)

	resp, err := f.svc.SavePropertyType(context.Background(), f.ownerID, &dtos.PropertyTypeStepRequest{
		PropertyID:   draft.ID.String(),
		Name:         "Maple Court",
		Description:  "Quiet fourplex near downtown",
		PropertyType: "apartment",
		UnitType:     "multi_unit",
		YearBuilt:    "1987",
		BuildingSqft: "5200",
	})

	require.NoError(t, err)
	p := resp.Property
	assert.Equal(t, models.UnitTypeMulti, p.UnitType)
	require.NotNil(t, p.YearBuilt)
	assert.Equal(t, 1987, *p.YearBuilt)
	require.NotNil(t, p.BuildingSqft)
	assert.Equal(t, 5200, *p.BuildingSqft)
	assert.Nil(t, p.LotSqft)

	assert.Equal(t, 2, resp.CompletedSteps)
	assert.Contains(t, resp.NextHref, routes.AddPropertyMultiUnit+"?")
	assert.Contains(t, resp.NextHref, "unitType=multi_unit")
}

func TestSavePropertyTypeRejectsImplausibleYear(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)

	for _, year := range []string{"1650", "3000"} {
		_, err := f.svc.SavePropertyType(context.Background(), f.ownerID, &dtos.PropertyTypeStepRequest{
			PropertyID:   draft.ID.String(),
			Name:         "Maple Court",
			PropertyType: "apartment",
			UnitType:     "single_unit",
			YearBuilt:    year,
		})

		appErr := appErrFrom(t, err)
		assert.Equal(t, utils.ErrCodeValidation, appErr.Code)
		assert.Contains(t, errDetails(t, appErr)["year_built"], "Year built must be between")
	}
}

/* ------------------------------------------------------------------
   Step 3
------------------------------------------------------------------ */

func TestSaveSingleUnitCompletesWizard(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)
	f.saveType(t, draft.ID.String(), "single_unit")

	resp, err := f.svc.SaveSingleUnit(context.Background(), f.ownerID, &dtos.SingleUnitStepRequest{
		PropertyID: draft.ID.String(),
		Unit: dtos.UnitRequest{
			Bedrooms:        3,
			Bathrooms:       2,
			RentAmountCents: 250000,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusActive, resp.Property.Status)
	assert.Equal(t, 3, resp.CompletedSteps)
	assert.Equal(t, routes.Properties, resp.NextHref)

	units, _ := f.units.ListByPropertyID(context.Background(), draft.ID)
	require.Len(t, units, 1)
	assert.Equal(t, "1", units[0].UnitNumber, "single units get an implicit number")
}

func TestSaveMultiUnitsNumbersUnnamedUnits(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)
	f.saveType(t, draft.ID.String(), "multi_unit")

	resp, err := f.svc.SaveMultiUnits(context.Background(), f.ownerID, &dtos.MultiUnitStepRequest{
		PropertyID: draft.ID.String(),
		Units: []dtos.UnitRequest{
			{UnitNumber: "A", RentAmountCents: 120000},
			{RentAmountCents: 130000},
			{RentAmountCents: 140000},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusActive, resp.Property.Status)

	units, _ := f.units.ListByPropertyID(context.Background(), draft.ID)
	require.Len(t, units, 3)
	numbers := map[string]bool{}
	for _, u := range units {
		numbers[u.UnitNumber] = true
	}
	assert.True(t, numbers["A"])
	assert.True(t, numbers["2"])
	assert.True(t, numbers["3"])
}

func TestSaveSingleUnitOnMultiUnitDraftConflicts(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)
	f.saveType(t, draft.ID.String(), "multi_unit")

	_, err := f.svc.SaveSingleUnit(context.Background(), f.ownerID, &dtos.SingleUnitStepRequest{
		PropertyID: draft.ID.String(),
		Unit:       dtos.UnitRequest{RentAmountCents: 100000},
	})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Equal(t, "This property uses the multi_unit flow.", appErr.Message)
}

func TestSaveUnitsBeforeChoosingUnitTypeIsRejected(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)

	_, err := f.svc.SaveSingleUnit(context.Background(), f.ownerID, &dtos.SingleUnitStepRequest{
		PropertyID: draft.ID.String(),
		Unit:       dtos.UnitRequest{RentAmountCents: 100000},
	})

	appErr := appErrFrom(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeMissingPrerequisite, appErr.Code)
}

/* ------------------------------------------------------------------
   Entry + resume
------------------------------------------------------------------ */

func TestResolveEntryWalksTheDraftForward(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()

	dest, err := f.svc.ResolveEntry(ctx, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, routes.AddPropertyAddress, dest.Path)

	draft := f.saveAddress(t)
	dest, err = f.svc.ResolveEntry(ctx, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, routes.AddPropertyType, dest.Path)
	assert.Equal(t, draft.ID.String(), dest.Query.Get(wizard.ParamPropertyID))

	f.saveType(t, draft.ID.String(), "multi_unit")
	dest, err = f.svc.ResolveEntry(ctx, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, routes.AddPropertyMultiUnit, dest.Path)
	assert.Equal(t, "2", dest.Query.Get(wizard.ParamCompletedSteps))

	_, err = f.svc.SaveMultiUnits(ctx, f.ownerID, &dtos.MultiUnitStepRequest{
		PropertyID: draft.ID.String(),
		Units:      []dtos.UnitRequest{{RentAmountCents: 100000}},
	})
	require.NoError(t, err)

	// The completed property is no longer a draft, so the wizard is fresh.
	dest, err = f.svc.ResolveEntry(ctx, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, routes.AddPropertyAddress, dest.Path)
}

func TestStepFormWithoutDraftIDDisablesForwardLinks(t *testing.T) {
	f := newPropertyFixture()

	resp, err := f.svc.StepForm(context.Background(), f.ownerID, wizard.Progress{}, wizard.StepPropertyType)

	require.NoError(t, err)
	assert.False(t, resp.CanLinkForward)
	assert.Nil(t, resp.Property)
	assert.Equal(t, 1, resp.CompletedSteps, "being on step 2 implies step 1 done")
}

func TestStepFormSeedsSavedDraft(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)
	f.saveType(t, draft.ID.String(), "single_unit")

	resp, err := f.svc.StepForm(context.Background(), f.ownerID,
		wizard.Progress{PropertyID: draft.ID, CompletedSteps: 2}, wizard.StepUnitDetails)

	require.NoError(t, err)
	assert.True(t, resp.CanLinkForward)
	require.NotNil(t, resp.Property)
	assert.Equal(t, "123 Main St", resp.Property.AddressLine1)
	// The URL omitted unitType; the persisted draft fills it in.
	assert.Equal(t, "single_unit", resp.UnitType)
}

func TestListPropertiesIncludesUnits(t *testing.T) {
	f := newPropertyFixture()
	draft := f.saveAddress(t)
	f.saveType(t, draft.ID.String(), "single_unit")
	_, err := f.svc.SaveSingleUnit(context.Background(), f.ownerID, &dtos.SingleUnitStepRequest{
		PropertyID: draft.ID.String(),
		Unit:       dtos.UnitRequest{RentAmountCents: 150000},
	})
	require.NoError(t, err)

	list, err := f.svc.ListProperties(context.Background(), f.ownerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, draft.ID, list[0].Property.ID)
	assert.Len(t, list[0].Units, 1)
}

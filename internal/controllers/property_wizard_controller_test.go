package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/middleware"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

// stubPropertySvc satisfies services.PropertyWizardService with canned
// responses; controller tests only exercise the HTTP translation layer.
type stubPropertySvc struct {
	entry    wizard.Destination
	form     *dtos.StepFormResponse
	saveResp *dtos.StepResponse
	saveErr  error
}

func (s *stubPropertySvc) ResolveEntry(context.Context, uuid.UUID) (wizard.Destination, error) {
	return s.entry, nil
}

func (s *stubPropertySvc) StepForm(context.Context, uuid.UUID, wizard.Progress, int) (*dtos.StepFormResponse, error) {
	return s.form, nil
}

func (s *stubPropertySvc) SaveAddress(context.Context, uuid.UUID, *dtos.AddressStepRequest) (*dtos.StepResponse, error) {
	return s.saveResp, s.saveErr
}

func (s *stubPropertySvc) SavePropertyType(context.Context, uuid.UUID, *dtos.PropertyTypeStepRequest) (*dtos.StepResponse, error) {
	return s.saveResp, s.saveErr
}

func (s *stubPropertySvc) SaveSingleUnit(context.Context, uuid.UUID, *dtos.SingleUnitStepRequest) (*dtos.StepResponse, error) {
	return s.saveResp, s.saveErr
}

func (s *stubPropertySvc) SaveMultiUnits(context.Context, uuid.UUID, *dtos.MultiUnitStepRequest) (*dtos.StepResponse, error) {
	return s.saveResp, s.saveErr
}

func (s *stubPropertySvc) ListProperties(context.Context, uuid.UUID) ([]dtos.PropertyListItem, error) {
	return nil, nil
}

func authed(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyOwnerID, uuid.NewString())
	return r.WithContext(ctx)
}

func TestEntryHandlerRedirectsToResolvedStep(t *testing.T) {
	id := uuid.New()
	ctrl := NewPropertyWizardController(&stubPropertySvc{
		entry: wizard.NextAfterPropertyType(id, "multi_unit"),
	})

	req := authed(httptest.NewRequest(http.MethodGet, routes.AddProperty, nil))
	rec := httptest.NewRecorder()
	ctrl.EntryHandler(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, routes.AddPropertyMultiUnit+"?"))
	assert.Contains(t, loc, "propertyId="+id.String())
	assert.Contains(t, loc, "unitType=multi_unit")
}

func TestEntryHandlerWithoutAuthContext(t *testing.T) {
	ctrl := NewPropertyWizardController(&stubPropertySvc{})

	req := httptest.NewRequest(http.MethodGet, routes.AddProperty, nil)
	rec := httptest.NewRecorder()
	ctrl.EntryHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveAddressHandlerRejectsBadJSON(t *testing.T) {
	ctrl := NewPropertyWizardController(&stubPropertySvc{})

	req := authed(httptest.NewRequest(http.MethodPost, routes.AddPropertyAddress,
		strings.NewReader("{not json")))
	rec := httptest.NewRecorder()
	ctrl.SaveAddressHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, utils.ErrCodeInvalidPayload, body.Code)
}

func TestSaveAddressHandlerReportsFieldErrors(t *testing.T) {
	ctrl := NewPropertyWizardController(&stubPropertySvc{})

	// Missing city and a malformed zip.
	payload := `{"address_line1":"123 Main St","state":"TX","zip":"787","country":"US"}`
	req := authed(httptest.NewRequest(http.MethodPost, routes.AddPropertyAddress,
		strings.NewReader(payload)))
	rec := httptest.NewRecorder()
	ctrl.SaveAddressHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	assert.Contains(t, body.Details, "city")
	assert.Contains(t, body.Details, "zip")
}

func TestSaveAddressHandlerMapsServiceErrors(t *testing.T) {
	ctrl := NewPropertyWizardController(&stubPropertySvc{
		saveErr: utils.NewAppError(http.StatusUnprocessableEntity,
			utils.ErrCodeMissingPrerequisite,
			"Property ID is missing. Please start from step 1.", nil),
	})

	payload := `{"address_line1":"123 Main St","city":"Austin","state":"TX","zip":"78701","country":"US"}`
	req := authed(httptest.NewRequest(http.MethodPost, routes.AddPropertyAddress,
		strings.NewReader(payload)))
	rec := httptest.NewRecorder()
	ctrl.SaveAddressHandler(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, utils.ErrCodeMissingPrerequisite, body.Code)
	assert.Equal(t, "Property ID is missing. Please start from step 1.", body.Message)
}

func TestSaveAddressHandlerPassesThroughStepResponse(t *testing.T) {
	next := wizard.NextAfterAddress(uuid.New()).Href()
	ctrl := NewPropertyWizardController(&stubPropertySvc{
		saveResp: &dtos.StepResponse{CompletedSteps: 1, NextHref: next},
	})

	payload := `{"address_line1":"123 Main St","city":"Austin","state":"TX","zip":"78701","country":"US"}`
	req := authed(httptest.NewRequest(http.MethodPost, routes.AddPropertyAddress,
		strings.NewReader(payload)))
	rec := httptest.NewRecorder()
	ctrl.SaveAddressHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body dtos.StepResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.CompletedSteps)
	assert.Equal(t, next, body.NextHref)
}

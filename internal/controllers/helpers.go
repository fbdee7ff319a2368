package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/middleware"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

var validate = dtos.NewValidator()

// ownerID pulls the authenticated owner out of the request context. A
// missing value means the route was wired without the auth middleware.
func ownerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	v := r.Context().Value(middleware.ContextKeyOwnerID)
	if v == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Missing owner in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Invalid owner id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate parses the JSON body into req and runs struct
// validation, writing the error response itself on failure. Field-level
// messages ride in Details so forms can highlight inputs without
// discarding entered values.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return false
	}
	if err := validate.Struct(req); err != nil {
		var details any
		if _, ok := err.(validator.ValidationErrors); ok {
			details = dtos.ValidationDetails(err)
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Please check the highlighted fields.", details, err)
		return false
	}
	return true
}

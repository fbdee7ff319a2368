package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide fine-grained
// failure reasons.
var (
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidPhone   = errors.New("invalid_phone")
	ErrDraftNotFound  = errors.New("draft_not_found")
	ErrUnitNotFound   = errors.New("unit_not_found")
	ErrTenantNotFound = errors.New("tenant_not_found")

	// Invitation lifecycle
	ErrInviteNotFound        = errors.New("invite_not_found")
	ErrInviteExpired         = errors.New("invite_expired")
	ErrInviteAlreadyAccepted = errors.New("invite_already_accepted")
	ErrInviteRevoked         = errors.New("invite_revoked")
	ErrSendInProgress        = errors.New("send_in_progress")

	// External service failures (SendGrid, address validation)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError carries a status code and public message from services up to
// controllers without leaking internals.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError is a small constructor for the common case without details.
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors. Anything else is an
// unexpected failure and gets a generic 500 with a support escape hatch.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal,
			"Something went wrong. Please try again or contact support.", nil, err)
	}
}

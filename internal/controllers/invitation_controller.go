package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/services"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

type InvitationController struct {
	svc services.InvitationService
}

func NewInvitationController(svc services.InvitationService) *InvitationController {
	return &InvitationController{svc: svc}
}

// -----------------------------------------------------------------------------
// POST /owners/invitations/{id}/resend
// -----------------------------------------------------------------------------
func (c *InvitationController) ResendHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := c.svc.Resend(r.Context(), owner, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// -----------------------------------------------------------------------------
// POST /owners/invitations/{id}/revoke
// -----------------------------------------------------------------------------
func (c *InvitationController) RevokeHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Revoke(r.Context(), owner, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Invitation revoked."})
}

// -----------------------------------------------------------------------------
// GET /invite/accept?token=
//
// Public: the invitee follows the emailed link. Failures are classified
// (expired / already accepted / invalid) with distinct messages.
// -----------------------------------------------------------------------------
func (c *InvitationController) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.Accept(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid invitation id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

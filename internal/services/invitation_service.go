package services

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/repositories"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

const (
	msgNoEmail        = "Tenant does not have an email address. Cannot send invitation."
	msgNoUnitSend     = "Tenant is not assigned to a unit. Cannot send invitation."
	msgNoUnitResend   = "Tenant is not assigned to a unit. Cannot resend invitation."
	msgPartialSuccess = "Invitation created but email failed to send. You can resend later."
	msgSendInFlight   = "An invitation is already being sent for this tenant."

	msgInviteInvalid  = "This invitation link is not valid."
	msgInviteExpired  = "This invitation has expired. Ask your property owner to send a new one."
	msgInviteAccepted = "This invitation has already been accepted."
	msgInviteRevoked  = "This invitation is no longer valid. Ask your property owner to send a new one."
)

type InvitationService interface {
	// Send performs the one-shot invitation action for a tenant:
	// revoke any active invite, create a fresh one, dispatch the email.
	Send(ctx context.Context, ownerID, tenantID uuid.UUID) (*dtos.InvitationResult, error)
	Resend(ctx context.Context, ownerID, invitationID uuid.UUID) (*dtos.InvitationResult, error)
	Revoke(ctx context.Context, ownerID, invitationID uuid.UUID) error
	Accept(ctx context.Context, token string) (*dtos.AcceptInvitationResponse, error)
}

type invitationService struct {
	invites repositories.InvitationRepository
	tenants repositories.TenantRepository
	units   repositories.UnitRepository
	props   repositories.PropertyRepository
	email   EmailSender
	appURL  string
	ttl     time.Duration

	// sending tracks tenants with an in-flight send. The request state
	// machine is idle → sending → sent|failed: entering sending twice is
	// a no-op, and only completion (the explicit retry path re-posts)
	// returns a tenant to idle.
	sending sync.Map
}

func NewInvitationService(
	invites repositories.InvitationRepository,
	tenants repositories.TenantRepository,
	units repositories.UnitRepository,
	props repositories.PropertyRepository,
	email EmailSender,
	appURL string,
	ttl time.Duration,
) InvitationService {
	return &invitationService{
		invites: invites,
		tenants: tenants,
		units:   units,
		props:   props,
		email:   email,
		appURL:  appURL,
		ttl:     ttl,
	}
}

/* ------------------------------------------------------------------
   Send
------------------------------------------------------------------ */

func (s *invitationService) Send(ctx context.Context, ownerID, tenantID uuid.UUID) (*dtos.InvitationResult, error) {
	if _, inFlight := s.sending.LoadOrStore(tenantID, struct{}{}); inFlight {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeSendInProgress,
			msgSendInFlight, utils.ErrSendInProgress)
	}
	defer s.sending.Delete(tenantID)

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.OwnerID != ownerID {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Tenant not found.", utils.ErrTenantNotFound)
	}

	// Rejected before any network call.
	if !tenant.HasEmail() {
		return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeValidation,
			msgNoEmail, nil)
	}
	if tenant.UnitID == nil {
		return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeValidation,
			msgNoUnitSend, nil)
	}

	unit, err := s.units.GetByID(ctx, *tenant.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeValidation,
			msgNoUnitSend, utils.ErrUnitNotFound)
	}
	prop, err := s.props.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found.", utils.ErrDraftNotFound)
	}

	// Resending revokes the prior invite; the old token becomes unusable.
	if err := s.invites.RevokeActiveForTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	invite := &models.Invitation{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		TenantID:   tenant.ID,
		Email:      *tenant.Email,
		Name:       tenant.Name,
		Token:      utils.RandomToken(32),
		Status:     models.InvitationStatusPending,
		ExpiresAt:  time.Now().Add(s.ttl),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	if err := s.email.SendTenantInvitation(
		ctx, invite.Email, invite.Name, prop.Name, s.acceptURL(invite.Token), invite.ExpiresAt,
	); err != nil {
		// Partial success: the invite record stays; only the email failed.
		utils.Logger.WithError(err).WithField("invitation_id", invite.ID).
			Error("invitation email failed to send")
		id := invite.ID.String()
		return &dtos.InvitationResult{
			Success:      false,
			Message:      msgPartialSuccess,
			InvitationID: &id,
			Invitation:   invite,
		}, nil
	}

	if err := s.invites.SetStatus(ctx, invite.ID, models.InvitationStatusSent); err != nil {
		utils.Logger.WithError(err).Warn("invitation sent but status update failed")
	} else {
		invite.Status = models.InvitationStatusSent
	}

	id := invite.ID.String()
	return &dtos.InvitationResult{
		Success:      true,
		Message:      "Invitation sent.",
		InvitationID: &id,
		Invitation:   invite,
		NextHref:     wizard.NextAfterInvitation().Href(),
	}, nil
}

/* ------------------------------------------------------------------
   Resend / revoke
------------------------------------------------------------------ */

func (s *invitationService) Resend(ctx context.Context, ownerID, invitationID uuid.UUID) (*dtos.InvitationResult, error) {
	_, tenant, err := s.ownedInvitation(ctx, ownerID, invitationID)
	if err != nil {
		return nil, err
	}

	// Re-derive the unit from the tenant's current assignment: the unit
	// may have changed (or been removed) since the invite was created.
	if tenant.UnitID == nil {
		return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeValidation,
			msgNoUnitResend, nil)
	}

	return s.Send(ctx, ownerID, tenant.ID)
}

func (s *invitationService) Revoke(ctx context.Context, ownerID, invitationID uuid.UUID) error {
	invite, _, err := s.ownedInvitation(ctx, ownerID, invitationID)
	if err != nil {
		return err
	}
	// Revoking an already-revoked invite is not an error.
	if invite.Status == models.InvitationStatusRevoked {
		return nil
	}
	return s.invites.SetStatus(ctx, invite.ID, models.InvitationStatusRevoked)
}

/* ------------------------------------------------------------------
   Accept
------------------------------------------------------------------ */

// Accept consumes a token, classifying every failure into a distinct
// user-facing reason: expired vs already-accepted vs generically invalid.
func (s *invitationService) Accept(ctx context.Context, token string) (*dtos.AcceptInvitationResponse, error) {
	if token == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInviteInvalid,
			msgInviteInvalid, nil)
	}

	invite, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeInviteInvalid,
			msgInviteInvalid, utils.ErrInviteNotFound)
	}

	switch {
	case invite.Status == models.InvitationStatusAccepted:
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeInviteAccepted,
			msgInviteAccepted, utils.ErrInviteAlreadyAccepted)
	case invite.Status == models.InvitationStatusRevoked:
		return nil, utils.NewAppError(http.StatusGone, utils.ErrCodeInviteInvalid,
			msgInviteRevoked, utils.ErrInviteRevoked)
	case invite.Status == models.InvitationStatusExpired || invite.IsExpired():
		return nil, utils.NewAppError(http.StatusGone, utils.ErrCodeInviteExpired,
			msgInviteExpired, utils.ErrInviteExpired)
	}

	if err := s.invites.MarkAccepted(ctx, invite.ID); err != nil {
		return nil, err
	}

	utils.Logger.WithField("invitation_id", invite.ID).Info("invitation accepted")

	return &dtos.AcceptInvitationResponse{
		Accepted:   true,
		Message:    "Invitation accepted. Welcome aboard!",
		PropertyID: invite.PropertyID.String(),
		TenantID:   invite.TenantID.String(),
	}, nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

func (s *invitationService) acceptURL(token string) string {
	return s.appURL + routes.InviteAccept + "?" + url.Values{"token": {token}}.Encode()
}

func (s *invitationService) ownedInvitation(
	ctx context.Context,
	ownerID, invitationID uuid.UUID,
) (*models.Invitation, *models.Tenant, error) {
	invite, err := s.invites.GetByID(ctx, invitationID)
	if err != nil {
		return nil, nil, err
	}
	if invite == nil {
		return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Invitation not found.", utils.ErrInviteNotFound)
	}
	tenant, err := s.tenants.GetByID(ctx, invite.TenantID)
	if err != nil {
		return nil, nil, err
	}
	if tenant == nil || tenant.OwnerID != ownerID {
		return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Invitation not found.", utils.ErrTenantNotFound)
	}
	return invite, tenant, nil
}

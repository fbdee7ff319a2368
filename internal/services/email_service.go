package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

// EmailSender dispatches one named template per message kind. The
// invitation service depends on this interface so tests can fake it.
type EmailSender interface {
	SendTenantInvitation(ctx context.Context, to, name, propertyName, acceptURL string, expiresAt time.Time) error
	SendInvitationRevoked(ctx context.Context, to, name, propertyName string) error
}

type sendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendgridSender(apiKey, fromEmail, fromName string) EmailSender {
	return &sendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridSender) SendTenantInvitation(
	ctx context.Context,
	to, name, propertyName, acceptURL string,
	expiresAt time.Time,
) error {
	subject := fmt.Sprintf("You're invited to manage your lease at %s", propertyName)
	html := fmt.Sprintf(tenantInvitationEmailHTML,
		propertyName,
		name,
		propertyName,
		acceptURL,
		expiresAt.Format("January 2, 2006"),
		time.Now().Year(),
	)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYou've been invited to manage your lease at %s on Bloom Rent.\nAccept here: %s\n\nThis link expires on %s.",
		name, propertyName, acceptURL, expiresAt.Format("January 2, 2006"),
	)
	return s.send(ctx, to, name, subject, plain, html)
}

func (s *sendgridSender) SendInvitationRevoked(ctx context.Context, to, name, propertyName string) error {
	subject := fmt.Sprintf("Your invitation to %s was withdrawn", propertyName)
	html := fmt.Sprintf(invitationRevokedEmailHTML, name, propertyName, time.Now().Year())
	plain := fmt.Sprintf(
		"Hi %s,\n\nThe invitation to join %s on Bloom Rent has been withdrawn.",
		name, propertyName,
	)
	return s.send(ctx, to, name, subject, plain, html)
}

func (s *sendgridSender) send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 400 {
		utils.Logger.WithField("status", resp.StatusCode).
			WithField("body", resp.Body).
			Error("SendGrid rejected email")
		return fmt.Errorf("%w: sendgrid status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}
	return nil
}

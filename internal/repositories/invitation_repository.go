package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.InvitationStatus) error
	MarkAccepted(ctx context.Context, id uuid.UUID) error
	// RevokeActiveForTenant invalidates any still-usable invitation for
	// the tenant; resends call this before issuing a fresh token.
	RevokeActiveForTenant(ctx context.Context, tenantID uuid.UUID) error
	// ExpireOverdue sweeps pending/sent invitations past their expiry.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type invitationRepo struct {
	db DB
}

func NewInvitationRepository(db DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *models.Invitation) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO invitations (
            id, property_id, tenant_id, email, name, token,
            status, expires_at, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `,
		inv.ID,
		inv.PropertyID,
		inv.TenantID,
		inv.Email,
		inv.Name,
		inv.Token,
		inv.Status,
		inv.ExpiresAt,
	)
	return err
}

func (r *invitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	row := r.db.QueryRow(ctx, baseSelectInvitation()+" WHERE id=$1", id)
	return scanInvitation(row)
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	row := r.db.QueryRow(ctx, baseSelectInvitation()+" WHERE token=$1", token)
	return scanInvitation(row)
}

func (r *invitationRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.InvitationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invitations SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invitationRepo) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE invitations SET status=$1, accepted_at=NOW() WHERE id=$2
    `, models.InvitationStatusAccepted, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invitationRepo) RevokeActiveForTenant(ctx context.Context, tenantID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE invitations SET status=$1
        WHERE tenant_id=$2 AND status IN ($3, $4)
    `,
		models.InvitationStatusRevoked,
		tenantID,
		models.InvitationStatusPending,
		models.InvitationStatusSent,
	)
	return err
}

func (r *invitationRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE invitations SET status=$1
        WHERE status IN ($2, $3) AND expires_at < NOW()
    `,
		models.InvitationStatusExpired,
		models.InvitationStatusPending,
		models.InvitationStatusSent,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectInvitation() string {
	return `
        SELECT
            id, property_id, tenant_id, email, name, token,
            status, expires_at, created_at, accepted_at
        FROM invitations
    `
}

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.PropertyID,
		&inv.TenantID,
		&inv.Email,
		&inv.Name,
		&inv.Token,
		&inv.Status,
		&inv.ExpiresAt,
		&inv.CreatedAt,
		&inv.AcceptedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

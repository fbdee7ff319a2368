package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	// ListActiveByOwnerID intentionally excludes drafts: a tenant is only
	// listed once activation assigned it a unit.
	ListActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error)

	UpdateLeaseDates(ctx context.Context, id uuid.UUID, start time.Time, end *time.Time) error
	// Activate assigns the unit and flips the draft to active in one
	// statement; activation is the transition that makes a tenant real.
	Activate(ctx context.Context, id uuid.UUID, unitID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, owner_id, name, email, phone,
            lease_start, lease_end, unit_id, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW())
    `,
		t.ID,
		t.OwnerID,
		t.Name,
		t.Email,
		t.Phone,
		t.LeaseStart,
		t.LeaseEnd,
		t.UnitID,
		t.Status,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(row)
}

func (r *tenantRepo) ListActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx,
		baseSelectTenant()+" WHERE owner_id=$1 AND status=$2 ORDER BY created_at",
		ownerID, models.TenantStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) UpdateLeaseDates(ctx context.Context, id uuid.UUID, start time.Time, end *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tenants SET lease_start=$1, lease_end=$2, updated_at=NOW() WHERE id=$3`,
		start, end, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) Activate(ctx context.Context, id uuid.UUID, unitID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenants SET unit_id=$1, status=$2, updated_at=NOW()
        WHERE id=$3
    `, unitID, models.TenantStatusActive, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

func baseSelectTenant() string {
	return `
        SELECT
            id, owner_id, name, email, phone,
            lease_start, lease_end, unit_id, status,
            created_at, updated_at
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Name,
		&t.Email,
		&t.Phone,
		&t.LeaseStart,
		&t.LeaseEnd,
		&t.UnitID,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

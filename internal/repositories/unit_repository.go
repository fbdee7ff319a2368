package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error)
	CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO units (
            id, property_id, unit_number, bedrooms, bathrooms,
            rent_amount_cents, deposit_amount_cents, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
    `,
		u.ID,
		u.PropertyID,
		u.UnitNumber,
		u.Bedrooms,
		u.Bathrooms,
		u.RentAmountCents,
		u.DepositAmountCents,
	)
	return err
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE id=$1", id)
	return scanUnit(row)
}

func (r *unitRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE property_id=$1 ORDER BY unit_number", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE property_id=$1`, propertyID).Scan(&n)
	return n, err
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func baseSelectUnit() string {
	return `
        SELECT
            id, property_id, unit_number, bedrooms, bathrooms,
            rent_amount_cents, deposit_amount_cents, created_at
        FROM units
    `
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(
		&u.ID,
		&u.PropertyID,
		&u.UnitNumber,
		&u.Bedrooms,
		&u.Bathrooms,
		&u.RentAmountCents,
		&u.DepositAmountCents,
		&u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

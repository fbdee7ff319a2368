package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	// GetDraftByOwner returns the owner's in-progress draft, or nil when
	// none exists. An owner has at most one draft at a time.
	GetDraftByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Property, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_id, name, description, property_type, unit_type,
            address_line1, address_line2, city, state, zip, country,
            year_built, building_sqft, lot_sqft, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16, NOW(), NOW())
    `,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Description,
		nullIfEmpty(string(p.PropertyType)),
		nullIfEmpty(string(p.UnitType)),
		p.AddressLine1,
		p.AddressLine2,
		p.City,
		p.State,
		p.Zip,
		p.Country,
		p.YearBuilt,
		p.BuildingSqft,
		p.LotSqft,
		p.Status,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) GetDraftByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx,
		baseSelectProperty()+" WHERE owner_id=$1 AND status=$2 ORDER BY created_at DESC LIMIT 1",
		ownerID, models.PropertyStatusDraft)
	return scanProperty(row)
}

func (r *propertyRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE owner_id=$1 ORDER BY created_at", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        UPDATE properties SET
            name=$1, description=$2, property_type=$3, unit_type=$4,
            address_line1=$5, address_line2=$6, city=$7, state=$8, zip=$9, country=$10,
            year_built=$11, building_sqft=$12, lot_sqft=$13, status=$14,
            updated_at=NOW()
        WHERE id=$15
    `,
		p.Name,
		p.Description,
		nullIfEmpty(string(p.PropertyType)),
		nullIfEmpty(string(p.UnitType)),
		p.AddressLine1,
		p.AddressLine2,
		p.City,
		p.State,
		p.Zip,
		p.Country,
		p.YearBuilt,
		p.BuildingSqft,
		p.LotSqft,
		p.Status,
		p.ID,
	)
	return err
}

func (r *propertyRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_id, name, description,
            COALESCE(property_type, ''), COALESCE(unit_type, ''),
            address_line1, address_line2, city, state, zip, country,
            year_built, building_sqft, lot_sqft, status,
            created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.PropertyType,
		&p.UnitType,
		&p.AddressLine1,
		&p.AddressLine2,
		&p.City,
		&p.State,
		&p.Zip,
		&p.Country,
		&p.YearBuilt,
		&p.BuildingSqft,
		&p.LotSqft,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// nullIfEmpty maps empty enum strings to SQL NULL so partially filled
// drafts do not store empty-string values.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

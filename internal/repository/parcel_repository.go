package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/landgov/landadmin-api/internal/models"
)

const parcelColumns = `id, parcel_number, address, area_sqm, owner_name, zoning_code, geojson, created_at, updated_at`

// ParcelRepository reads the land parcel registry.
type ParcelRepository struct {
	db *sqlx.DB
}

// NewParcelRepository constructs the repository.
func NewParcelRepository(db *sqlx.DB) *ParcelRepository {
	return &ParcelRepository{db: db}
}

// GetByID fetches a parcel by identifier.
func (r *ParcelRepository) GetByID(ctx context.Context, id string) (*models.LandParcel, error) {
	query := fmt.Sprintf(`SELECT %s FROM land_parcels WHERE id = $1`, parcelColumns)
	var parcel models.LandParcel
	if err := r.db.GetContext(ctx, &parcel, query, id); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// List returns parcels matching the filter ordered by parcel number.
func (r *ParcelRepository) List(ctx context.Context, filter models.LandParcelFilter) ([]models.LandParcel, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 3)
	builder.WriteString(`SELECT ` + parcelColumns + ` FROM land_parcels`)

	conditions := make([]string, 0, 3)
	if filter.ParcelNumber != "" {
		args = append(args, filter.ParcelNumber)
		conditions = append(conditions, fmt.Sprintf("parcel_number = $%d", len(args)))
	}
	if filter.ZoningCode != "" {
		args = append(args, filter.ZoningCode)
		conditions = append(conditions, fmt.Sprintf("zoning_code = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(parcel_number ILIKE $%d OR address ILIKE $%d OR owner_name ILIKE $%d)", len(args), len(args), len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY parcel_number ASC")

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var parcels []models.LandParcel
	if err := r.db.SelectContext(ctx, &parcels, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list land parcels: %w", err)
	}
	return parcels, nil
}

// ListWithGeometry returns parcels that carry boundary geometry.
func (r *ParcelRepository) ListWithGeometry(ctx context.Context) ([]models.LandParcel, error) {
	query := fmt.Sprintf(`SELECT %s FROM land_parcels WHERE geojson IS NOT NULL ORDER BY parcel_number ASC`, parcelColumns)
	var parcels []models.LandParcel
	if err := r.db.SelectContext(ctx, &parcels, query); err != nil {
		return nil, fmt.Errorf("list parcels with geometry: %w", err)
	}
	return parcels, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/landgov/landadmin-api/internal/models"
)

// EvidenceRepository persists geolocated observations.
type EvidenceRepository struct {
	db *sqlx.DB
}

// NewEvidenceRepository constructs the repository.
func NewEvidenceRepository(db *sqlx.DB) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

// Create inserts a new evidence row.
func (r *EvidenceRepository) Create(ctx context.Context, evidence *models.SpatialEvidence) error {
	if evidence.ID == "" {
		evidence.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if evidence.CapturedAt.IsZero() {
		evidence.CapturedAt = now
	}
	if evidence.CreatedAt.IsZero() {
		evidence.CreatedAt = now
	}
	const query = `INSERT INTO spatial_evidence
	(id, request_id, parcel_id, inspection_id, evidence_type, description, latitude, longitude, accuracy_meters, photo_url, captured_by, captured_at, created_at)
	VALUES (:id, :request_id, :parcel_id, :inspection_id, :evidence_type, :description, :latitude, :longitude, :accuracy_meters, :photo_url, :captured_by, :captured_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evidence); err != nil {
		return fmt.Errorf("create spatial evidence: %w", err)
	}
	return nil
}

// List returns evidence matching the filter, newest capture first.
func (r *EvidenceRepository) List(ctx context.Context, filter models.SpatialEvidenceFilter) ([]models.SpatialEvidence, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT id, request_id, parcel_id, inspection_id, evidence_type, description,
       latitude, longitude, accuracy_meters, photo_url, captured_by, captured_at, created_at
	FROM spatial_evidence`)

	conditions := make([]string, 0, 4)
	if filter.RequestID != "" {
		args = append(args, filter.RequestID)
		conditions = append(conditions, fmt.Sprintf("request_id = $%d", len(args)))
	}
	if filter.ParcelID != "" {
		args = append(args, filter.ParcelID)
		conditions = append(conditions, fmt.Sprintf("parcel_id = $%d", len(args)))
	}
	if filter.InspectionID != "" {
		args = append(args, filter.InspectionID)
		conditions = append(conditions, fmt.Sprintf("inspection_id = $%d", len(args)))
	}
	if filter.EvidenceType != "" {
		args = append(args, filter.EvidenceType)
		conditions = append(conditions, fmt.Sprintf("evidence_type = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY captured_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var evidence []models.SpatialEvidence
	if err := r.db.SelectContext(ctx, &evidence, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list spatial evidence: %w", err)
	}
	return evidence, nil
}

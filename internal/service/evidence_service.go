package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

type evidenceStore interface {
	Create(ctx context.Context, evidence *models.SpatialEvidence) error
	List(ctx context.Context, filter models.SpatialEvidenceFilter) ([]models.SpatialEvidence, error)
}

// EvidenceService records geolocated field observations used to back legal
// responses.
type EvidenceService struct {
	evidence evidenceStore
	logger   *zap.Logger
}

// NewEvidenceService wires the evidence service.
func NewEvidenceService(evidence evidenceStore, logger *zap.Logger) *EvidenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvidenceService{evidence: evidence, logger: logger}
}

// Create records one observation. Evidence must hang off at least one parent:
// a request, a parcel or an inspection.
func (s *EvidenceService) Create(ctx context.Context, payload dto.CreateSpatialEvidenceRequest, actorID string) (*models.SpatialEvidence, error) {
	if !payload.EvidenceType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown evidence type %q", payload.EvidenceType))
	}
	if payload.RequestID == "" && payload.ParcelID == "" && payload.InspectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"evidence must reference a request, parcel or inspection")
	}
	if (payload.Latitude == nil) != (payload.Longitude == nil) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "latitude and longitude must be set together")
	}
	if payload.Latitude != nil {
		if *payload.Latitude < -90 || *payload.Latitude > 90 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "latitude out of range")
		}
		if *payload.Longitude < -180 || *payload.Longitude > 180 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "longitude out of range")
		}
	}

	evidence := &models.SpatialEvidence{
		RequestID:      optionalString(payload.RequestID),
		ParcelID:       optionalString(payload.ParcelID),
		InspectionID:   optionalString(payload.InspectionID),
		EvidenceType:   payload.EvidenceType,
		Description:    optionalString(payload.Description),
		Latitude:       payload.Latitude,
		Longitude:      payload.Longitude,
		AccuracyMeters: payload.AccuracyMeters,
		PhotoURL:       optionalString(payload.PhotoURL),
		CapturedBy:     optionalString(actorID),
	}
	if payload.CapturedAt != nil {
		evidence.CapturedAt = *payload.CapturedAt
	}

	if err := s.evidence.Create(ctx, evidence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record evidence")
	}
	s.logger.Info("spatial evidence recorded",
		zap.String("evidence_id", evidence.ID),
		zap.String("evidence_type", string(evidence.EvidenceType)))
	return evidence, nil
}

// List returns evidence matching the filter.
func (s *EvidenceService) List(ctx context.Context, filter models.SpatialEvidenceFilter) (*dto.SpatialEvidenceList, error) {
	if filter.EvidenceType != "" && !filter.EvidenceType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown evidence type %q", filter.EvidenceType))
	}
	evidence, err := s.evidence.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evidence")
	}
	if evidence == nil {
		evidence = []models.SpatialEvidence{}
	}
	return &dto.SpatialEvidenceList{Evidence: evidence, Count: len(evidence)}, nil
}

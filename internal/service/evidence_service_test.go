package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

type evidenceStoreStub struct {
	created []models.SpatialEvidence
}

func (s *evidenceStoreStub) Create(ctx context.Context, evidence *models.SpatialEvidence) error {
	if evidence.ID == "" {
		evidence.ID = "ev-1"
	}
	s.created = append(s.created, *evidence)
	return nil
}

func (s *evidenceStoreStub) List(ctx context.Context, filter models.SpatialEvidenceFilter) ([]models.SpatialEvidence, error) {
	return s.created, nil
}

func TestEvidenceServiceCreate(t *testing.T) {
	store := &evidenceStoreStub{}
	svc := NewEvidenceService(store, nil)

	lat, lng := 5.6037, -0.1870
	evidence, err := svc.Create(context.Background(), dto.CreateSpatialEvidenceRequest{
		RequestID:    "req-1",
		EvidenceType: models.EvidenceEncroachment,
		Description:  "fence crosses boundary",
		Latitude:     &lat,
		Longitude:    &lng,
	}, "officer-1")
	require.NoError(t, err)
	require.Equal(t, models.EvidenceEncroachment, evidence.EvidenceType)
	require.NotNil(t, evidence.RequestID)
	require.Len(t, store.created, 1)
}

func TestEvidenceServiceRequiresParent(t *testing.T) {
	svc := NewEvidenceService(&evidenceStoreStub{}, nil)
	_, err := svc.Create(context.Background(), dto.CreateSpatialEvidenceRequest{
		EvidenceType: models.EvidenceSitePhoto,
	}, "officer-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestEvidenceServiceCoordinateValidation(t *testing.T) {
	svc := NewEvidenceService(&evidenceStoreStub{}, nil)

	lat := 5.0
	_, err := svc.Create(context.Background(), dto.CreateSpatialEvidenceRequest{
		ParcelID:     "parcel-1",
		EvidenceType: models.EvidenceGPSCoordinate,
		Latitude:     &lat,
	}, "officer-1")
	require.Error(t, err, "latitude without longitude must be rejected")

	badLat, lng := 95.0, 10.0
	_, err = svc.Create(context.Background(), dto.CreateSpatialEvidenceRequest{
		ParcelID:     "parcel-1",
		EvidenceType: models.EvidenceGPSCoordinate,
		Latitude:     &badLat,
		Longitude:    &lng,
	}, "officer-1")
	require.Error(t, err, "out of range latitude must be rejected")
}

func TestEvidenceServiceRejectsUnknownType(t *testing.T) {
	svc := NewEvidenceService(&evidenceStoreStub{}, nil)
	_, err := svc.Create(context.Background(), dto.CreateSpatialEvidenceRequest{
		ParcelID:     "parcel-1",
		EvidenceType: "hearsay",
	}, "officer-1")
	require.Error(t, err)
}

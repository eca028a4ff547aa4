package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

const parcelGeoJSONCacheKey = "parcels:geojson"

type parcelStore interface {
	GetByID(ctx context.Context, id string) (*models.LandParcel, error)
	List(ctx context.Context, filter models.LandParcelFilter) ([]models.LandParcel, error)
	ListWithGeometry(ctx context.Context) ([]models.LandParcel, error)
}

type parcelRequestLister interface {
	List(ctx context.Context, filter models.LegalRequestFilter) ([]models.LegalPlanningRequest, error)
}

type parcelEvidenceLister interface {
	List(ctx context.Context, filter models.SpatialEvidenceFilter) ([]models.SpatialEvidence, error)
}

// ParcelService serves the land parcel registry and its legal read models,
// including the map layer consumed by the GIS frontend.
type ParcelService struct {
	parcels  parcelStore
	requests parcelRequestLister
	evidence parcelEvidenceLister
	cache    badgeCache
	logger   *zap.Logger

	geoCacheTTL time.Duration
	now         func() time.Time
}

// NewParcelService wires the parcel read service.
func NewParcelService(
	parcels parcelStore,
	requests parcelRequestLister,
	evidence parcelEvidenceLister,
	cache badgeCache,
	logger *zap.Logger,
) *ParcelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParcelService{
		parcels:     parcels,
		requests:    requests,
		evidence:    evidence,
		cache:       cache,
		logger:      logger,
		geoCacheTTL: 5 * time.Minute,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Get returns one parcel.
func (s *ParcelService) Get(ctx context.Context, id string) (*models.LandParcel, error) {
	parcel, err := s.parcels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parcel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parcel")
	}
	return parcel, nil
}

// List returns parcels matching the filter.
func (s *ParcelService) List(ctx context.Context, filter models.LandParcelFilter) ([]models.LandParcel, error) {
	parcels, err := s.parcels.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parcels")
	}
	if parcels == nil {
		parcels = []models.LandParcel{}
	}
	return parcels, nil
}

// LegalInfo aggregates a parcel with its legal requests, evidence and
// headline counts. Pending counts the states awaiting division action;
// overdue is computed against the clock at read time.
func (s *ParcelService) LegalInfo(ctx context.Context, id string) (*dto.ParcelLegalInfoResponse, error) {
	parcel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.List(ctx, models.LegalRequestFilter{ParcelID: id, Limit: 200})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parcel requests")
	}
	evidence, err := s.evidence.List(ctx, models.SpatialEvidenceFilter{ParcelID: id, Limit: 200})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parcel evidence")
	}
	if requests == nil {
		requests = []models.LegalPlanningRequest{}
	}
	if evidence == nil {
		evidence = []models.SpatialEvidence{}
	}

	now := s.now()
	summary := dto.ParcelLegalSummary{
		TotalLegalRequests: len(requests),
		TotalEvidence:      len(evidence),
	}
	for i := range requests {
		DecorateSLA(&requests[i], now)
		if !isTerminalSuccess(requests[i].Status) {
			summary.PendingLegalRequests++
		}
		if requests[i].IsOverdue {
			summary.OverdueLegalRequests++
		}
	}

	return &dto.ParcelLegalInfoResponse{
		Parcel:          *parcel,
		LegalRequests:   requests,
		SpatialEvidence: evidence,
		Summary:         summary,
	}, nil
}

// GeoJSON assembles the parcel boundary layer as a feature collection. The
// layer is cached briefly since the map polls it.
func (s *ParcelService) GeoJSON(ctx context.Context) (*models.GeoJSONFeatureCollection, error) {
	if s.cache != nil {
		var cached models.GeoJSONFeatureCollection
		if err := s.cache.Get(ctx, parcelGeoJSONCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	parcels, err := s.parcels.ListWithGeometry(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parcel geometry")
	}

	collection := &models.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]models.GeoJSONFeature, 0, len(parcels)),
	}
	for _, parcel := range parcels {
		if len(parcel.GeoJSON) == 0 {
			continue
		}
		properties := map[string]interface{}{
			"id":            parcel.ID,
			"parcel_number": parcel.ParcelNumber,
		}
		if parcel.ZoningCode != nil {
			properties["zoning_code"] = *parcel.ZoningCode
		}
		if parcel.Address != nil {
			properties["address"] = *parcel.Address
		}
		collection.Features = append(collection.Features, models.GeoJSONFeature{
			Type:       "Feature",
			Geometry:   parcel.GeoJSON,
			Properties: properties,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, parcelGeoJSONCacheKey, collection, s.geoCacheTTL); err != nil {
			s.logger.Warn("parcel geojson cache write failed", zap.Error(err))
		}
	}
	return collection, nil
}

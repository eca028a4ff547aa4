package dto

import (
	"time"

	"github.com/landgov/landadmin-api/internal/models"
)

// CreateSpatialEvidenceRequest is the payload for recording a geolocated observation.
type CreateSpatialEvidenceRequest struct {
	RequestID      string                     `json:"request_id"`
	ParcelID       string                     `json:"parcel_id"`
	InspectionID   string                     `json:"inspection_id"`
	EvidenceType   models.SpatialEvidenceType `json:"evidence_type" binding:"required"`
	Description    string                     `json:"description"`
	Latitude       *float64                   `json:"latitude"`
	Longitude      *float64                   `json:"longitude"`
	AccuracyMeters *float64                   `json:"accuracy_meters"`
	PhotoURL       string                     `json:"photo_url"`
	CapturedAt     *time.Time                 `json:"captured_at"`
}

// SpatialEvidenceList bundles matching evidence with its count.
type SpatialEvidenceList struct {
	Evidence []models.SpatialEvidence `json:"evidence"`
	Count    int                      `json:"count"`
}

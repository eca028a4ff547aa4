package models

import "time"

// SpatialEvidenceType enumerates geolocated observation kinds.
type SpatialEvidenceType string

const (
	EvidenceSitePhoto             SpatialEvidenceType = "site_photo"
	EvidenceGPSCoordinate         SpatialEvidenceType = "gps_coordinate"
	EvidenceBoundaryMarker        SpatialEvidenceType = "boundary_marker"
	EvidenceEncroachment          SpatialEvidenceType = "encroachment"
	EvidenceUnauthorizedStructure SpatialEvidenceType = "unauthorized_structure"
	EvidenceComplianceViolation   SpatialEvidenceType = "compliance_violation"
	EvidenceSiteCondition         SpatialEvidenceType = "site_condition"
	EvidenceOther                 SpatialEvidenceType = "other"
)

// Valid reports whether the value is a known evidence type.
func (t SpatialEvidenceType) Valid() bool {
	switch t {
	case EvidenceSitePhoto, EvidenceGPSCoordinate, EvidenceBoundaryMarker,
		EvidenceEncroachment, EvidenceUnauthorizedStructure,
		EvidenceComplianceViolation, EvidenceSiteCondition, EvidenceOther:
		return true
	}
	return false
}

// SpatialEvidence is a geolocated observation attached to a request, parcel,
// or inspection. At least one parent reference must be set.
type SpatialEvidence struct {
	ID           string  `db:"id" json:"id"`
	RequestID    *string `db:"request_id" json:"request_id,omitempty"`
	ParcelID     *string `db:"parcel_id" json:"parcel_id,omitempty"`
	InspectionID *string `db:"inspection_id" json:"inspection_id,omitempty"`

	EvidenceType SpatialEvidenceType `db:"evidence_type" json:"evidence_type"`
	Description  *string             `db:"description" json:"description,omitempty"`

	Latitude       *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64 `db:"longitude" json:"longitude,omitempty"`
	AccuracyMeters *float64 `db:"accuracy_meters" json:"accuracy_meters,omitempty"`

	PhotoURL *string `db:"photo_url" json:"photo_url,omitempty"`

	CapturedBy *string   `db:"captured_by" json:"captured_by,omitempty"`
	CapturedAt time.Time `db:"captured_at" json:"captured_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SpatialEvidenceFilter constrains evidence listing.
type SpatialEvidenceFilter struct {
	RequestID    string
	ParcelID     string
	InspectionID string
	EvidenceType SpatialEvidenceType
	Limit        int
	Offset       int
}

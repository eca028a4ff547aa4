package dto

import "github.com/landgov/landadmin-api/internal/models"

// ParcelLegalInfoResponse aggregates everything legally relevant for one parcel.
type ParcelLegalInfoResponse struct {
	Parcel          models.LandParcel             `json:"parcel"`
	LegalRequests   []models.LegalPlanningRequest `json:"legal_requests"`
	SpatialEvidence []models.SpatialEvidence      `json:"spatial_evidence"`
	Summary         ParcelLegalSummary            `json:"summary"`
}

// ParcelLegalSummary holds headline counts for the parcel view.
type ParcelLegalSummary struct {
	TotalLegalRequests   int `json:"total_legal_requests"`
	PendingLegalRequests int `json:"pending_legal_requests"`
	OverdueLegalRequests int `json:"overdue_legal_requests"`
	TotalEvidence        int `json:"total_evidence"`
}

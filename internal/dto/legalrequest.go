package dto

import (
	"time"

	"github.com/landgov/landadmin-api/internal/models"
)

// CreateLegalRequestRequest is the payload for submitting a new inter-division request.
type CreateLegalRequestRequest struct {
	RequestType       models.LegalRequestType    `json:"request_type" binding:"required"`
	Subject           string                     `json:"subject" binding:"required"`
	Description       string                     `json:"description"`
	Urgency           models.LegalRequestUrgency `json:"urgency"`
	LegalOfficerName  string                     `json:"legal_officer_name" binding:"required"`
	LegalOfficerEmail string                     `json:"legal_officer_email"`
	LegalOfficerPhone string                     `json:"legal_officer_phone"`
	LegalCaseNumber   string                     `json:"legal_case_number"`
	LegalDivisionRef  string                     `json:"legal_division_ref"`
	ParcelID          string                     `json:"parcel_id"`
	ApplicationID     string                     `json:"application_id"`
	SLADays           int                        `json:"sla_days"`
	DueDate           *time.Time                 `json:"due_date"`
	RequestNumber     string                     `json:"request_number"`
}

// AssignOfficerRequest assigns a planning officer to a request.
type AssignOfficerRequest struct {
	OfficerID string `json:"officer_id" binding:"required"`
}

// TransitionRequest moves a request to a new workflow status.
type TransitionRequest struct {
	Status  models.LegalRequestStatus `json:"status" binding:"required"`
	Comment string                    `json:"comment"`
}

// SubmitResponseRequest records the division's response and completes the request.
type SubmitResponseRequest struct {
	ResponseSummary string `json:"response_summary" binding:"required"`
	Findings        string `json:"findings"`
	Recommendations string `json:"recommendations"`
}

// WithdrawRequest closes a request from any state.
type WithdrawRequest struct {
	Comment string `json:"comment"`
}

// ExtendDeadlineRequest rewrites the due date. This is the only operation
// allowed to do so.
type ExtendDeadlineRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
	Comment string    `json:"comment"`
}

// AddCommentRequest appends a standalone comment to the activity trail.
type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// LegalRequestQuery mirrors supported listing filters.
type LegalRequestQuery struct {
	Status          []models.LegalRequestStatus
	Urgency         models.LegalRequestUrgency
	LegalCaseNumber string
	AssignedTo      string
	ParcelID        string
	Limit           int
	Offset          int
}

// LegalRequestList bundles matching requests with their count.
type LegalRequestList struct {
	Requests []models.LegalPlanningRequest `json:"requests"`
	Count    int                           `json:"count"`
}

// LegalRequestDetail is a request joined with its relations.
type LegalRequestDetail struct {
	models.LegalPlanningRequest
	Parcel    *models.LandParcel            `json:"parcel,omitempty"`
	Assignee  *models.UserInfo              `json:"assignee,omitempty"`
	Documents []models.LegalRequestDocument `json:"documents"`
	Activity  []models.LegalRequestActivity `json:"activity"`
}

// UnreadCountResponse carries the sidebar badge value.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

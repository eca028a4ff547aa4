package models

import "time"

// LegalRequestType enumerates the request categories accepted from the Legal Division.
type LegalRequestType string

const (
	RequestTypeZoningConfirmation      LegalRequestType = "zoning_confirmation"
	RequestTypeZoningChangeVerify      LegalRequestType = "zoning_change_verification"
	RequestTypeDevApprovalVerify       LegalRequestType = "development_approval_verification"
	RequestTypeComplianceInvestigation LegalRequestType = "compliance_investigation_request"
	RequestTypeUnauthorizedDevelopment LegalRequestType = "unauthorized_development_report"
	RequestTypeParcelHistory           LegalRequestType = "parcel_history_request"
	RequestTypeInspectionFindings      LegalRequestType = "inspection_findings_request"
	RequestTypeSpatialEvidence         LegalRequestType = "spatial_evidence_request"
	RequestTypeBoundaryDispute         LegalRequestType = "boundary_dispute_assessment"
	RequestTypePlanningOpinion         LegalRequestType = "planning_opinion"
	RequestTypeOther                   LegalRequestType = "other"
)

// Valid reports whether the value is a known request type.
func (t LegalRequestType) Valid() bool {
	switch t {
	case RequestTypeZoningConfirmation, RequestTypeZoningChangeVerify,
		RequestTypeDevApprovalVerify, RequestTypeComplianceInvestigation,
		RequestTypeUnauthorizedDevelopment, RequestTypeParcelHistory,
		RequestTypeInspectionFindings, RequestTypeSpatialEvidence,
		RequestTypeBoundaryDispute, RequestTypePlanningOpinion, RequestTypeOther:
		return true
	}
	return false
}

// LegalRequestStatus captures workflow states for inter-division requests.
type LegalRequestStatus string

const (
	StatusSubmitted          LegalRequestStatus = "submitted"
	StatusReceived           LegalRequestStatus = "received"
	StatusAssigned           LegalRequestStatus = "assigned"
	StatusInProgress         LegalRequestStatus = "in_progress"
	StatusPendingInformation LegalRequestStatus = "pending_information"
	StatusUnderReview        LegalRequestStatus = "under_review"
	StatusCompleted          LegalRequestStatus = "completed"
	StatusReturnedToLegal    LegalRequestStatus = "returned_to_legal"
	StatusClosed             LegalRequestStatus = "closed"
)

// LegalRequestUrgency ranks how quickly a request must be handled.
type LegalRequestUrgency string

const (
	UrgencyLow    LegalRequestUrgency = "low"
	UrgencyNormal LegalRequestUrgency = "normal"
	UrgencyHigh   LegalRequestUrgency = "high"
	UrgencyUrgent LegalRequestUrgency = "urgent"
)

// Valid reports whether the value is a known urgency.
func (u LegalRequestUrgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// ClosureReason distinguishes why a request reached the closed state.
type ClosureReason string

const (
	ClosureCompleted ClosureReason = "completed"
	ClosureWithdrawn ClosureReason = "withdrawn"
)

// LegalPlanningRequest is one inter-division request tracked through the SLA workflow.
// IsOverdue and DaysRemaining are derived at read time by the SLA calculator
// and are never persisted.
type LegalPlanningRequest struct {
	ID            string `db:"id" json:"id"`
	RequestNumber string `db:"request_number" json:"request_number"`

	LegalCaseNumber   *string `db:"legal_case_number" json:"legal_case_number,omitempty"`
	LegalOfficerName  string  `db:"legal_officer_name" json:"legal_officer_name"`
	LegalOfficerEmail *string `db:"legal_officer_email" json:"legal_officer_email,omitempty"`
	LegalOfficerPhone *string `db:"legal_officer_phone" json:"legal_officer_phone,omitempty"`
	LegalDivisionRef  *string `db:"legal_division_ref" json:"legal_division_ref,omitempty"`

	RequestType LegalRequestType    `db:"request_type" json:"request_type"`
	Subject     string              `db:"subject" json:"subject"`
	Description *string             `db:"description" json:"description,omitempty"`
	Urgency     LegalRequestUrgency `db:"urgency" json:"urgency"`

	ParcelID      *string `db:"parcel_id" json:"parcel_id,omitempty"`
	ApplicationID *string `db:"application_id" json:"application_id,omitempty"`

	AssignedTo *string    `db:"assigned_to" json:"assigned_to,omitempty"`
	AssignedBy *string    `db:"assigned_by" json:"assigned_by,omitempty"`
	AssignedAt *time.Time `db:"assigned_at" json:"assigned_at,omitempty"`

	Status        LegalRequestStatus `db:"status" json:"status"`
	ClosureReason *ClosureReason     `db:"closure_reason" json:"closure_reason,omitempty"`

	SubmittedDate time.Time  `db:"submitted_date" json:"submitted_date"`
	ReceivedAt    *time.Time `db:"received_at" json:"received_at,omitempty"`
	DueDate       *time.Time `db:"due_date" json:"due_date,omitempty"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	SLADays       int        `db:"sla_days" json:"sla_days"`

	ResponseSummary *string `db:"response_summary" json:"response_summary,omitempty"`
	Findings        *string `db:"findings" json:"findings,omitempty"`
	Recommendations *string `db:"recommendations" json:"recommendations,omitempty"`

	Version       int64     `db:"version" json:"version"`
	LastUpdatedBy *string   `db:"last_updated_by" json:"last_updated_by,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	IsOverdue     bool `db:"-" json:"is_overdue"`
	DaysRemaining *int `db:"-" json:"days_remaining,omitempty"`
}

// LegalRequestFilter constrains listing queries.
type LegalRequestFilter struct {
	Status          []LegalRequestStatus
	Urgency         LegalRequestUrgency
	LegalCaseNumber string
	AssignedTo      string
	ParcelID        string
	Limit           int
	Offset          int
}

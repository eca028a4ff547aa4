package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/landgov/landadmin-api/internal/models"
)

const legalRequestColumns = `id, request_number, legal_case_number, legal_officer_name, legal_officer_email,
       legal_officer_phone, legal_division_ref, request_type, subject, description, urgency,
       parcel_id, application_id, assigned_to, assigned_by, assigned_at, status, closure_reason,
       submitted_date, received_at, due_date, completed_at, sla_days,
       response_summary, findings, recommendations, version, last_updated_by, created_at, updated_at`

const insertLegalRequestQuery = `INSERT INTO legal_planning_requests
	(id, request_number, legal_case_number, legal_officer_name, legal_officer_email,
	 legal_officer_phone, legal_division_ref, request_type, subject, description, urgency,
	 parcel_id, application_id, assigned_to, assigned_by, assigned_at, status, closure_reason,
	 submitted_date, received_at, due_date, completed_at, sla_days,
	 response_summary, findings, recommendations, version, last_updated_by, created_at, updated_at)
	VALUES (:id, :request_number, :legal_case_number, :legal_officer_name, :legal_officer_email,
	 :legal_officer_phone, :legal_division_ref, :request_type, :subject, :description, :urgency,
	 :parcel_id, :application_id, :assigned_to, :assigned_by, :assigned_at, :status, :closure_reason,
	 :submitted_date, :received_at, :due_date, :completed_at, :sla_days,
	 :response_summary, :findings, :recommendations, :version, :last_updated_by, :created_at, :updated_at)`

// LegalRequestRepository persists inter-division request records. Mutations
// that carry an audit entry run inside one transaction so the record and the
// activity trail can never diverge.
type LegalRequestRepository struct {
	db *sqlx.DB
}

// NewLegalRequestRepository constructs the repository.
func NewLegalRequestRepository(db *sqlx.DB) *LegalRequestRepository {
	return &LegalRequestRepository{db: db}
}

// CreateWithActivity inserts the request row and its initial activity entry
// atomically.
func (r *LegalRequestRepository) CreateWithActivity(ctx context.Context, request *models.LegalPlanningRequest, entry *models.LegalRequestActivity) error {
	now := time.Now().UTC()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.StatusSubmitted
	}
	if request.SubmittedDate.IsZero() {
		request.SubmittedDate = now
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = request.CreatedAt
	if request.Version == 0 {
		request.Version = 1
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create legal request: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := sqlx.NamedExecContext(ctx, tx, insertLegalRequestQuery, request); err != nil {
		return fmt.Errorf("create legal request: %w", err)
	}
	if entry != nil {
		entry.RequestID = request.ID
		if err := insertActivity(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create legal request: %w", err)
	}
	return nil
}

// GetByID fetches a request by identifier.
func (r *LegalRequestRepository) GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM legal_planning_requests WHERE id = $1`, legalRequestColumns)
	var request models.LegalPlanningRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the filter, newest first.
func (r *LegalRequestRepository) List(ctx context.Context, filter models.LegalRequestFilter) ([]models.LegalPlanningRequest, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 6)
	builder.WriteString(`SELECT ` + legalRequestColumns + ` FROM legal_planning_requests`)

	conditions := make([]string, 0, 5)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Urgency != "" {
		args = append(args, filter.Urgency)
		conditions = append(conditions, fmt.Sprintf("urgency = $%d", len(args)))
	}
	if filter.LegalCaseNumber != "" {
		args = append(args, filter.LegalCaseNumber)
		conditions = append(conditions, fmt.Sprintf("legal_case_number = $%d", len(args)))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if filter.ParcelID != "" {
		args = append(args, filter.ParcelID)
		conditions = append(conditions, fmt.Sprintf("parcel_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var requests []models.LegalPlanningRequest
	if err := r.db.SelectContext(ctx, &requests, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list legal requests: %w", err)
	}
	return requests, nil
}

// CountByStatus counts requests currently in any of the provided statuses.
func (r *LegalRequestRepository) CountByStatus(ctx context.Context, statuses ...models.LegalRequestStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, status := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = status
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM legal_planning_requests WHERE status IN (%s)`,
		strings.Join(placeholders, ","))
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count legal requests: %w", err)
	}
	return count, nil
}

// ListOpenDueBefore returns non-terminal requests whose due date falls before
// the cutoff. Used by the deadline scan; overdue itself stays computed at read.
func (r *LegalRequestRepository) ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]models.LegalPlanningRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM legal_planning_requests
	WHERE due_date IS NOT NULL AND due_date <= $1 AND status NOT IN ($2, $3, $4)
	ORDER BY due_date ASC`, legalRequestColumns)
	var requests []models.LegalPlanningRequest
	err := r.db.SelectContext(ctx, &requests, query, cutoff,
		models.StatusCompleted, models.StatusReturnedToLegal, models.StatusClosed)
	if err != nil {
		return nil, fmt.Errorf("list due legal requests: %w", err)
	}
	return requests, nil
}

// UpdateWorkflowParams groups mutable columns for lifecycle operations. Nil
// pointers are left untouched; ExpectedVersion guards against lost updates.
type UpdateWorkflowParams struct {
	ID              string
	ExpectedVersion int64

	Status          *models.LegalRequestStatus
	ClosureReason   *models.ClosureReason
	AssignedTo      *string
	AssignedBy      *string
	AssignedAt      *time.Time
	ReceivedAt      *time.Time
	DueDate         *time.Time
	CompletedAt     *time.Time
	ResponseSummary *string
	Findings        *string
	Recommendations *string
	LastUpdatedBy   *string
	UpdatedAt       time.Time
}

// UpdateWorkflow applies a conditional write guarded by the record version
// and appends the activity entry in the same transaction. Returns
// sql.ErrNoRows when the row is missing or the version moved on; in that
// case nothing is written.
func (r *LegalRequestRepository) UpdateWorkflow(ctx context.Context, params UpdateWorkflowParams, entry *models.LegalRequestActivity) error {
	setParts := []string{
		"version = version + 1",
		"updated_at = :updated_at",
	}
	named := map[string]interface{}{
		"id":               params.ID,
		"expected_version": params.ExpectedVersion,
		"updated_at":       params.UpdatedAt,
	}
	if params.Status != nil {
		setParts = append(setParts, "status = :status")
		named["status"] = *params.Status
	}
	if params.ClosureReason != nil {
		setParts = append(setParts, "closure_reason = :closure_reason")
		named["closure_reason"] = *params.ClosureReason
	}
	if params.AssignedTo != nil {
		setParts = append(setParts, "assigned_to = :assigned_to")
		named["assigned_to"] = *params.AssignedTo
	}
	if params.AssignedBy != nil {
		setParts = append(setParts, "assigned_by = :assigned_by")
		named["assigned_by"] = *params.AssignedBy
	}
	if params.AssignedAt != nil {
		setParts = append(setParts, "assigned_at = :assigned_at")
		named["assigned_at"] = *params.AssignedAt
	}
	if params.ReceivedAt != nil {
		setParts = append(setParts, "received_at = :received_at")
		named["received_at"] = *params.ReceivedAt
	}
	if params.DueDate != nil {
		setParts = append(setParts, "due_date = :due_date")
		named["due_date"] = *params.DueDate
	}
	if params.CompletedAt != nil {
		setParts = append(setParts, "completed_at = :completed_at")
		named["completed_at"] = *params.CompletedAt
	}
	if params.ResponseSummary != nil {
		setParts = append(setParts, "response_summary = :response_summary")
		named["response_summary"] = *params.ResponseSummary
	}
	if params.Findings != nil {
		setParts = append(setParts, "findings = :findings")
		named["findings"] = *params.Findings
	}
	if params.Recommendations != nil {
		setParts = append(setParts, "recommendations = :recommendations")
		named["recommendations"] = *params.Recommendations
	}
	if params.LastUpdatedBy != nil {
		setParts = append(setParts, "last_updated_by = :last_updated_by")
		named["last_updated_by"] = *params.LastUpdatedBy
	}

	query := fmt.Sprintf("UPDATE legal_planning_requests SET %s WHERE id = :id AND version = :expected_version",
		strings.Join(setParts, ", "))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin workflow update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := sqlx.NamedExecContext(ctx, tx, query, named)
	if err != nil {
		return fmt.Errorf("update legal request workflow: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check legal request update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	if entry != nil {
		entry.RequestID = params.ID
		if err := insertActivity(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit workflow update: %w", err)
	}
	return nil
}

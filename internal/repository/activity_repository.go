package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/landgov/landadmin-api/internal/models"
)

const insertActivityQuery = `INSERT INTO legal_request_activity
	(id, request_id, user_id, activity_type, old_value, new_value, comment, created_at)
	VALUES (:id, :request_id, :user_id, :activity_type, :old_value, :new_value, :comment, :created_at)`

// insertActivity writes one audit row on the given executor, which lets the
// request repository append inside its own transaction.
func insertActivity(ctx context.Context, ext sqlx.ExtContext, entry *models.LegalRequestActivity) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := sqlx.NamedExecContext(ctx, ext, insertActivityQuery, entry); err != nil {
		return fmt.Errorf("append request activity: %w", err)
	}
	return nil
}

// ActivityRepository persists the append-only audit trail. Rows are never
// updated or deleted.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts one activity entry outside any request mutation, for
// operations such as comments that do not touch the request row itself.
func (r *ActivityRepository) Append(ctx context.Context, entry *models.LegalRequestActivity) error {
	return insertActivity(ctx, r.db, entry)
}

// ListByRequest returns the trail for one request, newest first.
func (r *ActivityRepository) ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestActivity, error) {
	const query = `SELECT id, request_id, user_id, activity_type, old_value, new_value, comment, created_at
	FROM legal_request_activity WHERE request_id = $1 ORDER BY created_at DESC, id DESC`
	var entries []models.LegalRequestActivity
	if err := r.db.SelectContext(ctx, &entries, query, requestID); err != nil {
		return nil, fmt.Errorf("list request activity: %w", err)
	}
	return entries, nil
}

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

// NotificationRepository persists per-user alert rows.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notifications
	(id, user_id, title, message, type, severity, related_entity_type, related_entity_id, is_read, is_dismissed, read_at, created_at)
	VALUES (:id, :user_id, :title, :message, :type, :severity, :related_entity_type, :related_entity_id, :is_read, :is_dismissed, :read_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// List returns notifications matching the filter, newest first.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 2)
	builder.WriteString(`SELECT id, user_id, title, message, type, severity, related_entity_type, related_entity_id,
       is_read, is_dismissed, read_at, created_at FROM notifications`)

	conditions := []string{"is_dismissed = FALSE"}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.UnreadOnly {
		conditions = append(conditions, "is_read = FALSE")
	}
	builder.WriteString(" WHERE ")
	builder.WriteString(strings.Join(conditions, " AND "))
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

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read for the owning user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string, readAt time.Time) error {
	const query = `UPDATE notifications SET is_read = TRUE, read_at = $3 WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID, readAt)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return requireRow(result)
}

// Dismiss hides a notification for the owning user.
func (r *NotificationRepository) Dismiss(ctx context.Context, id, userID string) error {
	const query = `UPDATE notifications SET is_dismissed = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	return requireRow(result)
}

// ExistsForEntity reports whether a notification of the given type already
// targets the entity. Keeps the deadline scan from re-alerting every pass.
func (r *NotificationRepository) ExistsForEntity(ctx context.Context, notificationType models.NotificationType, entityID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM notifications WHERE type = $1 AND related_entity_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, notificationType, entityID); err != nil {
		return false, fmt.Errorf("check notification exists: %w", err)
	}
	return exists, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

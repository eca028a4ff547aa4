package models

import "time"

// NotificationType enumerates notification categories.
type NotificationType string

const (
	NotificationLegalRequest     NotificationType = "legal_request"
	NotificationAssignment       NotificationType = "assignment"
	NotificationStatusChange     NotificationType = "status_change"
	NotificationDocumentUploaded NotificationType = "document_uploaded"
	NotificationDeadlineWarning  NotificationType = "deadline_warning"
	NotificationOverdueAlert     NotificationType = "overdue_alert"
	NotificationEscalation       NotificationType = "escalation"
	NotificationGeneral          NotificationType = "general"
)

// NotificationSeverity ranks notification importance.
type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityUrgent   NotificationSeverity = "urgent"
	SeverityCritical NotificationSeverity = "critical"
)

// Notification is one per-user alert row.
type Notification struct {
	ID       string               `db:"id" json:"id"`
	UserID   string               `db:"user_id" json:"user_id"`
	Title    string               `db:"title" json:"title"`
	Message  string               `db:"message" json:"message"`
	Type     NotificationType     `db:"type" json:"type"`
	Severity NotificationSeverity `db:"severity" json:"severity"`

	RelatedEntityType *string `db:"related_entity_type" json:"related_entity_type,omitempty"`
	RelatedEntityID   *string `db:"related_entity_id" json:"related_entity_id,omitempty"`

	IsRead      bool       `db:"is_read" json:"is_read"`
	IsDismissed bool       `db:"is_dismissed" json:"is_dismissed"`
	ReadAt      *time.Time `db:"read_at" json:"read_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationFilter constrains notification listing.
type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
	Limit      int
	Offset     int
}

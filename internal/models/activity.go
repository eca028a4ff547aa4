package models

import "time"

// ActivityType enumerates the audit trail entry kinds.
type ActivityType string

const (
	ActivityCreated          ActivityType = "created"
	ActivityReceived         ActivityType = "received"
	ActivityAssigned         ActivityType = "assigned"
	ActivityStatusChanged    ActivityType = "status_changed"
	ActivityCommentAdded     ActivityType = "comment_added"
	ActivityDocumentUploaded ActivityType = "document_uploaded"
	ActivityResponseSent     ActivityType = "response_sent"
	ActivityDeadlineExtended ActivityType = "deadline_extended"
	ActivityEscalated        ActivityType = "escalated"
	ActivityCompleted        ActivityType = "completed"
	ActivityReopened         ActivityType = "reopened"
)

// LegalRequestActivity is one immutable audit trail row. Rows are only ever
// inserted; history is reconstructed by ordering on created_at.
type LegalRequestActivity struct {
	ID           string       `db:"id" json:"id"`
	RequestID    string       `db:"request_id" json:"request_id"`
	UserID       *string      `db:"user_id" json:"user_id,omitempty"`
	ActivityType ActivityType `db:"activity_type" json:"activity_type"`
	OldValue     *string      `db:"old_value" json:"old_value,omitempty"`
	NewValue     *string      `db:"new_value" json:"new_value,omitempty"`
	Comment      *string      `db:"comment" json:"comment,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

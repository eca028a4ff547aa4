package service

import (
	"math"
	"time"

	"github.com/landgov/landadmin-api/internal/models"
)

// The SLA calculator is the single source of truth for due-date arithmetic.
// Overdue state is a pure function of wall-clock time; nothing is ever cached
// into the stored record, so there is no flag to go stale and no background
// job is needed to flip one.

// ComputeDueDate returns the submission date advanced by the SLA day count.
func ComputeDueDate(submittedDate time.Time, slaDays int) time.Time {
	return submittedDate.AddDate(0, 0, slaDays)
}

// IsOverdue reports whether the request has blown its deadline. Requests in a
// terminal-success state are never overdue regardless of the clock.
func IsOverdue(dueDate *time.Time, status models.LegalRequestStatus, now time.Time) bool {
	if dueDate == nil {
		return false
	}
	if isTerminalSuccess(status) {
		return false
	}
	return now.After(*dueDate)
}

// DaysRemaining returns the whole-day distance to the due date, negative once
// past it, or nil when no due date is set.
func DaysRemaining(dueDate *time.Time, now time.Time) *int {
	if dueDate == nil {
		return nil
	}
	days := int(math.Ceil(dueDate.Sub(now).Hours() / 24))
	return &days
}

// DecorateSLA fills the derived SLA fields on a request in place.
func DecorateSLA(request *models.LegalPlanningRequest, now time.Time) {
	request.IsOverdue = IsOverdue(request.DueDate, request.Status, now)
	request.DaysRemaining = DaysRemaining(request.DueDate, now)
}

func isTerminalSuccess(status models.LegalRequestStatus) bool {
	switch status {
	case models.StatusCompleted, models.StatusReturnedToLegal, models.StatusClosed:
		return true
	}
	return false
}

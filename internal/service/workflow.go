package service

import (
	"fmt"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

// forwardTransitions is the legal next-state table. Withdrawal is not an
// entry here: it is a side-channel operation that forces closed from any
// non-terminal state.
var forwardTransitions = map[models.LegalRequestStatus][]models.LegalRequestStatus{
	models.StatusSubmitted:          {models.StatusReceived},
	models.StatusReceived:           {models.StatusAssigned},
	models.StatusAssigned:           {models.StatusInProgress},
	models.StatusInProgress:         {models.StatusUnderReview, models.StatusPendingInformation},
	models.StatusPendingInformation: {models.StatusInProgress},
	models.StatusUnderReview:        {models.StatusCompleted, models.StatusInProgress},
	models.StatusCompleted:          {models.StatusReturnedToLegal},
	models.StatusReturnedToLegal:    {models.StatusClosed},
	models.StatusClosed:             {},
}

// NextAllowed returns the set of statuses reachable from the current one.
// The closed state returns an empty set.
func NextAllowed(current models.LegalRequestStatus) []models.LegalRequestStatus {
	next, ok := forwardTransitions[current]
	if !ok {
		return nil
	}
	out := make([]models.LegalRequestStatus, len(next))
	copy(out, next)
	return out
}

// ValidateTransition rejects any requested move not present in the forward
// table. Callers must not coerce a rejected transition.
func ValidateTransition(current, next models.LegalRequestStatus) error {
	allowed, ok := forwardTransitions[current]
	if !ok {
		return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("unknown status %q", current))
	}
	for _, candidate := range allowed {
		if candidate == next {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition,
		fmt.Sprintf("cannot move from %s to %s", current, next))
}

// IsTerminal reports whether no forward transition leaves the status.
func IsTerminal(status models.LegalRequestStatus) bool {
	return len(forwardTransitions[status]) == 0
}

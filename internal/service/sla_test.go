package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/models"
)

func TestComputeDueDate(t *testing.T) {
	submitted := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	due := ComputeDueDate(submitted, 10)
	require.Equal(t, time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC), due)
}

func TestIsOverdueAfterDeadline(t *testing.T) {
	due := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.True(t, IsOverdue(&due, models.StatusInProgress, now))

	remaining := DaysRemaining(&due, now)
	require.NotNil(t, remaining)
	require.Equal(t, -4, *remaining)
}

func TestIsOverdueBeforeDeadline(t *testing.T) {
	due := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	require.False(t, IsOverdue(&due, models.StatusAssigned, now))

	remaining := DaysRemaining(&due, now)
	require.NotNil(t, remaining)
	require.Equal(t, 3, *remaining)
}

func TestIsOverdueTerminalStates(t *testing.T) {
	due := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 30)

	for _, status := range []models.LegalRequestStatus{
		models.StatusCompleted, models.StatusReturnedToLegal, models.StatusClosed,
	} {
		require.False(t, IsOverdue(&due, status, now), "status %s must never be overdue", status)
	}
}

func TestIsOverdueWithoutDueDate(t *testing.T) {
	require.False(t, IsOverdue(nil, models.StatusInProgress, time.Now()))
	require.Nil(t, DaysRemaining(nil, time.Now()))
}

func TestDecorateSLA(t *testing.T) {
	due := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	request := &models.LegalPlanningRequest{
		Status:  models.StatusInProgress,
		DueDate: &due,
	}
	DecorateSLA(request, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, request.IsOverdue)
	require.NotNil(t, request.DaysRemaining)
	require.Equal(t, -4, *request.DaysRemaining)
}

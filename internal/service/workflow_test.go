package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

func TestValidateTransitionHappyPath(t *testing.T) {
	path := []models.LegalRequestStatus{
		models.StatusSubmitted,
		models.StatusReceived,
		models.StatusAssigned,
		models.StatusInProgress,
		models.StatusUnderReview,
		models.StatusCompleted,
		models.StatusReturnedToLegal,
		models.StatusClosed,
	}
	for i := 0; i < len(path)-1; i++ {
		require.NoError(t, ValidateTransition(path[i], path[i+1]))
	}
}

func TestValidateTransitionLoops(t *testing.T) {
	require.NoError(t, ValidateTransition(models.StatusInProgress, models.StatusPendingInformation))
	require.NoError(t, ValidateTransition(models.StatusPendingInformation, models.StatusInProgress))
	require.NoError(t, ValidateTransition(models.StatusUnderReview, models.StatusInProgress))
}

func TestValidateTransitionRejections(t *testing.T) {
	cases := []struct {
		from models.LegalRequestStatus
		to   models.LegalRequestStatus
	}{
		{models.StatusSubmitted, models.StatusCompleted},
		{models.StatusSubmitted, models.StatusInProgress},
		{models.StatusCompleted, models.StatusInProgress},
		{models.StatusClosed, models.StatusSubmitted},
		{models.StatusClosed, models.StatusReceived},
		{models.StatusAssigned, models.StatusUnderReview},
	}
	for _, tc := range cases {
		err := ValidateTransition(tc.from, tc.to)
		require.Error(t, err, "%s -> %s should be rejected", tc.from, tc.to)
		require.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	err := ValidateTransition(models.LegalRequestStatus("bogus"), models.StatusReceived)
	require.Error(t, err)
}

func TestNextAllowed(t *testing.T) {
	for status, expected := range map[models.LegalRequestStatus]int{
		models.StatusSubmitted:   1,
		models.StatusInProgress:  2,
		models.StatusUnderReview: 2,
		models.StatusClosed:      0,
	} {
		require.Len(t, NextAllowed(status), expected)
	}
	require.Nil(t, NextAllowed(models.LegalRequestStatus("bogus")))
}

func TestIsTerminal(t *testing.T) {
	require.True(t, IsTerminal(models.StatusClosed))
	require.False(t, IsTerminal(models.StatusCompleted))
	require.False(t, IsTerminal(models.StatusSubmitted))
}

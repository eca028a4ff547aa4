package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

func TestExportServiceRegisterCSV(t *testing.T) {
	store := newLifecycleStoreStub()
	due := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	store.requests["req-1"] = &models.LegalPlanningRequest{
		ID:               "req-1",
		RequestNumber:    "LR-1700000000000",
		LegalOfficerName: "K. Mensah",
		RequestType:      models.RequestTypeZoningConfirmation,
		Subject:          "Confirm zoning for parcel GA-123",
		Urgency:          models.UrgencyHigh,
		Status:           models.StatusInProgress,
		SubmittedDate:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		DueDate:          &due,
		SLADays:          10,
		Version:          1,
	}

	svc := NewExportService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }

	payload, err := svc.RegisterCSV(context.Background(), dto.LegalRequestQuery{})
	require.NoError(t, err)
	require.True(t, bytes.Contains(payload, []byte("Request Number")))
	require.True(t, bytes.Contains(payload, []byte("LR-1700000000000")))
	require.True(t, bytes.Contains(payload, []byte("true")), "overdue flag should be rendered")
}

func TestExportServiceRegisterPDF(t *testing.T) {
	store := newLifecycleStoreStub()
	store.requests["req-1"] = &models.LegalPlanningRequest{
		ID:               "req-1",
		RequestNumber:    "LR-1",
		LegalOfficerName: "K. Mensah",
		RequestType:      models.RequestTypePlanningOpinion,
		Subject:          "Opinion on layout approval",
		Urgency:          models.UrgencyNormal,
		Status:           models.StatusSubmitted,
		SubmittedDate:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Version:          1,
	}

	svc := NewExportService(store, nil)
	payload, err := svc.RegisterPDF(context.Background(), dto.LegalRequestQuery{})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestExportServiceResponseLetter(t *testing.T) {
	svc := NewExportService(newLifecycleStoreStub(), nil)

	summary := "No conflicting zoning designation found."
	findings := "Parcel sits inside the approved residential scheme."
	completed := time.Date(2024, 1, 9, 16, 0, 0, 0, time.UTC)
	request := &models.LegalPlanningRequest{
		RequestNumber:    "LR-1",
		LegalOfficerName: "K. Mensah",
		RequestType:      models.RequestTypeZoningConfirmation,
		Subject:          "Confirm zoning for parcel GA-123",
		Status:           models.StatusCompleted,
		SubmittedDate:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		CompletedAt:      &completed,
		ResponseSummary:  &summary,
		Findings:         &findings,
	}

	payload, err := svc.ResponseLetter(context.Background(), request)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestExportServiceResponseLetterRequiresCompletion(t *testing.T) {
	svc := NewExportService(newLifecycleStoreStub(), nil)

	request := &models.LegalPlanningRequest{
		RequestNumber: "LR-1",
		Status:        models.StatusInProgress,
	}
	_, err := svc.ResponseLetter(context.Background(), request)
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInvalidState))

	summary := "done"
	request.ResponseSummary = &summary
	_, err = svc.ResponseLetter(context.Background(), request)
	require.Error(t, err, "response without a completed status must be rejected")
}

package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/models"
)

func newLegalRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestLegalRequestRepositoryCreateWithActivity(t *testing.T) {
	db, mock, cleanup := newLegalRequestRepoMock(t)
	defer cleanup()

	repo := NewLegalRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO legal_planning_requests")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO legal_request_activity")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	request := &models.LegalPlanningRequest{
		RequestNumber:    "LR-1700000000000",
		LegalOfficerName: "K. Mensah",
		RequestType:      models.RequestTypeZoningConfirmation,
		Subject:          "Confirm zoning for parcel GA-123",
		Urgency:          models.UrgencyNormal,
		SLADays:          10,
	}
	entry := &models.LegalRequestActivity{ActivityType: models.ActivityCreated}
	require.NoError(t, repo.CreateWithActivity(context.Background(), request, entry))

	require.NotEmpty(t, request.ID)
	require.Equal(t, models.StatusSubmitted, request.Status)
	require.Equal(t, int64(1), request.Version)
	require.Equal(t, request.ID, entry.RequestID)
	require.NotEmpty(t, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegalRequestRepositoryUpdateWorkflow(t *testing.T) {
	db, mock, cleanup := newLegalRequestRepoMock(t)
	defer cleanup()

	repo := NewLegalRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE legal_planning_requests SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO legal_request_activity")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	status := models.StatusReceived
	entry := &models.LegalRequestActivity{ActivityType: models.ActivityReceived}
	err := repo.UpdateWorkflow(context.Background(), UpdateWorkflowParams{
		ID:              "req-1",
		ExpectedVersion: 1,
		Status:          &status,
		UpdatedAt:       time.Now().UTC(),
	}, entry)
	require.NoError(t, err)
	require.Equal(t, "req-1", entry.RequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegalRequestRepositoryUpdateWorkflowVersionConflict(t *testing.T) {
	db, mock, cleanup := newLegalRequestRepoMock(t)
	defer cleanup()

	repo := NewLegalRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE legal_planning_requests SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	status := models.StatusReceived
	err := repo.UpdateWorkflow(context.Background(), UpdateWorkflowParams{
		ID:              "req-1",
		ExpectedVersion: 3,
		Status:          &status,
		UpdatedAt:       time.Now().UTC(),
	}, &models.LegalRequestActivity{ActivityType: models.ActivityReceived})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegalRequestRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newLegalRequestRepoMock(t)
	defer cleanup()

	repo := NewLegalRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM legal_planning_requests")).
		WithArgs("submitted", "received").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByStatus(context.Background(), models.StatusSubmitted, models.StatusReceived)
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegalRequestRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newLegalRequestRepoMock(t)
	defer cleanup()

	repo := NewLegalRequestRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_number", "request_type", "subject", "urgency", "status", "sla_days", "version", "submitted_date", "created_at", "updated_at"}).
		AddRow("req-1", "LR-1", "zoning_confirmation", "Confirm zoning", "high", "in_progress", 10, 2, now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, request_number")).
		WithArgs("in_progress", "high", "officer-1").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.LegalRequestFilter{
		Status:     []models.LegalRequestStatus{models.StatusInProgress},
		Urgency:    "high",
		AssignedTo: "officer-1",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "req-1", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/models"
)

func newActivityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestActivityRepositoryAppend(t *testing.T) {
	db, mock, cleanup := newActivityRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO legal_request_activity")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	comment := "requested survey plan copy"
	entry := &models.LegalRequestActivity{
		RequestID:    "req-1",
		ActivityType: models.ActivityCommentAdded,
		Comment:      &comment,
	}
	require.NoError(t, repo.Append(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryListByRequest(t *testing.T) {
	db, mock, cleanup := newActivityRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "user_id", "activity_type", "old_value", "new_value", "comment", "created_at"}).
		AddRow("act-2", "req-1", "officer-1", "status_changed", "received", "assigned", nil, now).
		AddRow("act-1", "req-1", nil, "created", nil, nil, "Request submitted by Legal Division", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, request_id, user_id, activity_type")).
		WithArgs("req-1").
		WillReturnRows(rows)

	entries, err := repo.ListByRequest(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, models.ActivityStatusChanged, entries[0].ActivityType)
	require.Nil(t, entries[1].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

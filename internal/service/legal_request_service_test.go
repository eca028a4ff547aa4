package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	"github.com/landgov/landadmin-api/internal/repository"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

// lifecycleStoreStub fakes the request table and activity trail together so
// the version guard and the one-entry-per-mutation discipline can be checked.
type lifecycleStoreStub struct {
	requests map[string]*models.LegalPlanningRequest
	activity []models.LegalRequestActivity
	countErr error
	count    int
}

func newLifecycleStoreStub() *lifecycleStoreStub {
	return &lifecycleStoreStub{requests: make(map[string]*models.LegalPlanningRequest)}
}

func (s *lifecycleStoreStub) CreateWithActivity(ctx context.Context, request *models.LegalPlanningRequest, entry *models.LegalRequestActivity) error {
	if request.ID == "" {
		request.ID = "req-" + request.RequestNumber
	}
	if request.Version == 0 {
		request.Version = 1
	}
	stored := *request
	s.requests[request.ID] = &stored
	if entry != nil {
		entry.RequestID = request.ID
		s.activity = append(s.activity, *entry)
	}
	return nil
}

func (s *lifecycleStoreStub) GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (s *lifecycleStoreStub) List(ctx context.Context, filter models.LegalRequestFilter) ([]models.LegalPlanningRequest, error) {
	result := make([]models.LegalPlanningRequest, 0, len(s.requests))
	for _, request := range s.requests {
		result = append(result, *request)
	}
	return result, nil
}

func (s *lifecycleStoreStub) CountByStatus(ctx context.Context, statuses ...models.LegalRequestStatus) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.count, nil
}

func (s *lifecycleStoreStub) UpdateWorkflow(ctx context.Context, params repository.UpdateWorkflowParams, entry *models.LegalRequestActivity) error {
	request, ok := s.requests[params.ID]
	if !ok || request.Version != params.ExpectedVersion {
		return sql.ErrNoRows
	}
	request.Version++
	request.UpdatedAt = params.UpdatedAt
	if params.Status != nil {
		request.Status = *params.Status
	}
	if params.ClosureReason != nil {
		request.ClosureReason = params.ClosureReason
	}
	if params.AssignedTo != nil {
		request.AssignedTo = params.AssignedTo
	}
	if params.AssignedBy != nil {
		request.AssignedBy = params.AssignedBy
	}
	if params.AssignedAt != nil {
		request.AssignedAt = params.AssignedAt
	}
	if params.ReceivedAt != nil {
		request.ReceivedAt = params.ReceivedAt
	}
	if params.DueDate != nil {
		request.DueDate = params.DueDate
	}
	if params.CompletedAt != nil {
		request.CompletedAt = params.CompletedAt
	}
	if params.ResponseSummary != nil {
		request.ResponseSummary = params.ResponseSummary
	}
	if params.Findings != nil {
		request.Findings = params.Findings
	}
	if params.Recommendations != nil {
		request.Recommendations = params.Recommendations
	}
	if params.LastUpdatedBy != nil {
		request.LastUpdatedBy = params.LastUpdatedBy
	}
	if entry != nil {
		entry.RequestID = params.ID
		s.activity = append(s.activity, *entry)
	}
	return nil
}

func (s *lifecycleStoreStub) Append(ctx context.Context, entry *models.LegalRequestActivity) error {
	s.activity = append(s.activity, *entry)
	return nil
}

func (s *lifecycleStoreStub) ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestActivity, error) {
	var entries []models.LegalRequestActivity
	for _, entry := range s.activity {
		if entry.RequestID == requestID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type officerDirStub struct {
	users map[string]*models.User
}

func (d *officerDirStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := d.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func newLifecycleService(store *lifecycleStoreStub) *LegalRequestService {
	users := &officerDirStub{users: map[string]*models.User{
		"officer-1": {ID: "officer-1", FullName: "A. Officer", Role: models.RolePlanningOfficer},
	}}
	svc := NewLegalRequestService(store, store, users, nil, nil, nil, nil, nil, 10, time.Second)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func createRequest(t *testing.T, svc *LegalRequestService) *models.LegalPlanningRequest {
	t.Helper()
	request, err := svc.Create(context.Background(), dto.CreateLegalRequestRequest{
		RequestType:      models.RequestTypeZoningConfirmation,
		Subject:          "Zoning status of parcel LP-42",
		LegalOfficerName: "K. Mensah",
	}, "legal-1")
	require.NoError(t, err)
	return request
}

func TestLegalRequestServiceCreate(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)

	request := createRequest(t, svc)

	require.Equal(t, models.StatusSubmitted, request.Status)
	require.Contains(t, request.RequestNumber, "LR-")
	require.Equal(t, 10, request.SLADays)
	require.NotNil(t, request.DueDate)
	require.Equal(t, svc.now().AddDate(0, 0, 10), *request.DueDate)
	require.Len(t, store.activity, 1)
	require.Equal(t, models.ActivityCreated, store.activity[0].ActivityType)
}

func TestLegalRequestServiceCreateRejectsUnknownType(t *testing.T) {
	svc := newLifecycleService(newLifecycleStoreStub())
	_, err := svc.Create(context.Background(), dto.CreateLegalRequestRequest{
		RequestType:      "mystery",
		Subject:          "x",
		LegalOfficerName: "y",
	}, "legal-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestLegalRequestServiceAssignAdvancesFromSubmitted(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	assigned, err := svc.Assign(context.Background(), request.ID, "officer-1", "admin-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	require.Equal(t, "officer-1", *assigned.AssignedTo)
	require.NotNil(t, assigned.ReceivedAt)
	require.Len(t, store.activity, 2)
	require.Equal(t, models.ActivityAssigned, store.activity[1].ActivityType)
}

func TestLegalRequestServiceAssignUnknownOfficer(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	_, err := svc.Assign(context.Background(), request.ID, "ghost", "admin-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrNotFound))
	require.Len(t, store.activity, 1)
}

func TestLegalRequestServiceTransition(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	received, err := svc.Transition(context.Background(), request.ID, dto.TransitionRequest{Status: models.StatusReceived}, "officer-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)
	require.Equal(t, int64(2), received.Version)
	require.Equal(t, models.ActivityReceived, store.activity[1].ActivityType)
}

func TestLegalRequestServiceTransitionRejectedLeavesNoTrace(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	_, err := svc.Transition(context.Background(), request.ID, dto.TransitionRequest{Status: models.StatusCompleted}, "officer-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInvalidTransition))

	current, getErr := svc.Get(context.Background(), request.ID)
	require.NoError(t, getErr)
	require.Equal(t, models.StatusSubmitted, current.Status)
	require.Equal(t, int64(1), current.Version)
	require.Len(t, store.activity, 1)
}

func TestLegalRequestServiceRespondCompletes(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	completed, err := svc.Respond(context.Background(), request.ID, dto.SubmitResponseRequest{
		ResponseSummary: "Parcel is zoned residential",
		Findings:        "No violations found",
	}, "officer-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.ResponseSummary)
	require.Equal(t, models.ActivityResponseSent, store.activity[1].ActivityType)

	_, err = svc.Respond(context.Background(), request.ID, dto.SubmitResponseRequest{ResponseSummary: "again"}, "officer-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInvalidState))
	require.Len(t, store.activity, 2)
}

func TestLegalRequestServiceWithdraw(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	closed, err := svc.Withdraw(context.Background(), request.ID, "", "legal-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClosureReason)
	require.Equal(t, models.ClosureWithdrawn, *closed.ClosureReason)
	require.Len(t, store.activity, 2)

	// Withdrawing again is a no-op and must not grow the trail.
	again, err := svc.Withdraw(context.Background(), request.ID, "", "legal-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusClosed, again.Status)
	require.Len(t, store.activity, 2)
}

func TestLegalRequestServiceExtendDeadline(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	newDue := request.DueDate.AddDate(0, 0, 5)
	extended, err := svc.ExtendDeadline(context.Background(), request.ID, dto.ExtendDeadlineRequest{DueDate: newDue}, "officer-1")
	require.NoError(t, err)
	require.Equal(t, newDue, *extended.DueDate)
	require.Equal(t, models.ActivityDeadlineExtended, store.activity[1].ActivityType)

	// Moving the deadline backwards is rejected.
	_, err = svc.ExtendDeadline(context.Background(), request.ID, dto.ExtendDeadlineRequest{DueDate: newDue.AddDate(0, 0, -10)}, "officer-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestLegalRequestServiceAddComment(t *testing.T) {
	store := newLifecycleStoreStub()
	svc := newLifecycleService(store)
	request := createRequest(t, svc)

	entry, err := svc.AddComment(context.Background(), request.ID, "awaiting survey plan", "officer-1")
	require.NoError(t, err)
	require.Equal(t, models.ActivityCommentAdded, entry.ActivityType)

	current, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), current.Version)
}

func TestLegalRequestServiceUnreadCountFailSoft(t *testing.T) {
	store := newLifecycleStoreStub()
	store.countErr = errors.New("connection refused")
	svc := newLifecycleService(store)

	require.Equal(t, 0, svc.UnreadCount(context.Background()))

	store.countErr = nil
	store.count = 7
	require.Equal(t, 7, svc.UnreadCount(context.Background()))
}

func TestLegalRequestServiceGetNotFound(t *testing.T) {
	svc := newLifecycleService(newLifecycleStoreStub())
	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrNotFound))
}

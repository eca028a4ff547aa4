package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

type notificationStoreStub struct {
	mu       sync.Mutex
	created  []models.Notification
	existing map[string]bool
	readErr  error
}

func (s *notificationStoreStub) Create(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, *n)
	return nil
}

func (s *notificationStoreStub) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created, nil
}

func (s *notificationStoreStub) MarkRead(ctx context.Context, id, userID string, readAt time.Time) error {
	return s.readErr
}

func (s *notificationStoreStub) Dismiss(ctx context.Context, id, userID string) error {
	return s.readErr
}

func (s *notificationStoreStub) ExistsForEntity(ctx context.Context, notificationType models.NotificationType, entityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[string(notificationType)+"/"+entityID], nil
}

func (s *notificationStoreStub) createdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type dueListerStub struct {
	requests []models.LegalPlanningRequest
}

func (s *dueListerStub) GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return &s.requests[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *dueListerStub) ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]models.LegalPlanningRequest, error) {
	return s.requests, nil
}

type roleDirStub struct {
	officers []models.User
}

func (s *roleDirStub) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return s.officers, nil
}

func TestNotificationServiceScanDeadlines(t *testing.T) {
	officer := "officer-1"
	past := time.Now().UTC().AddDate(0, 0, -1)
	soon := time.Now().UTC().AddDate(0, 0, 1)

	store := &notificationStoreStub{existing: map[string]bool{}}
	requests := &dueListerStub{requests: []models.LegalPlanningRequest{
		{ID: "req-overdue", RequestNumber: "LR-1", Subject: "a", Status: models.StatusInProgress, DueDate: &past, AssignedTo: &officer},
		{ID: "req-soon", RequestNumber: "LR-2", Subject: "b", Status: models.StatusAssigned, DueDate: &soon, AssignedTo: &officer},
	}}

	svc := NewNotificationService(store, requests, &roleDirStub{}, nil, nil, NotificationOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	svc.ScanDeadlines(ctx)

	require.Eventually(t, func() bool { return store.createdCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	types := map[models.NotificationType]bool{}
	store.mu.Lock()
	for _, n := range store.created {
		types[n.Type] = true
		require.Equal(t, officer, n.UserID)
	}
	store.mu.Unlock()
	require.True(t, types[models.NotificationOverdueAlert])
	require.True(t, types[models.NotificationDeadlineWarning])
}

func TestNotificationServiceScanDeduplicates(t *testing.T) {
	officer := "officer-1"
	past := time.Now().UTC().AddDate(0, 0, -1)

	store := &notificationStoreStub{existing: map[string]bool{
		string(models.NotificationOverdueAlert) + "/req-overdue": true,
	}}
	requests := &dueListerStub{requests: []models.LegalPlanningRequest{
		{ID: "req-overdue", RequestNumber: "LR-1", Subject: "a", Status: models.StatusInProgress, DueDate: &past, AssignedTo: &officer},
	}}

	svc := NewNotificationService(store, requests, &roleDirStub{}, nil, nil, NotificationOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	svc.ScanDeadlines(ctx)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, store.createdCount())
}

func TestNotificationServiceAssignmentEvent(t *testing.T) {
	officer := "officer-1"
	bus := NewRequestEventBus(nil)
	store := &notificationStoreStub{existing: map[string]bool{}}
	requests := &dueListerStub{requests: []models.LegalPlanningRequest{
		{ID: "req-1", RequestNumber: "LR-1", Subject: "a", Status: models.StatusAssigned, AssignedTo: &officer, Urgency: models.UrgencyUrgent},
	}}

	svc := NewNotificationService(store, requests, &roleDirStub{}, bus, nil, NotificationOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	bus.Publish(RequestChanged{RequestID: "req-1", Kind: EventRequestAssigned, ActorID: "admin-1"})

	require.Eventually(t, func() bool { return store.createdCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	require.Equal(t, models.NotificationAssignment, store.created[0].Type)
	require.Equal(t, models.SeverityUrgent, store.created[0].Severity)
}

func TestNotificationServiceMarkReadNotFound(t *testing.T) {
	store := &notificationStoreStub{existing: map[string]bool{}, readErr: sql.ErrNoRows}
	svc := NewNotificationService(store, &dueListerStub{}, &roleDirStub{}, nil, nil, NotificationOptions{})

	err := svc.MarkRead(context.Background(), "n-1", "user-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrNotFound))
}

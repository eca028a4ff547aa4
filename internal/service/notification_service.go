package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/jobs"
)

const relatedEntityLegalRequest = "legal_request"

type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string, readAt time.Time) error
	Dismiss(ctx context.Context, id, userID string) error
	ExistsForEntity(ctx context.Context, notificationType models.NotificationType, entityID string) (bool, error)
}

type dueRequestLister interface {
	GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error)
	ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]models.LegalPlanningRequest, error)
}

type roleDirectory interface {
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
}

// NotificationOptions tunes delivery and the deadline scan.
type NotificationOptions struct {
	QueueWorkers        int
	QueueRetries        int
	DeadlineScanEvery   time.Duration
	DeadlineWarningDays int
}

// NotificationService projects request lifecycle events into per-user alerts.
// Deliveries run through a background queue so the mutating request never
// waits on notification writes; a failed delivery is retried and finally
// dropped, never surfaced to the caller.
type NotificationService struct {
	store    notificationStore
	requests dueRequestLister
	users    roleDirectory
	bus      *RequestEventBus
	queue    *jobs.Queue
	logger   *zap.Logger

	scanEvery   time.Duration
	warningDays int
	now         func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNotificationService wires the projector.
func NewNotificationService(
	store notificationStore,
	requests dueRequestLister,
	users roleDirectory,
	bus *RequestEventBus,
	logger *zap.Logger,
	opts NotificationOptions,
) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DeadlineScanEvery <= 0 {
		opts.DeadlineScanEvery = time.Hour
	}
	if opts.DeadlineWarningDays <= 0 {
		opts.DeadlineWarningDays = 2
	}

	s := &NotificationService{
		store:       store,
		requests:    requests,
		users:       users,
		bus:         bus,
		logger:      logger,
		scanEvery:   opts.DeadlineScanEvery,
		warningDays: opts.DeadlineWarningDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers:    opts.QueueWorkers,
		MaxRetries: opts.QueueRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers, the event consumer and the deadline
// scan. Stop shuts all of them down.
func (s *NotificationService) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.queue.Start(runCtx)

	if s.bus != nil {
		events := s.bus.Subscribe(64)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-runCtx.Done():
					return
				case event := <-events:
					s.handleEvent(runCtx, event)
				}
			}
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.scanEvery)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				s.ScanDeadlines(runCtx)
			}
		}
	}()
}

// Stop halts background work and drains the delivery queue.
func (s *NotificationService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.queue.Stop()
}

// List returns a user's visible notifications.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	notifications, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkRead flags one notification as read for its owner.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.store.MarkRead(ctx, id, userID, s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	return nil
}

// Dismiss hides one notification for its owner.
func (s *NotificationService) Dismiss(ctx context.Context, id, userID string) error {
	if err := s.store.Dismiss(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to dismiss notification")
	}
	return nil
}

// ScanDeadlines alerts on requests approaching or past their due date. Each
// request gets at most one warning and one overdue alert; the overdue flag
// itself is never written back to the request.
func (s *NotificationService) ScanDeadlines(ctx context.Context) {
	now := s.now()
	cutoff := now.AddDate(0, 0, s.warningDays)

	requests, err := s.requests.ListOpenDueBefore(ctx, cutoff)
	if err != nil {
		s.logger.Warn("deadline scan failed", zap.Error(err))
		return
	}

	for i := range requests {
		request := &requests[i]
		if request.DueDate == nil {
			continue
		}

		notificationType := models.NotificationDeadlineWarning
		severity := models.SeverityWarning
		title := "Legal request approaching deadline"
		if now.After(*request.DueDate) {
			notificationType = models.NotificationOverdueAlert
			severity = models.SeverityUrgent
			title = "Legal request overdue"
		}

		exists, err := s.store.ExistsForEntity(ctx, notificationType, request.ID)
		if err != nil {
			s.logger.Warn("deadline scan dedupe check failed",
				zap.String("request_id", request.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		message := fmt.Sprintf("Request %s (%s) is due %s",
			request.RequestNumber, request.Subject, request.DueDate.Format("2006-01-02"))
		s.fanOut(ctx, request, notificationType, severity, title, message)
	}
}

func (s *NotificationService) handleEvent(ctx context.Context, event RequestChanged) {
	request, err := s.requests.GetByID(ctx, event.RequestID)
	if err != nil {
		s.logger.Warn("notification event load failed",
			zap.String("request_id", event.RequestID), zap.Error(err))
		return
	}

	switch event.Kind {
	case EventRequestCreated:
		s.fanOut(ctx, request, models.NotificationLegalRequest, severityForUrgency(request.Urgency),
			"New legal request received",
			fmt.Sprintf("Request %s: %s", request.RequestNumber, request.Subject))
	case EventRequestAssigned:
		if request.AssignedTo == nil {
			return
		}
		s.enqueue(models.Notification{
			UserID:   *request.AssignedTo,
			Title:    "Legal request assigned to you",
			Message:  fmt.Sprintf("Request %s: %s", request.RequestNumber, request.Subject),
			Type:     models.NotificationAssignment,
			Severity: severityForUrgency(request.Urgency),
		}, request.ID)
	case EventStatusChanged, EventResponseSent, EventRequestWithdrawn:
		if request.AssignedTo == nil {
			return
		}
		s.enqueue(models.Notification{
			UserID:   *request.AssignedTo,
			Title:    "Legal request status changed",
			Message:  fmt.Sprintf("Request %s moved from %s to %s", request.RequestNumber, event.OldStatus, event.NewStatus),
			Type:     models.NotificationStatusChange,
			Severity: models.SeverityInfo,
		}, request.ID)
	case EventDocumentUploaded:
		if request.AssignedTo == nil {
			return
		}
		s.enqueue(models.Notification{
			UserID:   *request.AssignedTo,
			Title:    "Document added to legal request",
			Message:  fmt.Sprintf("Request %s received a new document", request.RequestNumber),
			Type:     models.NotificationDocumentUploaded,
			Severity: models.SeverityInfo,
		}, request.ID)
	}
}

// fanOut targets the assignee when one exists, otherwise every planning
// officer.
func (s *NotificationService) fanOut(ctx context.Context, request *models.LegalPlanningRequest,
	notificationType models.NotificationType, severity models.NotificationSeverity, title, message string) {
	if request.AssignedTo != nil {
		s.enqueue(models.Notification{
			UserID:   *request.AssignedTo,
			Title:    title,
			Message:  message,
			Type:     notificationType,
			Severity: severity,
		}, request.ID)
		return
	}

	officers, err := s.users.ListByRole(ctx, models.RolePlanningOfficer)
	if err != nil {
		s.logger.Warn("notification fan-out failed to list officers", zap.Error(err))
		return
	}
	for _, officer := range officers {
		s.enqueue(models.Notification{
			UserID:   officer.ID,
			Title:    title,
			Message:  message,
			Type:     notificationType,
			Severity: severity,
		}, request.ID)
	}
}

func (s *NotificationService) enqueue(n models.Notification, requestID string) {
	entityType := relatedEntityLegalRequest
	n.RelatedEntityType = &entityType
	n.RelatedEntityID = &requestID

	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    string(n.Type),
		Payload: n,
	})
	if err != nil {
		s.logger.Warn("notification enqueue failed",
			zap.String("request_id", requestID), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	n, ok := job.Payload.(models.Notification)
	if !ok {
		s.logger.Error("notification job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.store.Create(ctx, &n)
}

func severityForUrgency(urgency models.LegalRequestUrgency) models.NotificationSeverity {
	switch urgency {
	case models.UrgencyUrgent:
		return models.SeverityUrgent
	case models.UrgencyHigh:
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}

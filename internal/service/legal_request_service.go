package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	"github.com/landgov/landadmin-api/internal/repository"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

const unreadBadgeCacheKey = "legal:requests:unread"

type legalRequestStore interface {
	CreateWithActivity(ctx context.Context, request *models.LegalPlanningRequest, entry *models.LegalRequestActivity) error
	GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error)
	List(ctx context.Context, filter models.LegalRequestFilter) ([]models.LegalPlanningRequest, error)
	CountByStatus(ctx context.Context, statuses ...models.LegalRequestStatus) (int, error)
	UpdateWorkflow(ctx context.Context, params repository.UpdateWorkflowParams, entry *models.LegalRequestActivity) error
}

type activityStore interface {
	Append(ctx context.Context, entry *models.LegalRequestActivity) error
	ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestActivity, error)
}

type officerDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type requestDocumentLister interface {
	ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestDocument, error)
}

type requestParcelGetter interface {
	GetByID(ctx context.Context, id string) (*models.LandParcel, error)
}

type badgeCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// LegalRequestService drives the inter-division request lifecycle: intake,
// assignment, status transitions, responses, withdrawal and the audit trail.
// Every state change lands exactly one activity entry and one RequestChanged
// event.
type LegalRequestService struct {
	requests  legalRequestStore
	activity  activityStore
	users     officerDirectory
	documents requestDocumentLister
	parcels   requestParcelGetter
	cache     badgeCache
	bus       *RequestEventBus
	logger    *zap.Logger

	defaultSLADays int
	unreadTTL      time.Duration
	now            func() time.Time
}

// NewLegalRequestService wires the lifecycle service.
func NewLegalRequestService(
	requests legalRequestStore,
	activity activityStore,
	users officerDirectory,
	documents requestDocumentLister,
	parcels requestParcelGetter,
	cache badgeCache,
	bus *RequestEventBus,
	logger *zap.Logger,
	defaultSLADays int,
	unreadTTL time.Duration,
) *LegalRequestService {
	if defaultSLADays <= 0 {
		defaultSLADays = 10
	}
	if unreadTTL <= 0 {
		unreadTTL = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LegalRequestService{
		requests:       requests,
		activity:       activity,
		users:          users,
		documents:      documents,
		parcels:        parcels,
		cache:          cache,
		bus:            bus,
		logger:         logger,
		defaultSLADays: defaultSLADays,
		unreadTTL:      unreadTTL,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a new request from the Legal Division. The request enters
// the workflow as submitted with its due date derived from the SLA window.
func (s *LegalRequestService) Create(ctx context.Context, payload dto.CreateLegalRequestRequest, actorID string) (*models.LegalPlanningRequest, error) {
	if !payload.RequestType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown request type %q", payload.RequestType))
	}
	urgency := payload.Urgency
	if urgency == "" {
		urgency = models.UrgencyNormal
	}
	if !urgency.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown urgency %q", payload.Urgency))
	}

	now := s.now()
	slaDays := payload.SLADays
	if slaDays <= 0 {
		slaDays = s.defaultSLADays
	}
	requestNumber := payload.RequestNumber
	if requestNumber == "" {
		requestNumber = fmt.Sprintf("LR-%d", now.UnixMilli())
	}
	dueDate := payload.DueDate
	if dueDate == nil {
		computed := ComputeDueDate(now, slaDays)
		dueDate = &computed
	}

	request := &models.LegalPlanningRequest{
		RequestNumber:     requestNumber,
		LegalCaseNumber:   optionalString(payload.LegalCaseNumber),
		LegalOfficerName:  payload.LegalOfficerName,
		LegalOfficerEmail: optionalString(payload.LegalOfficerEmail),
		LegalOfficerPhone: optionalString(payload.LegalOfficerPhone),
		LegalDivisionRef:  optionalString(payload.LegalDivisionRef),
		RequestType:       payload.RequestType,
		Subject:           payload.Subject,
		Description:       optionalString(payload.Description),
		Urgency:           urgency,
		ParcelID:          optionalString(payload.ParcelID),
		ApplicationID:     optionalString(payload.ApplicationID),
		Status:            models.StatusSubmitted,
		SubmittedDate:     now,
		DueDate:           dueDate,
		SLADays:           slaDays,
		LastUpdatedBy:     optionalString(actorID),
	}

	entry := &models.LegalRequestActivity{
		UserID:       optionalString(actorID),
		ActivityType: models.ActivityCreated,
		NewValue:     stringPtr(string(models.StatusSubmitted)),
		Comment:      stringPtr("Request submitted by Legal Division"),
		CreatedAt:    now,
	}

	if err := s.requests.CreateWithActivity(ctx, request, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create legal request")
	}

	s.logger.Info("legal request created",
		zap.String("request_id", request.ID),
		zap.String("request_number", request.RequestNumber),
		zap.String("request_type", string(request.RequestType)))

	s.publish(RequestChanged{
		RequestID: request.ID,
		Kind:      EventRequestCreated,
		NewStatus: string(request.Status),
		ActorID:   actorID,
	})
	s.invalidateBadge(ctx)

	DecorateSLA(request, now)
	return request, nil
}

// Get returns one request with its SLA fields computed at read time.
func (s *LegalRequestService) Get(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	DecorateSLA(request, s.now())
	return request, nil
}

// GetDetail returns a request joined with its parcel, assignee, documents and
// activity trail. Missing relations degrade to empty values rather than
// failing the read.
func (s *LegalRequestService) GetDetail(ctx context.Context, id string) (*dto.LegalRequestDetail, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	DecorateSLA(request, now)

	detail := &dto.LegalRequestDetail{
		LegalPlanningRequest: *request,
		Documents:            []models.LegalRequestDocument{},
		Activity:             []models.LegalRequestActivity{},
	}

	if request.ParcelID != nil && s.parcels != nil {
		parcel, err := s.parcels.GetByID(ctx, *request.ParcelID)
		if err != nil {
			s.logger.Warn("parcel lookup failed on request detail",
				zap.String("request_id", id), zap.Error(err))
		} else {
			detail.Parcel = parcel
		}
	}
	if request.AssignedTo != nil && s.users != nil {
		officer, err := s.users.FindByID(ctx, *request.AssignedTo)
		if err != nil {
			s.logger.Warn("assignee lookup failed on request detail",
				zap.String("request_id", id), zap.Error(err))
		} else {
			detail.Assignee = &models.UserInfo{
				ID:       officer.ID,
				Email:    officer.Email,
				FullName: officer.FullName,
				Role:     officer.Role,
			}
		}
	}
	if s.documents != nil {
		docs, err := s.documents.ListByRequest(ctx, id)
		if err != nil {
			s.logger.Warn("document listing failed on request detail",
				zap.String("request_id", id), zap.Error(err))
		} else if docs != nil {
			detail.Documents = docs
		}
	}
	entries, err := s.activity.ListByRequest(ctx, id)
	if err != nil {
		s.logger.Warn("activity listing failed on request detail",
			zap.String("request_id", id), zap.Error(err))
	} else if entries != nil {
		detail.Activity = entries
	}

	return detail, nil
}

// List returns requests matching the query, each with derived SLA fields.
func (s *LegalRequestService) List(ctx context.Context, query dto.LegalRequestQuery) (*dto.LegalRequestList, error) {
	filter := models.LegalRequestFilter{
		Status:          query.Status,
		Urgency:         query.Urgency,
		LegalCaseNumber: query.LegalCaseNumber,
		AssignedTo:      query.AssignedTo,
		ParcelID:        query.ParcelID,
		Limit:           query.Limit,
		Offset:          query.Offset,
	}
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list legal requests")
	}
	now := s.now()
	for i := range requests {
		DecorateSLA(&requests[i], now)
	}
	if requests == nil {
		requests = []models.LegalPlanningRequest{}
	}
	return &dto.LegalRequestList{Requests: requests, Count: len(requests)}, nil
}

// Assign places the request with a planning officer. Requests still in
// submitted or received advance to assigned in the same write.
func (s *LegalRequestService) Assign(ctx context.Context, id, officerID, actorID string) (*models.LegalPlanningRequest, error) {
	if s.users != nil {
		if _, err := s.users.FindByID(ctx, officerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "assignee not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve assignee")
		}
	}

	return s.mutate(ctx, id, EventRequestAssigned, actorID, func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error) {
		if IsTerminal(current.Status) {
			return repository.UpdateWorkflowParams{}, nil, appErrors.Clone(appErrors.ErrInvalidState,
				fmt.Sprintf("cannot assign a %s request", current.Status))
		}

		params := repository.UpdateWorkflowParams{
			ID:              current.ID,
			ExpectedVersion: current.Version,
			AssignedTo:      &officerID,
			AssignedBy:      optionalString(actorID),
			AssignedAt:      &now,
			LastUpdatedBy:   optionalString(actorID),
			UpdatedAt:       now,
		}
		newStatus := current.Status
		if current.Status == models.StatusSubmitted || current.Status == models.StatusReceived {
			newStatus = models.StatusAssigned
			params.Status = &newStatus
			if current.ReceivedAt == nil {
				params.ReceivedAt = &now
			}
		}

		entry := &models.LegalRequestActivity{
			UserID:       optionalString(actorID),
			ActivityType: models.ActivityAssigned,
			OldValue:     stringPtrIf(current.AssignedTo),
			NewValue:     &officerID,
			CreatedAt:    now,
		}
		return params, entry, nil
	})
}

// Transition moves the request along the forward workflow table. Rejected
// transitions leave both the record and the activity log untouched.
func (s *LegalRequestService) Transition(ctx context.Context, id string, payload dto.TransitionRequest, actorID string) (*models.LegalPlanningRequest, error) {
	return s.mutate(ctx, id, EventStatusChanged, actorID, func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error) {
		if err := ValidateTransition(current.Status, payload.Status); err != nil {
			return repository.UpdateWorkflowParams{}, nil, err
		}

		newStatus := payload.Status
		params := repository.UpdateWorkflowParams{
			ID:              current.ID,
			ExpectedVersion: current.Version,
			Status:          &newStatus,
			LastUpdatedBy:   optionalString(actorID),
			UpdatedAt:       now,
		}
		switch newStatus {
		case models.StatusReceived:
			params.ReceivedAt = &now
		case models.StatusCompleted:
			params.CompletedAt = &now
		case models.StatusClosed:
			reason := models.ClosureCompleted
			params.ClosureReason = &reason
		}

		activityType := models.ActivityStatusChanged
		if newStatus == models.StatusReceived {
			activityType = models.ActivityReceived
		}
		if newStatus == models.StatusCompleted {
			activityType = models.ActivityCompleted
		}
		entry := &models.LegalRequestActivity{
			UserID:       optionalString(actorID),
			ActivityType: activityType,
			OldValue:     stringPtr(string(current.Status)),
			NewValue:     stringPtr(string(newStatus)),
			Comment:      optionalString(payload.Comment),
			CreatedAt:    now,
		}
		return params, entry, nil
	})
}

// Respond records the division's findings and completes the request in one
// write. Requests already past completion reject the response.
func (s *LegalRequestService) Respond(ctx context.Context, id string, payload dto.SubmitResponseRequest, actorID string) (*models.LegalPlanningRequest, error) {
	return s.mutate(ctx, id, EventResponseSent, actorID, func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error) {
		if isTerminalSuccess(current.Status) {
			return repository.UpdateWorkflowParams{}, nil, appErrors.Clone(appErrors.ErrInvalidState,
				fmt.Sprintf("cannot respond to a %s request", current.Status))
		}

		completed := models.StatusCompleted
		params := repository.UpdateWorkflowParams{
			ID:              current.ID,
			ExpectedVersion: current.Version,
			Status:          &completed,
			CompletedAt:     &now,
			ResponseSummary: &payload.ResponseSummary,
			Findings:        optionalString(payload.Findings),
			Recommendations: optionalString(payload.Recommendations),
			LastUpdatedBy:   optionalString(actorID),
			UpdatedAt:       now,
		}
		entry := &models.LegalRequestActivity{
			UserID:       optionalString(actorID),
			ActivityType: models.ActivityResponseSent,
			OldValue:     stringPtr(string(current.Status)),
			NewValue:     stringPtr(string(completed)),
			CreatedAt:    now,
		}
		return params, entry, nil
	})
}

// Withdraw closes the request on the Legal Division's behalf from any state.
// Withdrawing an already closed request is a no-op that returns the record
// unchanged.
func (s *LegalRequestService) Withdraw(ctx context.Context, id, comment, actorID string) (*models.LegalPlanningRequest, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.StatusClosed {
		DecorateSLA(current, s.now())
		return current, nil
	}

	return s.mutate(ctx, id, EventRequestWithdrawn, actorID, func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error) {
		if current.Status == models.StatusClosed {
			return repository.UpdateWorkflowParams{}, nil, errAlreadyApplied
		}

		closed := models.StatusClosed
		reason := models.ClosureWithdrawn
		params := repository.UpdateWorkflowParams{
			ID:              current.ID,
			ExpectedVersion: current.Version,
			Status:          &closed,
			ClosureReason:   &reason,
			LastUpdatedBy:   optionalString(actorID),
			UpdatedAt:       now,
		}
		note := comment
		if note == "" {
			note = "Request withdrawn by Legal Division"
		}
		entry := &models.LegalRequestActivity{
			UserID:       optionalString(actorID),
			ActivityType: models.ActivityStatusChanged,
			OldValue:     stringPtr(string(current.Status)),
			NewValue:     stringPtr(string(closed)),
			Comment:      &note,
			CreatedAt:    now,
		}
		return params, entry, nil
	})
}

// ExtendDeadline rewrites the due date. No other operation may change it once
// the request exists.
func (s *LegalRequestService) ExtendDeadline(ctx context.Context, id string, payload dto.ExtendDeadlineRequest, actorID string) (*models.LegalPlanningRequest, error) {
	return s.mutate(ctx, id, EventDeadlineExtended, actorID, func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error) {
		if IsTerminal(current.Status) {
			return repository.UpdateWorkflowParams{}, nil, appErrors.Clone(appErrors.ErrInvalidState,
				fmt.Sprintf("cannot extend deadline on a %s request", current.Status))
		}
		if current.DueDate != nil && !payload.DueDate.After(*current.DueDate) {
			return repository.UpdateWorkflowParams{}, nil, appErrors.Clone(appErrors.ErrValidation,
				"new due date must fall after the current one")
		}

		due := payload.DueDate
		params := repository.UpdateWorkflowParams{
			ID:              current.ID,
			ExpectedVersion: current.Version,
			DueDate:         &due,
			LastUpdatedBy:   optionalString(actorID),
			UpdatedAt:       now,
		}
		var oldValue *string
		if current.DueDate != nil {
			oldValue = stringPtr(current.DueDate.Format(time.RFC3339))
		}
		entry := &models.LegalRequestActivity{
			UserID:       optionalString(actorID),
			ActivityType: models.ActivityDeadlineExtended,
			OldValue:     oldValue,
			NewValue:     stringPtr(due.Format(time.RFC3339)),
			Comment:      optionalString(payload.Comment),
			CreatedAt:    now,
		}
		return params, entry, nil
	})
}

// AddComment appends a free-form note to the activity trail without touching
// the request record.
func (s *LegalRequestService) AddComment(ctx context.Context, id, comment, actorID string) (*models.LegalRequestActivity, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	entry := &models.LegalRequestActivity{
		RequestID:    id,
		UserID:       optionalString(actorID),
		ActivityType: models.ActivityCommentAdded,
		Comment:      &comment,
		CreatedAt:    s.now(),
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add comment")
	}
	return entry, nil
}

// ListActivity returns the audit trail for one request, newest first.
func (s *LegalRequestService) ListActivity(ctx context.Context, id string) ([]models.LegalRequestActivity, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.activity.ListByRequest(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity")
	}
	if entries == nil {
		entries = []models.LegalRequestActivity{}
	}
	return entries, nil
}

// UnreadCount projects the sidebar badge: requests the division has not acted
// on yet. Storage failures degrade to zero so the surrounding page never
// breaks on the badge.
func (s *LegalRequestService) UnreadCount(ctx context.Context) int {
	if s.cache != nil {
		var cached int
		if err := s.cache.Get(ctx, unreadBadgeCacheKey, &cached); err == nil {
			return cached
		}
	}

	count, err := s.requests.CountByStatus(ctx, models.StatusSubmitted, models.StatusReceived)
	if err != nil {
		s.logger.Warn("unread badge count failed, serving zero", zap.Error(err))
		return 0
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, unreadBadgeCacheKey, count, s.unreadTTL); err != nil {
			s.logger.Warn("unread badge cache write failed", zap.Error(err))
		}
	}
	return count
}

// errAlreadyApplied signals that a retried mutation found its effect already
// in place and should return the current record as success.
var errAlreadyApplied = errors.New("mutation already applied")

type workflowMutation func(current *models.LegalPlanningRequest, now time.Time) (repository.UpdateWorkflowParams, *models.LegalRequestActivity, error)

// mutate runs one guarded lifecycle write: load, validate against the loaded
// state, then a version-checked update carrying its audit entry. A version
// conflict reloads and retries once before giving up with a conflict error.
func (s *LegalRequestService) mutate(ctx context.Context, id string, kind RequestEventKind, actorID string, fn workflowMutation) (*models.LegalPlanningRequest, error) {
	var updated *models.LegalPlanningRequest
	var oldStatus models.LegalRequestStatus

	for attempt := 0; attempt < 2; attempt++ {
		current, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		oldStatus = current.Status

		now := s.now()
		params, entry, err := fn(current, now)
		if err != nil {
			if errors.Is(err, errAlreadyApplied) {
				DecorateSLA(current, now)
				return current, nil
			}
			return nil, err
		}

		if err := s.requests.UpdateWorkflow(ctx, params, entry); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.logger.Debug("workflow version conflict, retrying",
					zap.String("request_id", id), zap.Int64("expected_version", current.Version))
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update legal request")
		}

		updated, err = s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		break
	}
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "request was modified concurrently, retry the operation")
	}

	s.publish(RequestChanged{
		RequestID: updated.ID,
		Kind:      kind,
		OldStatus: string(oldStatus),
		NewStatus: string(updated.Status),
		ActorID:   actorID,
	})
	s.invalidateBadge(ctx)

	DecorateSLA(updated, s.now())
	return updated, nil
}

func (s *LegalRequestService) load(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "legal request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load legal request")
	}
	return request, nil
}

func (s *LegalRequestService) publish(event RequestChanged) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// invalidateBadge drops the cached unread count after a mutation so the next
// badge read recomputes it.
func (s *LegalRequestService) invalidateBadge(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, unreadBadgeCacheKey); err != nil {
		s.logger.Warn("unread badge invalidation failed", zap.Error(err))
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringPtr(value string) *string {
	return &value
}

func stringPtrIf(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/middleware"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

type legalRequestServiceMock struct {
	request       *models.LegalPlanningRequest
	transitionErr error
	lastActor     string
	lastComment   string
	unread        int
}

func (m *legalRequestServiceMock) Create(ctx context.Context, payload dto.CreateLegalRequestRequest, actorID string) (*models.LegalPlanningRequest, error) {
	m.lastActor = actorID
	return m.request, nil
}

func (m *legalRequestServiceMock) Get(ctx context.Context, id string) (*models.LegalPlanningRequest, error) {
	return m.request, nil
}

func (m *legalRequestServiceMock) GetDetail(ctx context.Context, id string) (*dto.LegalRequestDetail, error) {
	return &dto.LegalRequestDetail{LegalPlanningRequest: *m.request}, nil
}

func (m *legalRequestServiceMock) List(ctx context.Context, query dto.LegalRequestQuery) (*dto.LegalRequestList, error) {
	return &dto.LegalRequestList{Requests: []models.LegalPlanningRequest{*m.request}, Count: 1}, nil
}

func (m *legalRequestServiceMock) Assign(ctx context.Context, id, officerID, actorID string) (*models.LegalPlanningRequest, error) {
	m.lastActor = actorID
	return m.request, nil
}

func (m *legalRequestServiceMock) Transition(ctx context.Context, id string, payload dto.TransitionRequest, actorID string) (*models.LegalPlanningRequest, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	m.lastActor = actorID
	return m.request, nil
}

func (m *legalRequestServiceMock) Respond(ctx context.Context, id string, payload dto.SubmitResponseRequest, actorID string) (*models.LegalPlanningRequest, error) {
	return m.request, nil
}

func (m *legalRequestServiceMock) Withdraw(ctx context.Context, id, comment, actorID string) (*models.LegalPlanningRequest, error) {
	m.lastComment = comment
	return m.request, nil
}

func (m *legalRequestServiceMock) ExtendDeadline(ctx context.Context, id string, payload dto.ExtendDeadlineRequest, actorID string) (*models.LegalPlanningRequest, error) {
	return m.request, nil
}

func (m *legalRequestServiceMock) AddComment(ctx context.Context, id, comment, actorID string) (*models.LegalRequestActivity, error) {
	m.lastComment = comment
	return &models.LegalRequestActivity{ID: "act-1", RequestID: id, ActivityType: models.ActivityCommentAdded}, nil
}

func (m *legalRequestServiceMock) ListActivity(ctx context.Context, id string) ([]models.LegalRequestActivity, error) {
	return nil, nil
}

func (m *legalRequestServiceMock) UnreadCount(ctx context.Context) int {
	return m.unread
}

func newHandlerTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "officer-1", Role: models.RolePlanningOfficer})
	return c, w
}

func TestLegalRequestHandlerCreate(t *testing.T) {
	mock := &legalRequestServiceMock{request: &models.LegalPlanningRequest{ID: "req-1", RequestNumber: "LR-1", Status: models.StatusSubmitted}}
	handler := NewLegalRequestHandler(mock, nil)

	body, _ := json.Marshal(dto.CreateLegalRequestRequest{
		RequestType:      models.RequestTypeZoningConfirmation,
		Subject:          "Confirm zoning for parcel GA-123",
		LegalOfficerName: "K. Mensah",
	})
	c, w := newHandlerTestContext(t, http.MethodPost, "/legal-requests", body)

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "officer-1", mock.lastActor)
}

func TestLegalRequestHandlerCreateInvalidBody(t *testing.T) {
	handler := NewLegalRequestHandler(&legalRequestServiceMock{}, nil)
	c, w := newHandlerTestContext(t, http.MethodPost, "/legal-requests", []byte(`{"subject":""}`))

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLegalRequestHandlerTransitionConflict(t *testing.T) {
	mock := &legalRequestServiceMock{
		request:       &models.LegalPlanningRequest{ID: "req-1"},
		transitionErr: appErrors.Clone(appErrors.ErrInvalidTransition, "cannot move from submitted to completed"),
	}
	handler := NewLegalRequestHandler(mock, nil)

	body, _ := json.Marshal(dto.TransitionRequest{Status: models.StatusCompleted})
	c, w := newHandlerTestContext(t, http.MethodPost, "/legal-requests/req-1/transition", body)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.Transition(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLegalRequestHandlerWithdrawEmptyBody(t *testing.T) {
	mock := &legalRequestServiceMock{request: &models.LegalPlanningRequest{ID: "req-1", Status: models.StatusClosed}}
	handler := NewLegalRequestHandler(mock, nil)

	c, w := newHandlerTestContext(t, http.MethodPost, "/legal-requests/req-1/withdraw", nil)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	handler.Withdraw(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, mock.lastComment)
}

func TestLegalRequestHandlerUnreadCount(t *testing.T) {
	mock := &legalRequestServiceMock{unread: 4}
	handler := NewLegalRequestHandler(mock, nil)

	c, w := newHandlerTestContext(t, http.MethodGet, "/legal-requests/unread-count", nil)
	handler.UnreadCount(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.UnreadCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, 4, envelope.Data.Count)
}

func TestLegalRequestHandlerExportUnsupportedFormat(t *testing.T) {
	mock := &legalRequestServiceMock{request: &models.LegalPlanningRequest{ID: "req-1"}}
	handler := NewLegalRequestHandler(mock, exportServiceMock{})

	c, w := newHandlerTestContext(t, http.MethodGet, "/legal-requests/export?format=xml", nil)
	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

type exportServiceMock struct{}

func (exportServiceMock) RegisterCSV(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error) {
	return []byte("Request Number\n"), nil
}

func (exportServiceMock) RegisterPDF(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (exportServiceMock) ResponseLetter(ctx context.Context, request *models.LegalPlanningRequest) ([]byte, error) {
	return []byte("%PDF"), nil
}

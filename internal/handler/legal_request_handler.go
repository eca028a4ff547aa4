package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/response"
)

type legalRequestService interface {
	Create(ctx context.Context, payload dto.CreateLegalRequestRequest, actorID string) (*models.LegalPlanningRequest, error)
	Get(ctx context.Context, id string) (*models.LegalPlanningRequest, error)
	GetDetail(ctx context.Context, id string) (*dto.LegalRequestDetail, error)
	List(ctx context.Context, query dto.LegalRequestQuery) (*dto.LegalRequestList, error)
	Assign(ctx context.Context, id, officerID, actorID string) (*models.LegalPlanningRequest, error)
	Transition(ctx context.Context, id string, payload dto.TransitionRequest, actorID string) (*models.LegalPlanningRequest, error)
	Respond(ctx context.Context, id string, payload dto.SubmitResponseRequest, actorID string) (*models.LegalPlanningRequest, error)
	Withdraw(ctx context.Context, id, comment, actorID string) (*models.LegalPlanningRequest, error)
	ExtendDeadline(ctx context.Context, id string, payload dto.ExtendDeadlineRequest, actorID string) (*models.LegalPlanningRequest, error)
	AddComment(ctx context.Context, id, comment, actorID string) (*models.LegalRequestActivity, error)
	ListActivity(ctx context.Context, id string) ([]models.LegalRequestActivity, error)
	UnreadCount(ctx context.Context) int
}

type exportService interface {
	RegisterCSV(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error)
	RegisterPDF(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error)
	ResponseLetter(ctx context.Context, request *models.LegalPlanningRequest) ([]byte, error)
}

// LegalRequestHandler exposes the inter-division request lifecycle over REST.
type LegalRequestHandler struct {
	service legalRequestService
	exports exportService
}

// NewLegalRequestHandler constructs the handler.
func NewLegalRequestHandler(service legalRequestService, exports exportService) *LegalRequestHandler {
	return &LegalRequestHandler{service: service, exports: exports}
}

// Create godoc
// @Summary Submit a legal request
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param payload body dto.CreateLegalRequestRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Router /legal-requests [post]
func (h *LegalRequestHandler) Create(c *gin.Context) {
	var req dto.CreateLegalRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid legal request payload"))
		return
	}
	request, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List legal requests
// @Tags LegalRequests
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Param urgency query string false "Urgency"
// @Param legal_case_number query string false "Legal case number"
// @Param assigned_to query string false "Assigned officer ID"
// @Param parcel_id query string false "Parcel ID"
// @Success 200 {object} response.Envelope
// @Router /legal-requests [get]
func (h *LegalRequestHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), queryFromRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Get godoc
// @Summary Get legal request detail
// @Tags LegalRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id} [get]
func (h *LegalRequestHandler) Get(c *gin.Context) {
	detail, err := h.service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Assign godoc
// @Summary Assign a planning officer
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.AssignOfficerRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/assign [post]
func (h *LegalRequestHandler) Assign(c *gin.Context) {
	var req dto.AssignOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assignment payload"))
		return
	}
	request, err := h.service.Assign(c.Request.Context(), c.Param("id"), req.OfficerID, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Transition godoc
// @Summary Move a request to a new status
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.TransitionRequest true "Transition payload"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/transition [post]
func (h *LegalRequestHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid transition payload"))
		return
	}
	request, err := h.service.Transition(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Respond godoc
// @Summary Submit the division response
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.SubmitResponseRequest true "Response payload"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/response [post]
func (h *LegalRequestHandler) Respond(c *gin.Context) {
	var req dto.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid response payload"))
		return
	}
	request, err := h.service.Respond(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Withdraw godoc
// @Summary Withdraw a request
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.WithdrawRequest false "Withdrawal payload"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/withdraw [post]
func (h *LegalRequestHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid withdrawal payload"))
		return
	}
	request, err := h.service.Withdraw(c.Request.Context(), c.Param("id"), req.Comment, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// ExtendDeadline godoc
// @Summary Extend the request deadline
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.ExtendDeadlineRequest true "Deadline payload"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/extend-deadline [post]
func (h *LegalRequestHandler) ExtendDeadline(c *gin.Context) {
	var req dto.ExtendDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid deadline payload"))
		return
	}
	request, err := h.service.ExtendDeadline(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// AddComment godoc
// @Summary Add a comment to the activity trail
// @Tags LegalRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.AddCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Router /legal-requests/{id}/comments [post]
func (h *LegalRequestHandler) AddComment(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "comment is required"))
		return
	}
	entry, err := h.service.AddComment(c.Request.Context(), c.Param("id"), req.Comment, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ListActivity godoc
// @Summary List the request activity trail
// @Tags LegalRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/activity [get]
func (h *LegalRequestHandler) ListActivity(c *gin.Context) {
	entries, err := h.service.ListActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// UnreadCount godoc
// @Summary Count requests awaiting division action
// @Tags LegalRequests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /legal-requests/unread-count [get]
func (h *LegalRequestHandler) UnreadCount(c *gin.Context) {
	count := h.service.UnreadCount(c.Request.Context())
	response.JSON(c, http.StatusOK, dto.UnreadCountResponse{Count: count}, nil)
}

// Export godoc
// @Summary Export the request register
// @Tags LegalRequests
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /legal-requests/export [get]
func (h *LegalRequestHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "exports not configured"))
		return
	}
	query := queryFromRequest(c)
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		payload, err := h.exports.RegisterCSV(c.Request.Context(), query)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="legal-requests.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.exports.RegisterPDF(c.Request.Context(), query)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="legal-requests.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format)))
	}
}

// Letter godoc
// @Summary Download the formal response letter
// @Tags LegalRequests
// @Produce application/pdf
// @Param id path string true "Request ID"
// @Success 200 {file} binary
// @Router /legal-requests/{id}/letter [get]
func (h *LegalRequestHandler) Letter(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "exports not configured"))
		return
	}
	request, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.exports.ResponseLetter(c.Request.Context(), request)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-response.pdf"`, request.RequestNumber))
	c.Data(http.StatusOK, "application/pdf", payload)
}

func queryFromRequest(c *gin.Context) dto.LegalRequestQuery {
	query := dto.LegalRequestQuery{
		LegalCaseNumber: strings.TrimSpace(c.Query("legal_case_number")),
		AssignedTo:      strings.TrimSpace(c.Query("assigned_to")),
		ParcelID:        strings.TrimSpace(c.Query("parcel_id")),
	}
	if rawStatus := c.Query("status"); rawStatus != "" {
		parts := strings.Split(rawStatus, ",")
		statuses := make([]models.LegalRequestStatus, 0, len(parts))
		for _, part := range parts {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			statuses = append(statuses, models.LegalRequestStatus(part))
		}
		query.Status = statuses
	}
	if urgency := c.Query("urgency"); urgency != "" {
		query.Urgency = models.LegalRequestUrgency(strings.ToLower(strings.TrimSpace(urgency)))
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		query.Offset = offset
	}
	return query
}

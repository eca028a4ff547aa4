package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/response"
)

type evidenceService interface {
	Create(ctx context.Context, payload dto.CreateSpatialEvidenceRequest, actorID string) (*models.SpatialEvidence, error)
	List(ctx context.Context, filter models.SpatialEvidenceFilter) (*dto.SpatialEvidenceList, error)
}

// EvidenceHandler exposes geolocated observations over REST.
type EvidenceHandler struct {
	service evidenceService
}

// NewEvidenceHandler constructs the handler.
func NewEvidenceHandler(service evidenceService) *EvidenceHandler {
	return &EvidenceHandler{service: service}
}

// Create godoc
// @Summary Record spatial evidence
// @Tags SpatialEvidence
// @Accept json
// @Produce json
// @Param payload body dto.CreateSpatialEvidenceRequest true "Evidence payload"
// @Success 201 {object} response.Envelope
// @Router /spatial-evidence [post]
func (h *EvidenceHandler) Create(c *gin.Context) {
	var req dto.CreateSpatialEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid evidence payload"))
		return
	}
	evidence, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, evidence)
}

// List godoc
// @Summary List spatial evidence
// @Tags SpatialEvidence
// @Produce json
// @Param request_id query string false "Request ID"
// @Param parcel_id query string false "Parcel ID"
// @Param inspection_id query string false "Inspection ID"
// @Param evidence_type query string false "Evidence type"
// @Success 200 {object} response.Envelope
// @Router /spatial-evidence [get]
func (h *EvidenceHandler) List(c *gin.Context) {
	filter := models.SpatialEvidenceFilter{
		RequestID:    strings.TrimSpace(c.Query("request_id")),
		ParcelID:     strings.TrimSpace(c.Query("parcel_id")),
		InspectionID: strings.TrimSpace(c.Query("inspection_id")),
	}
	if evidenceType := c.Query("evidence_type"); evidenceType != "" {
		filter.EvidenceType = models.SpatialEvidenceType(strings.ToLower(strings.TrimSpace(evidenceType)))
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

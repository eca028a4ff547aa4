package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	"github.com/landgov/landadmin-api/pkg/response"
)

type parcelService interface {
	Get(ctx context.Context, id string) (*models.LandParcel, error)
	List(ctx context.Context, filter models.LandParcelFilter) ([]models.LandParcel, error)
	LegalInfo(ctx context.Context, id string) (*dto.ParcelLegalInfoResponse, error)
	GeoJSON(ctx context.Context) (*models.GeoJSONFeatureCollection, error)
}

// ParcelHandler exposes the land parcel registry over REST.
type ParcelHandler struct {
	service parcelService
}

// NewParcelHandler constructs the handler.
func NewParcelHandler(service parcelService) *ParcelHandler {
	return &ParcelHandler{service: service}
}

// List godoc
// @Summary List land parcels
// @Tags Parcels
// @Produce json
// @Param parcel_number query string false "Parcel number"
// @Param zoning_code query string false "Zoning code"
// @Param search query string false "Free text search"
// @Success 200 {object} response.Envelope
// @Router /parcels [get]
func (h *ParcelHandler) List(c *gin.Context) {
	filter := models.LandParcelFilter{
		ParcelNumber: strings.TrimSpace(c.Query("parcel_number")),
		ZoningCode:   strings.TrimSpace(c.Query("zoning_code")),
		Search:       strings.TrimSpace(c.Query("search")),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	parcels, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parcels, nil)
}

// Get godoc
// @Summary Get one parcel
// @Tags Parcels
// @Produce json
// @Param id path string true "Parcel ID"
// @Success 200 {object} response.Envelope
// @Router /parcels/{id} [get]
func (h *ParcelHandler) Get(c *gin.Context) {
	parcel, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parcel, nil)
}

// LegalInfo godoc
// @Summary Get a parcel with its legal context
// @Tags Parcels
// @Produce json
// @Param id path string true "Parcel ID"
// @Success 200 {object} response.Envelope
// @Router /parcels/{id}/legal-info [get]
func (h *ParcelHandler) LegalInfo(c *gin.Context) {
	info, err := h.service.LegalInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// GeoJSON godoc
// @Summary Get the parcel boundary layer
// @Tags Parcels
// @Produce json
// @Success 200 {object} models.GeoJSONFeatureCollection
// @Router /parcels/geojson [get]
func (h *ParcelHandler) GeoJSON(c *gin.Context) {
	collection, err := h.service.GeoJSON(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

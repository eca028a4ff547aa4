package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/models"
	"github.com/landgov/landadmin-api/internal/service"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/response"
)

type documentService interface {
	Upload(ctx context.Context, input service.UploadDocumentInput, actorID string) (*models.LegalRequestDocument, error)
	List(ctx context.Context, requestID string) ([]models.LegalRequestDocument, error)
	SignDownload(ctx context.Context, documentID string) (*service.SignedDownload, error)
	OpenByToken(ctx context.Context, token string) (*models.LegalRequestDocument, *os.File, error)
}

// DocumentHandler exposes request attachments over REST.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload godoc
// @Summary Attach a document to a legal request
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Request ID"
// @Param file formData file true "Document file"
// @Param document_type formData string true "Document type"
// @Param direction formData string true "from_legal or to_legal"
// @Success 201 {object} response.Envelope
// @Router /legal-requests/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.service.Upload(c.Request.Context(), service.UploadDocumentInput{
		RequestID:    c.Param("id"),
		DocumentType: models.LegalDocumentType(strings.ToLower(c.PostForm("document_type"))),
		Direction:    models.DocumentDirection(strings.ToLower(c.PostForm("direction"))),
		FileName:     fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		Reader:       file,
	}, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// List godoc
// @Summary List documents on a legal request
// @Tags Documents
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /legal-requests/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, nil)
}

// SignDownload godoc
// @Summary Issue a signed download token
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /documents/{id}/download-url [get]
func (h *DocumentHandler) SignDownload(c *gin.Context) {
	grant, err := h.service.SignDownload(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grant, nil)
}

// Download godoc
// @Summary Download a document by signed token
// @Tags Documents
// @Produce application/octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /documents/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	doc, file, err := h.service.OpenByToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Header("Content-Type", doc.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
}

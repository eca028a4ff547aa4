package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/storage"
)

type documentStore interface {
	Create(ctx context.Context, doc *models.LegalRequestDocument) error
	GetByID(ctx context.Context, id string) (*models.LegalRequestDocument, error)
	ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestDocument, error)
}

type requestLoader interface {
	GetByID(ctx context.Context, id string) (*models.LegalPlanningRequest, error)
}

// UploadDocumentInput carries one attachment upload.
type UploadDocumentInput struct {
	RequestID    string
	DocumentType models.LegalDocumentType
	Direction    models.DocumentDirection
	FileName     string
	ContentType  string
	Size         int64
	Reader       io.Reader
}

// DocumentOptions bounds accepted uploads.
type DocumentOptions struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// SignedDownload is a time-limited download grant for one document.
type SignedDownload struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentService stores request attachments on disk, keeps their metadata in
// the database and issues signed download tokens. File bytes never transit
// the API without a valid token.
type DocumentService struct {
	documents documentStore
	requests  requestLoader
	activity  activityStore
	files     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	bus       *RequestEventBus
	logger    *zap.Logger

	maxFileSize  int64
	allowedMIMEs map[string]struct{}
	now          func() time.Time
}

// NewDocumentService wires the attachment service.
func NewDocumentService(
	documents documentStore,
	requests requestLoader,
	activity activityStore,
	files *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	bus *RequestEventBus,
	logger *zap.Logger,
	opts DocumentOptions,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxFileSizeBytes <= 0 {
		opts.MaxFileSizeBytes = 20 * 1024 * 1024
	}
	allowed := make(map[string]struct{}, len(opts.AllowedMIMEs))
	for _, mime := range opts.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(mime))] = struct{}{}
	}
	return &DocumentService{
		documents:    documents,
		requests:     requests,
		activity:     activity,
		files:        files,
		signer:       signer,
		bus:          bus,
		logger:       logger,
		maxFileSize:  opts.MaxFileSizeBytes,
		allowedMIMEs: allowed,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the file, records its metadata and appends a
// document_uploaded entry to the request trail.
func (s *DocumentService) Upload(ctx context.Context, input UploadDocumentInput, actorID string) (*models.LegalRequestDocument, error) {
	if !input.DocumentType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document type %q", input.DocumentType))
	}
	if input.Direction != models.DirectionFromLegal && input.Direction != models.DirectionToLegal {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document direction %q", input.Direction))
	}
	if input.Size > s.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}
	if len(s.allowedMIMEs) > 0 {
		if _, ok := s.allowedMIMEs[strings.ToLower(input.ContentType)]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("content type %q not accepted", input.ContentType))
		}
	}

	request, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "legal request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load legal request")
	}
	if request.Status == models.StatusClosed {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "cannot attach documents to a closed request")
	}

	relPath := filepath.Join(request.RequestNumber, sanitizeFileName(input.FileName))
	written, err := s.files.SaveStream(relPath, io.LimitReader(input.Reader, s.maxFileSize+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}
	if written > s.maxFileSize {
		if err := s.files.Delete(relPath); err != nil {
			s.logger.Warn("oversize document cleanup failed", zap.String("path", relPath), zap.Error(err))
		}
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}

	doc := &models.LegalRequestDocument{
		RequestID:    request.ID,
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		FilePath:     relPath,
		FileSize:     written,
		ContentType:  input.ContentType,
		Direction:    input.Direction,
		UploadedBy:   optionalString(actorID),
		UploadedAt:   s.now(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		if cleanupErr := s.files.Delete(relPath); cleanupErr != nil {
			s.logger.Warn("orphan document cleanup failed", zap.String("path", relPath), zap.Error(cleanupErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record document")
	}

	entry := &models.LegalRequestActivity{
		RequestID:    request.ID,
		UserID:       optionalString(actorID),
		ActivityType: models.ActivityDocumentUploaded,
		NewValue:     &doc.FileName,
		CreatedAt:    doc.UploadedAt,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Warn("document upload activity append failed",
			zap.String("request_id", request.ID), zap.Error(err))
	}

	if s.bus != nil {
		s.bus.Publish(RequestChanged{
			RequestID: request.ID,
			Kind:      EventDocumentUploaded,
			OldStatus: string(request.Status),
			NewStatus: string(request.Status),
			ActorID:   actorID,
		})
	}

	return doc, nil
}

// List returns the attachments recorded against one request.
func (s *DocumentService) List(ctx context.Context, requestID string) ([]models.LegalRequestDocument, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "legal request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load legal request")
	}
	docs, err := s.documents.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	if docs == nil {
		docs = []models.LegalRequestDocument{}
	}
	return docs, nil
}

// SignDownload issues a time-limited token for one document.
func (s *DocumentService) SignDownload(ctx context.Context, documentID string) (*SignedDownload, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	token, expiresAt, err := s.signer.Generate(doc.ID, doc.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download")
	}
	return &SignedDownload{Token: token, ExpiresAt: expiresAt}, nil
}

// OpenByToken validates a download token and returns the document metadata
// with an open file handle. The caller owns closing the handle.
func (s *DocumentService) OpenByToken(ctx context.Context, token string) (*models.LegalRequestDocument, *os.File, error) {
	documentID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	if doc.FilePath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "download token does not match document")
	}
	file, err := s.files.Open(doc.FilePath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open document")
	}
	return doc, file, nil
}

// sanitizeFileName strips path separators so uploads cannot escape the
// request directory.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "attachment"
	}
	return name
}

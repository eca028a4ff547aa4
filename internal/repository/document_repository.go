package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/landgov/landadmin-api/internal/models"
)

// DocumentRepository persists attachment metadata.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document row.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.LegalRequestDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO legal_request_documents
	(id, request_id, document_type, file_name, file_path, file_size, content_type, direction, uploaded_by, uploaded_at)
	VALUES (:id, :request_id, :document_type, :file_name, :file_path, :file_size, :content_type, :direction, :uploaded_by, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create request document: %w", err)
	}
	return nil
}

// GetByID fetches a document by identifier.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.LegalRequestDocument, error) {
	const query = `SELECT id, request_id, document_type, file_name, file_path, file_size, content_type, direction, uploaded_by, uploaded_at
	FROM legal_request_documents WHERE id = $1`
	var doc models.LegalRequestDocument
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByRequest returns documents for one request, newest first.
func (r *DocumentRepository) ListByRequest(ctx context.Context, requestID string) ([]models.LegalRequestDocument, error) {
	const query = `SELECT id, request_id, document_type, file_name, file_path, file_size, content_type, direction, uploaded_by, uploaded_at
	FROM legal_request_documents WHERE request_id = $1 ORDER BY uploaded_at DESC`
	var docs []models.LegalRequestDocument
	if err := r.db.SelectContext(ctx, &docs, query, requestID); err != nil {
		return nil, fmt.Errorf("list request documents: %w", err)
	}
	return docs, nil
}

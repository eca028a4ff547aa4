package models

import "time"

// LegalDocumentType enumerates attachment categories.
type LegalDocumentType string

const (
	DocumentLegalRequestLetter LegalDocumentType = "legal_request_letter"
	DocumentCourtOrder         LegalDocumentType = "court_order"
	DocumentZoningCertificate  LegalDocumentType = "zoning_certificate"
	DocumentInspectionReport   LegalDocumentType = "inspection_report"
	DocumentSitePhotos         LegalDocumentType = "site_photos"
	DocumentSurveyPlan         LegalDocumentType = "survey_plan"
	DocumentGISPlot            LegalDocumentType = "gis_plot"
	DocumentComplianceReport   LegalDocumentType = "compliance_report"
	DocumentOfficerMemo        LegalDocumentType = "officer_memo"
	DocumentResponseLetter     LegalDocumentType = "response_letter"
	DocumentSpatialEvidence    LegalDocumentType = "spatial_evidence"
	DocumentOther              LegalDocumentType = "other"
)

// Valid reports whether the value is a known document type.
func (t LegalDocumentType) Valid() bool {
	switch t {
	case DocumentLegalRequestLetter, DocumentCourtOrder, DocumentZoningCertificate,
		DocumentInspectionReport, DocumentSitePhotos, DocumentSurveyPlan,
		DocumentGISPlot, DocumentComplianceReport, DocumentOfficerMemo,
		DocumentResponseLetter, DocumentSpatialEvidence, DocumentOther:
		return true
	}
	return false
}

// DocumentDirection records which division supplied the file.
type DocumentDirection string

const (
	DirectionFromLegal DocumentDirection = "from_legal"
	DirectionToLegal   DocumentDirection = "to_legal"
)

// LegalRequestDocument holds attachment metadata; file bytes live in storage.
type LegalRequestDocument struct {
	ID           string            `db:"id" json:"id"`
	RequestID    string            `db:"request_id" json:"request_id"`
	DocumentType LegalDocumentType `db:"document_type" json:"document_type"`
	FileName     string            `db:"file_name" json:"file_name"`
	FilePath     string            `db:"file_path" json:"-"`
	FileSize     int64             `db:"file_size" json:"file_size"`
	ContentType  string            `db:"content_type" json:"content_type"`
	Direction    DocumentDirection `db:"direction" json:"direction"`
	UploadedBy   *string           `db:"uploaded_by" json:"uploaded_by,omitempty"`
	UploadedAt   time.Time         `db:"uploaded_at" json:"uploaded_at"`
}

package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/landgov/landadmin-api/internal/dto"
	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
	"github.com/landgov/landadmin-api/pkg/export"
)

var registerHeaders = []string{
	"Request Number", "Case Number", "Type", "Subject", "Urgency",
	"Status", "Assigned To", "Submitted", "Due", "Overdue",
}

// ExportService renders the request register and formal response letters.
type ExportService struct {
	requests legalRequestStore
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService wires the export service.
func NewExportService(requests legalRequestStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		requests: requests,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterCSV renders the filtered request register as CSV.
func (s *ExportService) RegisterCSV(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error) {
	dataset, err := s.registerDataset(ctx, query)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

// RegisterPDF renders the filtered request register as a PDF table.
func (s *ExportService) RegisterPDF(ctx context.Context, query dto.LegalRequestQuery) ([]byte, error) {
	dataset, err := s.registerDataset(ctx, query)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.Render(*dataset, "Legal Request Register")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}

// ResponseLetter renders the formal response letter for one completed
// request. Requests that have not completed yet have nothing to print.
func (s *ExportService) ResponseLetter(ctx context.Context, request *models.LegalPlanningRequest) ([]byte, error) {
	if request.ResponseSummary == nil || !isTerminalSuccess(request.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "request has no response to print")
	}

	letter := export.Letter{
		Title: "Planning Division Response",
		Fields: []export.LetterField{
			{Label: "Request Number", Value: request.RequestNumber},
			{Label: "Request Type", Value: string(request.RequestType)},
			{Label: "Subject", Value: request.Subject},
			{Label: "Legal Officer", Value: request.LegalOfficerName},
			{Label: "Submitted", Value: request.SubmittedDate.Format("2 January 2006")},
		},
	}
	if request.LegalCaseNumber != nil {
		letter.Fields = append(letter.Fields, export.LetterField{Label: "Case Number", Value: *request.LegalCaseNumber})
	}
	if request.CompletedAt != nil {
		letter.Fields = append(letter.Fields, export.LetterField{Label: "Completed", Value: request.CompletedAt.Format("2 January 2006")})
	}

	letter.Sections = append(letter.Sections, export.LetterSection{Title: "Response Summary", Body: *request.ResponseSummary})
	if request.Findings != nil {
		letter.Sections = append(letter.Sections, export.LetterSection{Title: "Findings", Body: *request.Findings})
	}
	if request.Recommendations != nil {
		letter.Sections = append(letter.Sections, export.LetterSection{Title: "Recommendations", Body: *request.Recommendations})
	}

	payload, err := s.pdf.RenderLetter(letter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render letter")
	}
	return payload, nil
}

func (s *ExportService) registerDataset(ctx context.Context, query dto.LegalRequestQuery) (*export.Dataset, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 200
	}
	requests, err := s.requests.List(ctx, models.LegalRequestFilter{
		Status:          query.Status,
		Urgency:         query.Urgency,
		LegalCaseNumber: query.LegalCaseNumber,
		AssignedTo:      query.AssignedTo,
		ParcelID:        query.ParcelID,
		Limit:           limit,
		Offset:          query.Offset,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests for export")
	}

	now := s.now()
	rows := make([]map[string]string, 0, len(requests))
	for i := range requests {
		request := &requests[i]
		DecorateSLA(request, now)
		row := map[string]string{
			"Request Number": request.RequestNumber,
			"Type":           string(request.RequestType),
			"Subject":        request.Subject,
			"Urgency":        string(request.Urgency),
			"Status":         string(request.Status),
			"Submitted":      request.SubmittedDate.Format("2006-01-02"),
			"Overdue":        strconv.FormatBool(request.IsOverdue),
		}
		if request.LegalCaseNumber != nil {
			row["Case Number"] = *request.LegalCaseNumber
		}
		if request.AssignedTo != nil {
			row["Assigned To"] = *request.AssignedTo
		}
		if request.DueDate != nil {
			row["Due"] = request.DueDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}

	s.logger.Debug("request register exported", zap.Int("rows", len(rows)))
	return &export.Dataset{Headers: registerHeaders, Rows: rows}, nil
}

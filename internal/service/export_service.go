package service

import (
	"context"
	"time"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/export"
)

type bookingLister interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingWithEventType, error)
}

// ExportResult carries rendered export bytes with transport metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders booking listings as downloadable files for the
// dashboard.
type ExportService struct {
	bookings bookingLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	now      func() time.Time
}

// NewExportService instantiates ExportService.
func NewExportService(bookings bookingLister) *ExportService {
	return &ExportService{
		bookings: bookings,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		now:      time.Now,
	}
}

// Bookings renders the filtered booking list in the requested format
// ("csv" or "pdf").
func (s *ExportService) Bookings(ctx context.Context, filter models.BookingFilter, format string) (*ExportResult, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings for export")
	}

	dataset := bookingsDataset(bookings)
	stamp := s.now().Format("2006-01-02")

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "bookings-" + stamp + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Bookings")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "bookings-" + stamp + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func bookingsDataset(bookings []models.BookingWithEventType) export.Dataset {
	headers := []string{"Event", "Attendee", "Email", "Start", "End", "Status"}
	rows := make([]map[string]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, map[string]string{
			"Event":    b.EventTypeTitle,
			"Attendee": b.AttendeeName,
			"Email":    b.AttendeeEmail,
			"Start":    b.StartTime.Format(time.RFC3339),
			"End":      b.EndTime.Format(time.RFC3339),
			"Status":   b.Status,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

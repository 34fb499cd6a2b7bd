package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type bookingListerStub struct {
	bookings []models.BookingWithEventType
}

func (s *bookingListerStub) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingWithEventType, error) {
	return s.bookings, nil
}

func sampleBookings() []models.BookingWithEventType {
	start := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	return []models.BookingWithEventType{
		{
			Booking: models.Booking{
				ID:            1,
				AttendeeName:  "Asha",
				AttendeeEmail: "asha@example.com",
				StartTime:     start,
				EndTime:       start.Add(30 * time.Minute),
				Status:        models.BookingConfirmed,
			},
			EventTypeTitle: "Intro Call",
		},
	}
}

func TestExportBookingsCSV(t *testing.T) {
	svc := NewExportService(&bookingListerStub{bookings: sampleBookings()})

	result, err := svc.Bookings(context.Background(), models.BookingFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "bookings-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	content := string(result.Content)
	assert.Contains(t, content, "Event,Attendee,Email,Start,End,Status")
	assert.Contains(t, content, "Intro Call")
	assert.Contains(t, content, "asha@example.com")
}

func TestExportBookingsPDF(t *testing.T) {
	svc := NewExportService(&bookingListerStub{bookings: sampleBookings()})

	result, err := svc.Bookings(context.Background(), models.BookingFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.NotEmpty(t, result.Content)
}

func TestExportBookingsUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&bookingListerStub{})

	_, err := svc.Bookings(context.Background(), models.BookingFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

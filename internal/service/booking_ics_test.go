package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calbook-api/internal/models"
)

func TestCalendarFileRendersBooking(t *testing.T) {
	start := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		ID:            42,
		PublicID:      "11111111-2222-3333-4444-555555555555",
		EventTypeID:   1,
		AttendeeName:  "Asha",
		AttendeeEmail: "asha@example.com",
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        models.BookingConfirmed,
		CreatedAt:     start.Add(-24 * time.Hour),
	}
	store := &bookingStoreStub{findResult: booking}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	content, filename, err := svc.CalendarFile(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "intro.ics", filename)

	ics := string(content)
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "SUMMARY:Intro Call with Asha")
	assert.Contains(t, ics, "LOCATION:Cal Video")
	assert.Contains(t, ics, "STATUS:CONFIRMED")
	assert.Contains(t, ics, "UID:11111111-2222-3333-4444-555555555555@calbook")
}

func TestCalendarFileCanceledBooking(t *testing.T) {
	booking := &models.Booking{
		ID:          42,
		PublicID:    "abc",
		EventTypeID: 1,
		Status:      models.BookingCanceled,
	}
	store := &bookingStoreStub{findResult: booking}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	content, _, err := svc.CalendarFile(context.Background(), 42)
	require.NoError(t, err)
	assert.Contains(t, string(content), "STATUS:CANCELLED")
}

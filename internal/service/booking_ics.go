package service

import (
	"context"
	"fmt"

	ical "github.com/arran4/golang-ical"

	"github.com/noah-isme/calbook-api/internal/models"
)

// CalendarFile renders a booking as an iCalendar attachment so attendees can
// import it into their own calendar.
func (s *BookingService) CalendarFile(ctx context.Context, id int64) ([]byte, string, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	eventType, err := s.eventTypes.FindByID(ctx, booking.EventTypeID)
	if err != nil {
		return nil, "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//calbook//booking//EN")

	event := cal.AddEvent(fmt.Sprintf("%s@calbook", booking.PublicID))
	event.SetCreatedTime(booking.CreatedAt)
	event.SetDtStampTime(booking.CreatedAt)
	event.SetStartAt(booking.StartTime)
	event.SetEndAt(booking.EndTime)
	event.SetSummary(fmt.Sprintf("%s with %s", eventType.Title, booking.AttendeeName))
	event.SetLocation(eventType.Location)
	if booking.Notes != nil && *booking.Notes != "" {
		event.SetDescription(*booking.Notes)
	}
	event.AddAttendee(booking.AttendeeEmail, ical.CalendarUserTypeIndividual)
	if booking.Status == models.BookingCanceled {
		event.SetStatus(ical.ObjectStatusCancelled)
	} else {
		event.SetStatus(ical.ObjectStatusConfirmed)
	}

	filename := fmt.Sprintf("%s.ics", eventType.Slug)
	return []byte(cal.Serialize()), filename, nil
}

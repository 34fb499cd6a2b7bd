package models

import "time"

// Booking statuses. Canceled bookings stay on record but release their slot.
const (
	BookingConfirmed   = "confirmed"
	BookingUnconfirmed = "unconfirmed"
	BookingCanceled    = "canceled"
)

// Booking reserves an absolute time interval against an event type.
// PublicID is the attendee-facing reference used in manage links; the
// numeric id stays internal.
type Booking struct {
	ID            int64     `db:"id" json:"id"`
	PublicID      string    `db:"public_id" json:"public_id"`
	EventTypeID   int64     `db:"event_type_id" json:"event_type_id"`
	AttendeeName  string    `db:"attendee_name" json:"attendee_name"`
	AttendeeEmail string    `db:"attendee_email" json:"attendee_email"`
	AttendeeTZ    string    `db:"attendee_timezone" json:"attendee_timezone"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	Status        string    `db:"status" json:"status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// BookingWithEventType joins booking rows with their event type columns for
// the dashboard listing.
type BookingWithEventType struct {
	Booking
	EventTypeTitle    string `db:"event_type_title" json:"event_type_title"`
	EventTypeSlug     string `db:"event_type_slug" json:"event_type_slug"`
	EventTypeDuration int    `db:"event_type_duration" json:"event_type_duration"`
	EventTypeLocation string `db:"event_type_location" json:"event_type_location"`
}

// BookingFilter narrows the booking listing.
type BookingFilter struct {
	Filter string // upcoming, past, canceled, unconfirmed
	Status string // confirmed, unconfirmed, canceled, all
}

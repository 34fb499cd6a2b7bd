package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

// 23P01 is raised by the exclusion constraint guarding double bookings.
// The constraint is what makes check-then-insert safe under concurrency:
// two racing inserts for the same slot cannot both commit.
const pqExclusionViolation = "23P01"

const bookingColumns = `id, public_id, event_type_id, attendee_name, attendee_email, attendee_timezone, start_time, end_time, status, notes, created_at, updated_at`

// BookingRepository provides persistence for bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking. Exclusion-constraint violations surface as the
// slot-conflict domain error.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	if b.PublicID == "" {
		b.PublicID = uuid.NewString()
	}
	const query = `INSERT INTO bookings (public_id, event_type_id, attendee_name, attendee_email, attendee_timezone, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		b.PublicID, b.EventTypeID, b.AttendeeName, b.AttendeeEmail, b.AttendeeTZ, b.StartTime, b.EndTime, b.Status, b.Notes).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return appErrors.ErrSlotConflict
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// HasConflict reports whether any non-canceled booking for the event type
// overlaps the half-open candidate interval, optionally ignoring one booking
// id (reschedule path).
func (r *BookingRepository) HasConflict(ctx context.Context, eventTypeID int64, iv interval.Interval, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE event_type_id = $1
		AND status <> 'canceled'
		AND start_time < $3 AND $2 < end_time`
	args := []interface{}{eventTypeID, iv.Start, iv.End}
	if excludeID > 0 {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}
	query += `)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check booking conflict: %w", err)
	}
	return exists, nil
}

// BookedIntervals returns the non-canceled booked intervals for an event
// type whose start falls inside [from, to).
func (r *BookingRepository) BookedIntervals(ctx context.Context, eventTypeID int64, from, to time.Time) ([]interval.Interval, error) {
	const query = `SELECT start_time, end_time FROM bookings
		WHERE event_type_id = $1
		AND status <> 'canceled'
		AND start_time >= $2 AND start_time < $3`
	rows, err := r.db.QueryxContext(ctx, query, eventTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load booked intervals: %w", err)
	}
	defer rows.Close()

	intervals := make([]interval.Interval, 0)
	for rows.Next() {
		var iv interval.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan booked interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked intervals: %w", err)
	}
	return intervals, nil
}

// List returns bookings joined with event type columns, newest start first.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter, now time.Time) ([]models.BookingWithEventType, error) {
	query := `SELECT b.id, b.public_id, b.event_type_id, b.attendee_name, b.attendee_email, b.attendee_timezone, b.start_time, b.end_time, b.status, b.notes, b.created_at, b.updated_at,
		et.title AS event_type_title, et.slug AS event_type_slug, et.duration AS event_type_duration, et.location AS event_type_location
		FROM bookings b
		INNER JOIN event_types et ON b.event_type_id = et.id`

	var conditions []string
	var args []interface{}

	if filter.Status != "" && filter.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	switch filter.Filter {
	case "upcoming":
		conditions = append(conditions, fmt.Sprintf("b.start_time >= $%d AND b.status <> 'canceled'", len(args)+1))
		args = append(args, now)
	case "past":
		conditions = append(conditions, fmt.Sprintf("b.start_time < $%d AND b.status <> 'canceled'", len(args)+1))
		args = append(args, now)
	case "canceled":
		conditions = append(conditions, "b.status = 'canceled'")
	case "unconfirmed":
		conditions = append(conditions, "b.status = 'unconfirmed'")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.start_time DESC"

	bookings := make([]models.BookingWithEventType, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// FindByID loads a booking by internal id.
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var b models.Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

// Cancel marks a booking canceled and returns the updated row.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) (*models.Booking, error) {
	query := fmt.Sprintf(`UPDATE bookings SET status = 'canceled', updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING %s`, bookingColumns)
	var b models.Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return &b, nil
}

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type bookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	HasConflict(ctx context.Context, eventTypeID int64, iv interval.Interval, excludeID int64) (bool, error)
	List(ctx context.Context, filter models.BookingFilter, now time.Time) ([]models.BookingWithEventType, error)
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	Cancel(ctx context.Context, id int64) (*models.Booking, error)
}

// CreateBookingRequest reserves a slot. Duration is never accepted from the
// client; it is derived from the event type and validated.
type CreateBookingRequest struct {
	EventTypeID   int64     `json:"event_type_id" validate:"required"`
	AttendeeName  string    `json:"attendee_name" validate:"required"`
	AttendeeEmail string    `json:"attendee_email" validate:"required,email"`
	AttendeeTZ    string    `json:"attendee_timezone"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
	Notes         *string   `json:"notes"`
}

// CreateBookingResult pairs the stored booking with its manage token, the
// credential behind attendee-facing cancel links.
type CreateBookingResult struct {
	Booking     *models.Booking `json:"booking"`
	ManageToken string          `json:"manage_token,omitempty"`
}

// BookingOptions tune manage-token issuance and verification.
type BookingOptions struct {
	RequireManageToken bool
	ManageTokenSecret  string
	DefaultTimezone    string
}

// BookingService enforces the booking invariants: interval validity,
// duration match, visibility and no double booking. The storage layer backs
// the conflict check with an exclusion constraint, so the in-process check
// is a fast path, not the guarantee.
type BookingService struct {
	bookings   bookingRepository
	eventTypes slotsEventTypeRepository
	cache      slotCacheInvalidator
	opts       BookingOptions
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewBookingService instantiates BookingService.
func NewBookingService(bookings bookingRepository, eventTypes slotsEventTypeRepository, cache slotCacheInvalidator, opts BookingOptions, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:   bookings,
		eventTypes: eventTypes,
		cache:      cache,
		opts:       opts,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Create books a slot for an attendee.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required booking fields")
	}

	eventType, err := s.eventTypes.FindByID(ctx, req.EventTypeID)
	if err != nil {
		return nil, err
	}
	if !eventType.IsVisible {
		return nil, appErrors.ErrEventTypeHidden
	}

	iv, err := interval.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if iv.Duration() != time.Duration(eventType.Duration)*time.Minute {
		return nil, appErrors.Clone(appErrors.ErrDurationMismatch, "booking must be exactly "+durationLabel(eventType.Duration))
	}

	conflict, err := s.bookings.HasConflict(ctx, req.EventTypeID, iv, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check booking conflicts")
	}
	if conflict {
		return nil, appErrors.ErrSlotConflict
	}

	attendeeTZ := req.AttendeeTZ
	if attendeeTZ == "" {
		attendeeTZ = s.opts.DefaultTimezone
	}

	booking := &models.Booking{
		EventTypeID:   req.EventTypeID,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		AttendeeTZ:    attendeeTZ,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        models.BookingConfirmed,
		Notes:         req.Notes,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx, req.EventTypeID)

	result := &CreateBookingResult{Booking: booking}
	if s.opts.ManageTokenSecret != "" {
		token, err := s.issueManageToken(booking)
		if err != nil {
			// Creation succeeded; a missing manage link is recoverable.
			s.logger.Warn("manage token issuance failed", zap.Int64("booking_id", booking.ID), zap.Error(err))
		} else {
			result.ManageToken = token
		}
	}
	return result, nil
}

// List returns bookings for the dashboard, filtered by time bucket and
// status.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingWithEventType, error) {
	bookings, err := s.bookings.List(ctx, filter, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return bookings, nil
}

// Cancel marks a booking canceled, releasing its slot. When manage-token
// enforcement is on, the caller must present a token minted for this
// booking.
func (s *BookingService) Cancel(ctx context.Context, id int64, manageToken string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.opts.RequireManageToken {
		if err := s.verifyManageToken(manageToken, booking.PublicID); err != nil {
			return nil, err
		}
	}

	canceled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx, canceled.EventTypeID)
	return canceled, nil
}

func (s *BookingService) invalidateSlots(ctx context.Context, eventTypeID int64) {
	if s.cache == nil {
		return
	}
	prefix := SlotsCacheKey(eventTypeID, "")
	if err := s.cache.InvalidatePrefix(ctx, prefix); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

func durationLabel(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return strconv.Itoa(minutes) + " minutes"
}

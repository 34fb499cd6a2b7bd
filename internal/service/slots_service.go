package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type slotsScheduleRepository interface {
	DefaultWindows(ctx context.Context, day interval.DayOfWeek) (*models.DayWindows, error)
}

type slotsEventTypeRepository interface {
	FindByID(ctx context.Context, id int64) (*models.EventType, error)
}

type slotsBookingRepository interface {
	BookedIntervals(ctx context.Context, eventTypeID int64, from, to time.Time) ([]interval.Interval, error)
}

type slotsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Slot is one bookable window in the public availability response.
// Formatted is a presentation convenience recomputable from Start.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Formatted string    `json:"formatted"`
}

// SlotsService answers the public availability query: which windows of a
// given date can still be booked for an event type.
type SlotsService struct {
	schedules  slotsScheduleRepository
	eventTypes slotsEventTypeRepository
	bookings   slotsBookingRepository
	cache      slotsCache
	cacheTTL   time.Duration
	metrics    *MetricsService
	logger     *zap.Logger

	// now is injectable for deterministic tests.
	now func() time.Time
	loc *time.Location
}

// NewSlotsService instantiates SlotsService. Cache and metrics may be nil.
func NewSlotsService(schedules slotsScheduleRepository, eventTypes slotsEventTypeRepository, bookings slotsBookingRepository, cache slotsCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *SlotsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotsService{
		schedules:  schedules,
		eventTypes: eventTypes,
		bookings:   bookings,
		cache:      cache,
		cacheTTL:   cacheTTL,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
		loc:        time.Local,
	}
}

// SlotsCacheKey names the cached slot listing for one event type and date.
func SlotsCacheKey(eventTypeID int64, date string) string {
	return fmt.Sprintf("slots:%d:%s", eventTypeID, date)
}

// ListSlots computes the ordered bookable slots for an event type on a date
// given as "YYYY-MM-DD". Timezone handling is naive: the date is anchored in
// the server location and the schedule timezone stays informational.
func (s *SlotsService) ListSlots(ctx context.Context, eventTypeID int64, date string) ([]Slot, error) {
	eventType, err := s.eventTypes.FindByID(ctx, eventTypeID)
	if err != nil {
		return nil, err
	}
	if !eventType.IsVisible {
		return nil, appErrors.ErrEventTypeHidden
	}
	if eventType.Duration < 1 {
		return nil, appErrors.ErrInvalidDuration
	}

	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}

	cacheKey := SlotsCacheKey(eventTypeID, date)
	if s.cache != nil {
		var cached []Slot
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.ObserveSlotCache(true)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.ObserveSlotCache(false)
		}
	}

	dayWindows, err := s.schedules.DefaultWindows(ctx, interval.DayOfWeek(day.Weekday()))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	if len(dayWindows.Windows) == 0 {
		return []Slot{}, nil
	}

	windows := make([]interval.Interval, 0, len(dayWindows.Windows))
	for _, w := range dayWindows.Windows {
		iv, err := interval.New(w.StartTime.OnDate(day, s.loc), w.EndTime.OnDate(day, s.loc))
		if err != nil {
			return nil, err
		}
		windows = append(windows, iv)
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	booked, err := s.bookings.BookedIntervals(ctx, eventTypeID, dayStart, dayEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	duration := time.Duration(eventType.Duration) * time.Minute
	generated, err := GenerateSlots(windows, duration, booked, s.now())
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(generated))
	for _, g := range generated {
		slots = append(slots, Slot{
			Start:     g.Start,
			End:       g.End,
			Formatted: g.Start.Format("3:04 PM"),
		})
	}

	if s.metrics != nil {
		s.metrics.ObserveSlotsGenerated(len(slots))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, slots, s.cacheTTL); err != nil {
			s.logger.Warn("slot cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return slots, nil
}

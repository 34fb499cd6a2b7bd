package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	"github.com/noah-isme/calbook-api/internal/repository"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type scheduleRepository interface {
	ListFlat(ctx context.Context) ([]models.AvailabilityRow, error)
	FindByID(ctx context.Context, id int64) (*models.Schedule, error)
	ListSlots(ctx context.Context, scheduleID int64) ([]models.AvailabilitySlot, error)
	Create(ctx context.Context, sched *models.Schedule, slots []models.SlotInput) error
	Update(ctx context.Context, id int64, meta models.ScheduleUpdate, delta models.SlotDelta) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, schedules []repository.ScheduleReplacement) error
}

type slotCacheInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// CreateScheduleRequest describes payload for creating a schedule.
type CreateScheduleRequest struct {
	Name      string             `json:"name" validate:"required"`
	Timezone  string             `json:"timezone"`
	IsDefault bool               `json:"is_default"`
	Slots     []models.SlotInput `json:"slots"`
}

// UpdateScheduleRequest updates schedule metadata and, when Slots is
// present, replaces the slot set via reconciliation.
type UpdateScheduleRequest struct {
	Name      *string             `json:"name"`
	Timezone  *string             `json:"timezone"`
	IsDefault *bool               `json:"is_default"`
	Slots     *[]models.SlotInput `json:"slots"`
}

// AvailabilityEntry is one row of the legacy bulk availability payload.
type AvailabilityEntry struct {
	Name      string             `json:"name" validate:"required"`
	DayOfWeek interval.DayOfWeek `json:"day_of_week"`
	StartTime interval.TimeOfDay `json:"start_time"`
	EndTime   interval.TimeOfDay `json:"end_time"`
	IsDefault bool               `json:"is_default"`
}

// ScheduleService coordinates schedule writes. The reconciler keeps slot
// identity stable across edits; the repository applies the resulting delta
// atomically.
type ScheduleService struct {
	repo            scheduleRepository
	cache           slotCacheInvalidator
	validator       *validator.Validate
	logger          *zap.Logger
	defaultTimezone string
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleRepository, cache slotCacheInvalidator, validate *validator.Validate, logger *zap.Logger, defaultTimezone string) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, validator: validate, logger: logger, defaultTimezone: defaultTimezone}
}

// ListAvailability returns the flat schedule+slot rows.
func (s *ScheduleService) ListAvailability(ctx context.Context) ([]models.AvailabilityRow, error) {
	rows, err := s.repo.ListFlat(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return rows, nil
}

// Get loads one schedule with slots.
func (s *ScheduleService) Get(ctx context.Context, id int64) (*models.Schedule, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new schedule with its slots. When the new schedule is
// flagged default, every other schedule's flag is cleared in the same
// transaction.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "schedule name is required")
	}
	slots, err := validateSlots(req.Slots)
	if err != nil {
		return nil, err
	}

	sched := &models.Schedule{
		Name:      strings.TrimSpace(req.Name),
		Timezone:  req.Timezone,
		IsDefault: req.IsDefault,
	}
	if sched.Timezone == "" {
		sched.Timezone = s.defaultTimezone
	}

	if err := s.repo.Create(ctx, sched, slots); err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx)

	return s.repo.FindByID(ctx, sched.ID)
}

// Update applies metadata changes and, when slots are present, reconciles
// them against the stored set so unchanged rows keep their ids.
func (s *ScheduleService) Update(ctx context.Context, id int64, req UpdateScheduleRequest) (*models.Schedule, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var delta models.SlotDelta
	if req.Slots != nil {
		incoming, err := validateSlots(*req.Slots)
		if err != nil {
			return nil, err
		}
		delta = ReconcileSlots(existing.Slots, incoming)
		s.logger.Debug("schedule slots reconciled",
			zap.Int64("schedule_id", id),
			zap.Int("keep", len(delta.Keep)),
			zap.Int("update", len(delta.Update)),
			zap.Int("insert", len(delta.Insert)),
			zap.Int("delete", len(delta.Delete)),
		)
	}

	meta := models.ScheduleUpdate{Name: req.Name, Timezone: req.Timezone, IsDefault: req.IsDefault}
	if err := s.repo.Update(ctx, id, meta, delta); err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx)

	return s.repo.FindByID(ctx, id)
}

// ReplaceAvailability wipes and recreates all schedules from flat rows, the
// legacy bulk update shape. Rows are grouped by schedule name; the first row
// flagged default wins, falling back to the first schedule, so the result
// always has exactly one default.
func (s *ScheduleService) ReplaceAvailability(ctx context.Context, entries []AvailabilityEntry) ([]models.AvailabilityRow, error) {
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availability must be a non-empty array")
	}

	order := make([]string, 0)
	grouped := make(map[string]*repository.ScheduleReplacement)
	defaultName := ""

	for _, entry := range entries {
		if err := s.validator.Struct(entry); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "each availability entry must have name, day_of_week, start_time and end_time")
		}
		if !interval.ValidDay(entry.DayOfWeek) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "day_of_week must be between 0 and 6")
		}
		if !entry.StartTime.Before(entry.EndTime) {
			return nil, appErrors.ErrInvalidInterval
		}

		group, ok := grouped[entry.Name]
		if !ok {
			group = &repository.ScheduleReplacement{Name: entry.Name, Timezone: s.defaultTimezone}
			grouped[entry.Name] = group
			order = append(order, entry.Name)
		}
		group.Slots = append(group.Slots, models.SlotInput{
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
		if entry.IsDefault && defaultName == "" {
			defaultName = entry.Name
		}
	}
	if defaultName == "" {
		defaultName = order[0]
	}

	replacements := make([]repository.ScheduleReplacement, 0, len(order))
	for _, name := range order {
		group := grouped[name]
		group.IsDefault = name == defaultName
		replacements = append(replacements, *group)
	}

	if err := s.repo.ReplaceAll(ctx, replacements); err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx)

	return s.ListAvailability(ctx)
}

// Delete removes a schedule and its slots.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSlots(ctx)
	return nil
}

func (s *ScheduleService) invalidateSlots(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, "slots:"); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(err))
	}
}

func validateSlots(slots []models.SlotInput) ([]models.SlotInput, error) {
	out := make([]models.SlotInput, 0, len(slots))
	for _, slot := range slots {
		if !interval.ValidDay(slot.DayOfWeek) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "day_of_week must be between 0 and 6")
		}
		if !slot.StartTime.Before(slot.EndTime) {
			return nil, appErrors.ErrInvalidInterval
		}
		out = append(out, slot)
	}
	return out, nil
}

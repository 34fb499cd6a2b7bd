package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type eventTypeRepository interface {
	List(ctx context.Context) ([]models.EventType, error)
	FindByID(ctx context.Context, id int64) (*models.EventType, error)
	FindVisibleBySlug(ctx context.Context, slug string) (*models.EventType, error)
	Create(ctx context.Context, et *models.EventType) error
	Update(ctx context.Context, et *models.EventType) error
	Delete(ctx context.Context, id int64) error
}

// EventTypeRequest is the create/update payload for event types.
type EventTypeRequest struct {
	Title                  string  `json:"title" validate:"required"`
	Slug                   string  `json:"slug" validate:"required"`
	Duration               int     `json:"duration" validate:"required,min=1"`
	Description            *string `json:"description"`
	IsVisible              *bool   `json:"is_visible"`
	Location               string  `json:"location"`
	AllowMultipleDurations bool    `json:"allow_multiple_durations"`
	UserSlug               *string `json:"user_slug"`
}

// EventTypeService manages bookable meeting definitions.
type EventTypeService struct {
	repo      eventTypeRepository
	cache     slotCacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventTypeService instantiates EventTypeService.
func NewEventTypeService(repo eventTypeRepository, cache slotCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *EventTypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventTypeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all event types.
func (s *EventTypeService) List(ctx context.Context) ([]models.EventType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list event types")
	}
	return types, nil
}

// Get loads one event type by id.
func (s *EventTypeService) Get(ctx context.Context, id int64) (*models.EventType, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug resolves the public booking-page lookup; hidden event types are
// indistinguishable from missing ones.
func (s *EventTypeService) GetBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	return s.repo.FindVisibleBySlug(ctx, slug)
}

// Create validates and stores a new event type.
func (s *EventTypeService) Create(ctx context.Context, req EventTypeRequest) (*models.EventType, error) {
	et, err := s.buildEventType(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, et); err != nil {
		return nil, err
	}
	return et, nil
}

// Update replaces an event type in full. Duration or visibility changes make
// cached slot listings stale, so the cache is flushed.
func (s *EventTypeService) Update(ctx context.Context, id int64, req EventTypeRequest) (*models.EventType, error) {
	et, err := s.buildEventType(req)
	if err != nil {
		return nil, err
	}
	et.ID = id
	if err := s.repo.Update(ctx, et); err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx, id)
	return s.repo.FindByID(ctx, id)
}

// Delete removes an event type. Event types with bookings against them are
// hidden rather than deleted by policy; enforcing that is the caller's call.
func (s *EventTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSlots(ctx, id)
	return nil
}

func (s *EventTypeService) buildEventType(req EventTypeRequest) (*models.EventType, error) {
	req.Slug = strings.TrimSpace(req.Slug)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title, slug and a positive duration are required")
	}

	et := &models.EventType{
		Title:                  req.Title,
		Slug:                   req.Slug,
		Duration:               req.Duration,
		Description:            req.Description,
		IsVisible:              true,
		Location:               req.Location,
		AllowMultipleDurations: req.AllowMultipleDurations,
		UserSlug:               req.UserSlug,
	}
	if req.IsVisible != nil {
		et.IsVisible = *req.IsVisible
	}
	if et.Location == "" {
		et.Location = "Cal Video"
	}
	return et, nil
}

func (s *EventTypeService) invalidateSlots(ctx context.Context, eventTypeID int64) {
	if s.cache == nil {
		return
	}
	prefix := SlotsCacheKey(eventTypeID, "")
	if err := s.cache.InvalidatePrefix(ctx, prefix); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

const eventTypeColumns = `id, title, slug, duration, description, is_visible, location, allow_multiple_durations, user_slug, created_at, updated_at`

// EventTypeRepository provides persistence for event types.
type EventTypeRepository struct {
	db *sqlx.DB
}

// NewEventTypeRepository creates a new event type repository.
func NewEventTypeRepository(db *sqlx.DB) *EventTypeRepository {
	return &EventTypeRepository{db: db}
}

// List returns all event types, newest first.
func (r *EventTypeRepository) List(ctx context.Context) ([]models.EventType, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_types ORDER BY created_at DESC`, eventTypeColumns)
	types := make([]models.EventType, 0)
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return types, nil
}

// FindByID loads an event type by id.
func (r *EventTypeRepository) FindByID(ctx context.Context, id int64) (*models.EventType, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_types WHERE id = $1`, eventTypeColumns)
	var et models.EventType
	if err := r.db.GetContext(ctx, &et, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event type not found")
		}
		return nil, fmt.Errorf("find event type: %w", err)
	}
	return &et, nil
}

// FindVisibleBySlug loads a visible event type by its public slug.
func (r *EventTypeRepository) FindVisibleBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_types WHERE slug = $1 AND is_visible = true`, eventTypeColumns)
	var et models.EventType
	if err := r.db.GetContext(ctx, &et, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event type not found")
		}
		return nil, fmt.Errorf("find event type by slug: %w", err)
	}
	return &et, nil
}

// Create stores a new event type.
func (r *EventTypeRepository) Create(ctx context.Context, et *models.EventType) error {
	const query = `INSERT INTO event_types (title, slug, duration, description, is_visible, location, allow_multiple_durations, user_slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		et.Title, et.Slug, et.Duration, et.Description, et.IsVisible, et.Location, et.AllowMultipleDurations, et.UserSlug).
		Scan(&et.ID, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		return mapEventTypeError(err)
	}
	return nil
}

// Update modifies an event type in full.
func (r *EventTypeRepository) Update(ctx context.Context, et *models.EventType) error {
	const query = `UPDATE event_types
		SET title = $1, slug = $2, duration = $3, description = $4, is_visible = $5,
			location = $6, allow_multiple_durations = $7, user_slug = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		et.Title, et.Slug, et.Duration, et.Description, et.IsVisible, et.Location, et.AllowMultipleDurations, et.UserSlug, et.ID).
		Scan(&et.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event type not found")
		}
		return mapEventTypeError(err)
	}
	return nil
}

// Delete removes an event type by id.
func (r *EventTypeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event type: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "event type not found")
	}
	return nil
}

func mapEventTypeError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return appErrors.Clone(appErrors.ErrConflict, "slug already exists")
	}
	return fmt.Errorf("event type write: %w", err)
}

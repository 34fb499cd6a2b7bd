package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

const pqUniqueViolation = "23505"

// ScheduleRepository provides persistence for availability schedules and
// their slots. Every mutation touching slots or the default flag runs inside
// a single transaction so concurrent saves cannot interleave.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListFlat returns every slot joined with its schedule metadata, the shape
// the availability dashboard consumes.
func (r *ScheduleRepository) ListFlat(ctx context.Context) ([]models.AvailabilityRow, error) {
	const query = `SELECT sl.id, s.id AS schedule_id, s.name, s.timezone, sl.day_of_week, sl.start_time, sl.end_time, s.is_default, sl.created_at
		FROM availability_schedules s
		INNER JOIN availability_slots sl ON sl.schedule_id = s.id
		ORDER BY s.name, sl.day_of_week, sl.start_time`
	var rows []models.AvailabilityRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return rows, nil
}

// FindByID loads a schedule with its slots in canonical display order.
func (r *ScheduleRepository) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	const query = `SELECT id, name, timezone, is_default, created_at, updated_at FROM availability_schedules WHERE id = $1`
	var sched models.Schedule
	if err := r.db.GetContext(ctx, &sched, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}

	slots, err := r.ListSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	sched.Slots = slots
	return &sched, nil
}

// ListSlots returns a schedule's slots ordered by day then start time.
func (r *ScheduleRepository) ListSlots(ctx context.Context, scheduleID int64) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, schedule_id, day_of_week, start_time, end_time, created_at
		FROM availability_slots WHERE schedule_id = $1 ORDER BY day_of_week, start_time`
	slots := make([]models.AvailabilitySlot, 0)
	if err := r.db.SelectContext(ctx, &slots, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// DefaultWindows returns the default schedule's availability windows for one
// weekday, with the schedule timezone (informational only).
func (r *ScheduleRepository) DefaultWindows(ctx context.Context, day interval.DayOfWeek) (*models.DayWindows, error) {
	const query = `SELECT sl.start_time, sl.end_time, s.timezone
		FROM availability_slots sl
		INNER JOIN availability_schedules s ON sl.schedule_id = s.id
		WHERE sl.day_of_week = $1 AND s.is_default = true
		ORDER BY sl.start_time`
	rows, err := r.db.QueryxContext(ctx, query, int(day))
	if err != nil {
		return nil, fmt.Errorf("load default windows: %w", err)
	}
	defer rows.Close()

	result := &models.DayWindows{Windows: make([]models.SlotWindow, 0)}
	for rows.Next() {
		var w models.SlotWindow
		if err := rows.Scan(&w.StartTime, &w.EndTime, &result.Timezone); err != nil {
			return nil, fmt.Errorf("scan default window: %w", err)
		}
		result.Windows = append(result.Windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate default windows: %w", err)
	}
	return result, nil
}

// Create inserts a schedule and its initial slots atomically. Flipping the
// default flag is a single statement over the whole table so the at-most-one
// invariant cannot be violated by interleaved saves.
func (r *ScheduleRepository) Create(ctx context.Context, sched *models.Schedule, slots []models.SlotInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertSchedule = `INSERT INTO availability_schedules (name, timezone, is_default)
		VALUES ($1, $2, false) RETURNING id, created_at, updated_at`
	if err = tx.QueryRowxContext(ctx, insertSchedule, sched.Name, sched.Timezone).
		Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt); err != nil {
		err = mapScheduleError(err)
		return err
	}

	if sched.IsDefault {
		if _, err = tx.ExecContext(ctx, `UPDATE availability_schedules SET is_default = (id = $1)`, sched.ID); err != nil {
			err = fmt.Errorf("set default schedule: %w", err)
			return err
		}
	}

	if err = insertSlots(ctx, tx, sched.ID, slots); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create schedule: %w", err)
	}
	return nil
}

// Update applies schedule metadata changes and the reconciled slot delta in
// one transaction: the read-modify-write sequence behind a schedule save
// must not interleave with a concurrent save.
func (r *ScheduleRepository) Update(ctx context.Context, id int64, meta models.ScheduleUpdate, delta models.SlotDelta) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const updateMeta = `UPDATE availability_schedules
		SET name = COALESCE($1, name),
			timezone = COALESCE($2, timezone),
			is_default = COALESCE($3, is_default),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`
	var res sql.Result
	if res, err = tx.ExecContext(ctx, updateMeta, meta.Name, meta.Timezone, meta.IsDefault, id); err != nil {
		err = mapScheduleError(err)
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = appErrors.ErrScheduleNotFound
		return err
	}

	if meta.IsDefault != nil && *meta.IsDefault {
		if _, err = tx.ExecContext(ctx, `UPDATE availability_schedules SET is_default = (id = $1)`, id); err != nil {
			err = fmt.Errorf("set default schedule: %w", err)
			return err
		}
	}

	for _, upd := range delta.Update {
		if _, err = tx.ExecContext(ctx,
			`UPDATE availability_slots SET start_time = $1, end_time = $2 WHERE id = $3`,
			upd.StartTime, upd.EndTime, upd.ID); err != nil {
			err = fmt.Errorf("update slot %d: %w", upd.ID, err)
			return err
		}
	}

	if err = insertSlots(ctx, tx, id, delta.Insert); err != nil {
		return err
	}

	if len(delta.Delete) > 0 {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM availability_slots WHERE id = ANY($1)`, pq.Array(delta.Delete)); err != nil {
			err = fmt.Errorf("delete slots: %w", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update schedule: %w", err)
	}
	return nil
}

// Delete removes a schedule; slots cascade at the storage layer.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return appErrors.ErrScheduleNotFound
	}
	return nil
}

// ScheduleReplacement is one schedule in a full availability replacement.
type ScheduleReplacement struct {
	Name      string
	Timezone  string
	IsDefault bool
	Slots     []models.SlotInput
}

// ReplaceAll wipes every schedule and recreates the given set, used by the
// legacy bulk availability update. Exactly one replacement must carry the
// default flag; callers normalise that before reaching here.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, schedules []ScheduleReplacement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace availability: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM availability_slots`); err != nil {
		err = fmt.Errorf("clear slots: %w", err)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM availability_schedules`); err != nil {
		err = fmt.Errorf("clear schedules: %w", err)
		return err
	}

	for _, sched := range schedules {
		var id int64
		if err = tx.QueryRowxContext(ctx,
			`INSERT INTO availability_schedules (name, timezone, is_default) VALUES ($1, $2, $3) RETURNING id`,
			sched.Name, sched.Timezone, sched.IsDefault).Scan(&id); err != nil {
			err = mapScheduleError(err)
			return err
		}
		if err = insertSlots(ctx, tx, id, sched.Slots); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace availability: %w", err)
	}
	return nil
}

func insertSlots(ctx context.Context, tx *sqlx.Tx, scheduleID int64, slots []models.SlotInput) error {
	for _, slot := range slots {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability_slots (schedule_id, day_of_week, start_time, end_time) VALUES ($1, $2, $3, $4)`,
			scheduleID, int(slot.DayOfWeek), slot.StartTime, slot.EndTime); err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}
	}
	return nil
}

func mapScheduleError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return appErrors.Clone(appErrors.ErrConflict, "a schedule with this name already exists")
	}
	return fmt.Errorf("schedule write: %w", err)
}

package models

import (
	"time"

	"github.com/noah-isme/calbook-api/internal/interval"
)

// Schedule is a named collection of weekly recurring availability slots.
// At most one schedule is flagged default system-wide; the default schedule
// feeds the public slot query.
type Schedule struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Timezone  string    `db:"timezone" json:"timezone"`
	IsDefault bool      `db:"is_default" json:"is_default"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Slots []AvailabilitySlot `db:"-" json:"slots,omitempty"`
}

// AvailabilitySlot is one day-of-week plus time-range entry within a
// schedule. The id is durable: small edits keep the row and update it in
// place rather than delete-and-recreate.
type AvailabilitySlot struct {
	ID         int64              `db:"id" json:"id"`
	ScheduleID int64              `db:"schedule_id" json:"schedule_id"`
	DayOfWeek  interval.DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime  interval.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime    interval.TimeOfDay `db:"end_time" json:"end_time"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// AvailabilityRow is the flat schedule+slot join returned by the legacy
// availability listing.
type AvailabilityRow struct {
	ID         int64              `db:"id" json:"id"`
	ScheduleID int64              `db:"schedule_id" json:"schedule_id"`
	Name       string             `db:"name" json:"name"`
	Timezone   string             `db:"timezone" json:"timezone"`
	DayOfWeek  interval.DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime  interval.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime    interval.TimeOfDay `db:"end_time" json:"end_time"`
	IsDefault  bool               `db:"is_default" json:"is_default"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// DayWindows is one day's availability windows from the default schedule,
// carried together with the schedule timezone (informational only).
type DayWindows struct {
	Timezone string
	Windows  []SlotWindow
}

// SlotWindow is a wall-clock availability window before it is anchored to a
// concrete date.
type SlotWindow struct {
	StartTime interval.TimeOfDay `db:"start_time"`
	EndTime   interval.TimeOfDay `db:"end_time"`
}

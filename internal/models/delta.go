package models

import (
	"fmt"

	"github.com/noah-isme/calbook-api/internal/interval"
)

// SlotInput is an incoming slot row as submitted by the schedule editor.
// Incoming rows carry no identity.
type SlotInput struct {
	DayOfWeek interval.DayOfWeek `json:"day_of_week"`
	StartTime interval.TimeOfDay `json:"start_time"`
	EndTime   interval.TimeOfDay `json:"end_time"`
}

// Key returns the exact-match lookup key for reconciliation.
func (s SlotInput) Key() string {
	return fmt.Sprintf("%d-%s-%s", s.DayOfWeek, s.StartTime, s.EndTime)
}

// SlotUpdate repoints an existing slot id at new times.
type SlotUpdate struct {
	ID        int64              `json:"id"`
	StartTime interval.TimeOfDay `json:"start_time"`
	EndTime   interval.TimeOfDay `json:"end_time"`
}

// SlotDelta is the minimal edit turning a stored slot set into the incoming
// one while preserving slot identity where possible. Kept ids need no write
// at all.
type SlotDelta struct {
	Keep   []int64      `json:"keep"`
	Update []SlotUpdate `json:"update"`
	Insert []SlotInput  `json:"insert"`
	Delete []int64      `json:"delete"`
}

// ScheduleUpdate carries optional schedule metadata changes; nil fields are
// left untouched.
type ScheduleUpdate struct {
	Name      *string `json:"name,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

package models

import "time"

// EventType is a bookable meeting definition. Duration drives slot
// generation; slug is the public lookup key.
type EventType struct {
	ID                     int64     `db:"id" json:"id"`
	Title                  string    `db:"title" json:"title"`
	Slug                   string    `db:"slug" json:"slug"`
	Duration               int       `db:"duration" json:"duration"`
	Description            *string   `db:"description" json:"description,omitempty"`
	IsVisible              bool      `db:"is_visible" json:"is_visible"`
	Location               string    `db:"location" json:"location"`
	AllowMultipleDurations bool      `db:"allow_multiple_durations" json:"allow_multiple_durations"`
	UserSlug               *string   `db:"user_slug" json:"user_slug,omitempty"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

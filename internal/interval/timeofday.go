package interval

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with second precision, carrying no date
// and no timezone. Canonical wire and storage form is "HH:MM:SS".
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay validates the component ranges.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute, Second: second}
	if !t.valid() {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %02d:%02d:%02d", hour, minute, second)
	}
	return t, nil
}

// ParseTimeOfDay accepts "HH:MM:SS" and the shorthand "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	switch len(s) {
	case 5:
		if _, err := fmt.Sscanf(s, "%2d:%2d", &t.Hour, &t.Minute); err != nil {
			return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%2d:%2d:%2d", &t.Hour, &t.Minute, &t.Second); err != nil {
			return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
		}
	default:
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: want HH:MM:SS", s)
	}
	if !t.valid() {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %q", s)
	}
	return t, nil
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// String returns the canonical "HH:MM:SS" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t precedes other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

// Compare returns -1, 0 or 1 ordering t against other.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	a, b := t.seconds(), other.seconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// OnDate anchors the wall-clock time to a calendar date in loc.
func (t TimeOfDay) OnDate(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = date.Location()
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, t.Second, 0, loc)
}

// MarshalJSON encodes the canonical string form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes "HH:MM:SS" (or "HH:MM") strings.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("time of day must be a JSON string, got %s", data)
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer for TIME columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as string or
// []byte depending on the driver path.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// Package interval holds the shared time primitives for availability
// resolution: half-open instant intervals, wall-clock times and weekdays.
// Everything here is pure; persistence and transport live elsewhere.
package interval

import (
	"fmt"
	"time"

	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

// DayOfWeek follows the Sunday=0 convention used across the schedule tables.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// ValidDay reports whether d is within [0,6].
func ValidDay(d DayOfWeek) bool {
	return d >= Sunday && d <= Saturday
}

// Interval is a half-open time range [Start, End): the start instant is
// included, the end instant is not. Adjacent intervals therefore never
// overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New constructs an Interval, rejecting empty or inverted ranges.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, appErrors.Clone(appErrors.ErrInvalidInterval,
			fmt.Sprintf("interval start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether a and b share any instant. Intervals that merely
// touch at an endpoint do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether inner lies entirely within a.
func (a Interval) Contains(inner Interval) bool {
	return !a.Start.After(inner.Start) && !inner.End.After(a.End)
}

// Duration returns the interval length.
func (a Interval) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

package service

import (
	"sort"
	"time"

	"github.com/noah-isme/calbook-api/internal/interval"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

// GenerateSlots expands availability windows into the ordered list of
// bookable fixed-duration candidates.
//
// Each window is walked independently with a cursor starting at the window
// start. A candidate [cursor, cursor+duration) is emitted when it fits the
// window, overlaps no booked interval and starts strictly after now. The
// cursor always advances by one full duration: a booked candidate consumes
// its tick, the generator never probes sub-duration offsets and never clips
// a trailing partial slot.
//
// Windows may arrive unordered or overlapping; output is sorted by start
// instant and overlapping windows may legitimately yield overlapping slots.
func GenerateSlots(windows []interval.Interval, duration time.Duration, booked []interval.Interval, now time.Time) ([]interval.Interval, error) {
	if duration <= 0 {
		return nil, appErrors.ErrInvalidDuration
	}

	slots := make([]interval.Interval, 0)
	for _, window := range windows {
		for cursor := window.Start; ; cursor = cursor.Add(duration) {
			end := cursor.Add(duration)
			if end.After(window.End) {
				break
			}
			candidate := interval.Interval{Start: cursor, End: end}

			conflict := false
			for _, b := range booked {
				if candidate.Overlaps(b) {
					conflict = true
					break
				}
			}
			if conflict || !candidate.Start.After(now) {
				continue
			}
			slots = append(slots, candidate)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
)

// ReconcileSlots matches incoming slots against existing rows in two passes
// and returns the minimal delta to apply.
//
// Pass one consumes exact (day, start, end) matches; those rows are kept
// untouched. Pass two groups the leftovers on both sides by day, sorts each
// group by start time and pairs them by position: a pair becomes an update
// of the existing id, an unpaired incoming row an insert, an unpaired
// existing row a delete.
//
// Positional pairing is a heuristic tie-break, not a semantic match. When a
// user reorders two slots on the same day so that sort positions realign,
// identities can swap. That is accepted behavior; closest-start-time
// matching remains an open product question.
func ReconcileSlots(existing []models.AvailabilitySlot, incoming []models.SlotInput) models.SlotDelta {
	delta := models.SlotDelta{
		Keep:   make([]int64, 0, len(existing)),
		Update: make([]models.SlotUpdate, 0),
		Insert: make([]models.SlotInput, 0),
		Delete: make([]int64, 0),
	}

	existingByKey := make(map[string][]models.AvailabilitySlot, len(existing))
	for _, slot := range existing {
		key := fmt.Sprintf("%d-%s-%s", slot.DayOfWeek, slot.StartTime, slot.EndTime)
		existingByKey[key] = append(existingByKey[key], slot)
	}

	used := make(map[int64]bool, len(existing))
	var unresolved []models.SlotInput

	for _, in := range incoming {
		matched := false
		for _, candidate := range existingByKey[in.Key()] {
			if !used[candidate.ID] {
				used[candidate.ID] = true
				delta.Keep = append(delta.Keep, candidate.ID)
				matched = true
				break
			}
		}
		if !matched {
			unresolved = append(unresolved, in)
		}
	}

	incomingByDay := make(map[interval.DayOfWeek][]models.SlotInput)
	for _, in := range unresolved {
		incomingByDay[in.DayOfWeek] = append(incomingByDay[in.DayOfWeek], in)
	}

	leftoverByDay := make(map[interval.DayOfWeek][]models.AvailabilitySlot)
	for _, slot := range existing {
		if !used[slot.ID] {
			leftoverByDay[slot.DayOfWeek] = append(leftoverByDay[slot.DayOfWeek], slot)
		}
	}

	days := make([]interval.DayOfWeek, 0, len(incomingByDay))
	for day := range incomingByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	for _, day := range days {
		ins := incomingByDay[day]
		outs := leftoverByDay[day]

		sort.Slice(ins, func(i, j int) bool { return ins[i].StartTime.Before(ins[j].StartTime) })
		sort.Slice(outs, func(i, j int) bool { return outs[i].StartTime.Before(outs[j].StartTime) })

		for i, in := range ins {
			if i < len(outs) {
				used[outs[i].ID] = true
				delta.Update = append(delta.Update, models.SlotUpdate{
					ID:        outs[i].ID,
					StartTime: in.StartTime,
					EndTime:   in.EndTime,
				})
			} else {
				delta.Insert = append(delta.Insert, in)
			}
		}
	}

	for _, slot := range existing {
		if !used[slot.ID] {
			delta.Delete = append(delta.Delete, slot.ID)
		}
	}

	return delta
}

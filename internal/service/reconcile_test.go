package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
)

func tod(t *testing.T, s string) interval.TimeOfDay {
	t.Helper()
	out, err := interval.ParseTimeOfDay(s)
	require.NoError(t, err)
	return out
}

func existingSlot(t *testing.T, id int64, day interval.DayOfWeek, start, end string) models.AvailabilitySlot {
	t.Helper()
	return models.AvailabilitySlot{
		ID:        id,
		DayOfWeek: day,
		StartTime: tod(t, start),
		EndTime:   tod(t, end),
	}
}

func incomingSlot(t *testing.T, day interval.DayOfWeek, start, end string) models.SlotInput {
	t.Helper()
	return models.SlotInput{
		DayOfWeek: day,
		StartTime: tod(t, start),
		EndTime:   tod(t, end),
	}
}

func TestReconcileSlotsIdenticalSetKeepsEverything(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 7, 1, "09:00:00", "17:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "17:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Equal(t, []int64{7}, delta.Keep)
	assert.Empty(t, delta.Update)
	assert.Empty(t, delta.Insert)
	assert.Empty(t, delta.Delete)
}

func TestReconcileSlotsTimeChangeBecomesUpdate(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 7, 1, "09:00:00", "17:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Empty(t, delta.Keep)
	require.Len(t, delta.Update, 1)
	assert.Equal(t, int64(7), delta.Update[0].ID)
	assert.Equal(t, "12:00:00", delta.Update[0].EndTime.String())
	assert.Empty(t, delta.Insert)
	assert.Empty(t, delta.Delete)
}

func TestReconcileSlotsExtraIncomingBecomesInsert(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 7, 1, "09:00:00", "12:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
		incomingSlot(t, 1, "14:00:00", "17:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Equal(t, []int64{7}, delta.Keep)
	assert.Empty(t, delta.Update)
	require.Len(t, delta.Insert, 1)
	assert.Equal(t, "14:00:00", delta.Insert[0].StartTime.String())
	assert.Empty(t, delta.Delete)
}

func TestReconcileSlotsMissingIncomingBecomesDelete(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 7, 1, "09:00:00", "12:00:00"),
		existingSlot(t, 8, 1, "14:00:00", "17:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Equal(t, []int64{7}, delta.Keep)
	assert.Empty(t, delta.Update)
	assert.Empty(t, delta.Insert)
	assert.Equal(t, []int64{8}, delta.Delete)
}

func TestReconcileSlotsEmptyIncomingDeletesAll(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 7, 1, "09:00:00", "12:00:00"),
		existingSlot(t, 8, 3, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(existing, nil)
	assert.Empty(t, delta.Keep)
	assert.ElementsMatch(t, []int64{7, 8}, delta.Delete)
}

func TestReconcileSlotsEmptyExistingInsertsAll(t *testing.T) {
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
		incomingSlot(t, 2, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(nil, incoming)
	assert.Empty(t, delta.Keep)
	assert.Empty(t, delta.Delete)
	assert.Len(t, delta.Insert, 2)
}

func TestReconcileSlotsPositionalPairingWithinDay(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 10, 1, "08:00:00", "10:00:00"),
		existingSlot(t, 11, 1, "13:00:00", "15:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "11:00:00"),
		incomingSlot(t, 1, "14:00:00", "16:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	require.Len(t, delta.Update, 2)
	assert.Equal(t, int64(10), delta.Update[0].ID)
	assert.Equal(t, "09:00:00", delta.Update[0].StartTime.String())
	assert.Equal(t, int64(11), delta.Update[1].ID)
	assert.Equal(t, "14:00:00", delta.Update[1].StartTime.String())
}

func TestReconcileSlotsExactMatchWinsOverPosition(t *testing.T) {
	// The unchanged afternoon row must be kept even though the morning row
	// sorts ahead of it.
	existing := []models.AvailabilitySlot{
		existingSlot(t, 10, 1, "08:00:00", "10:00:00"),
		existingSlot(t, 11, 1, "14:00:00", "16:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "11:00:00"),
		incomingSlot(t, 1, "14:00:00", "16:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Equal(t, []int64{11}, delta.Keep)
	require.Len(t, delta.Update, 1)
	assert.Equal(t, int64(10), delta.Update[0].ID)
	assert.Equal(t, "09:00:00", delta.Update[0].StartTime.String())
}

func TestReconcileSlotsDuplicateRowsConsumeDistinctIDs(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 10, 1, "09:00:00", "12:00:00"),
		existingSlot(t, 11, 1, "09:00:00", "12:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
		incomingSlot(t, 1, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.ElementsMatch(t, []int64{10, 11}, delta.Keep)
	assert.Empty(t, delta.Update)
	assert.Empty(t, delta.Insert)
	assert.Empty(t, delta.Delete)
}

func TestReconcileSlotsDayChangeIsInsertPlusDelete(t *testing.T) {
	existing := []models.AvailabilitySlot{
		existingSlot(t, 10, 1, "09:00:00", "12:00:00"),
	}
	incoming := []models.SlotInput{
		incomingSlot(t, 2, "09:00:00", "12:00:00"),
	}

	delta := ReconcileSlots(existing, incoming)
	assert.Empty(t, delta.Keep)
	assert.Empty(t, delta.Update)
	require.Len(t, delta.Insert, 1)
	assert.Equal(t, interval.DayOfWeek(2), delta.Insert[0].DayOfWeek)
	assert.Equal(t, []int64{10}, delta.Delete)
}

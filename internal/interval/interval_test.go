package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, err := New(start, end)
	require.NoError(t, err)
	return iv
}

func at(minute int) time.Time {
	return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
}

func TestNewRejectsInvertedAndEmpty(t *testing.T) {
	_, err := New(at(10), at(10))
	assert.Error(t, err)

	_, err = New(at(20), at(10))
	assert.Error(t, err)
}

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		a, b Interval
	}{
		{mustInterval(t, at(0), at(30)), mustInterval(t, at(15), at(45))},
		{mustInterval(t, at(0), at(30)), mustInterval(t, at(30), at(60))},
		{mustInterval(t, at(0), at(60)), mustInterval(t, at(10), at(20))},
		{mustInterval(t, at(0), at(10)), mustInterval(t, at(40), at(50))},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a))
	}
}

func TestOverlapsSelf(t *testing.T) {
	iv := mustInterval(t, at(0), at(30))
	assert.True(t, iv.Overlaps(iv))
}

func TestTouchingIntervalsDoNotOverlap(t *testing.T) {
	a := mustInterval(t, at(0), at(10))
	b := mustInterval(t, at(10), at(20))
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestPartialOverlap(t *testing.T) {
	a := mustInterval(t, at(0), at(30))
	b := mustInterval(t, at(15), at(45))
	assert.True(t, a.Overlaps(b))
}

func TestContains(t *testing.T) {
	outer := mustInterval(t, at(0), at(60))
	inner := mustInterval(t, at(10), at(20))
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))

	// Shared endpoints still count as contained.
	assert.True(t, outer.Contains(outer))
}

func TestDuration(t *testing.T) {
	iv := mustInterval(t, at(0), at(45))
	assert.Equal(t, 45*time.Minute, iv.Duration())
}

package clock_test

import (
	"testing"
	"time"

	"github.com/pathakanu/phtReminder/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInShiftsUTCByEightHours(t *testing.T) {
	utc := time.Date(2025, time.March, 1, 0, 30, 0, 0, time.UTC)
	got := clock.In(utc)

	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.True(t, got.Equal(utc), "instant must not change, only the zone")
}

func TestInIgnoresSourceLocation(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)
	src := time.Date(2025, time.March, 1, 19, 30, 0, 0, ny) // 00:30 UTC next day

	got := clock.In(src)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 2, got.Day())
}

func TestFuncClock(t *testing.T) {
	fixed := time.Date(2025, time.January, 1, 0, 30, 1, 0, time.UTC)
	c := clock.Func(func() time.Time { return fixed })

	now := c.Now()
	_, offset := now.Zone()
	require.Equal(t, 8*60*60, offset)
	assert.Equal(t, 30, now.Minute())
	assert.Equal(t, 1, now.Second())
}

func TestLabel(t *testing.T) {
	cases := map[string]time.Time{
		"8:30 AM":  clock.Date(2025, time.May, 2, 8, 30, 0),
		"12:00 PM": clock.Date(2025, time.May, 2, 12, 0, 0),
		"11:45 PM": clock.Date(2025, time.May, 2, 23, 45, 59),
		"12:10 AM": time.Date(2025, time.May, 1, 16, 10, 0, 0, time.UTC),
	}
	for want, in := range cases {
		assert.Equal(t, want, clock.Label(in))
	}
}

package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodIsValid(t *testing.T) {
	now := time.Now()

	valid := Period{Start: now.Add(-time.Hour), End: now}
	assert.True(t, valid.IsValid())

	inverted := Period{Start: now, End: now.Add(-time.Hour)}
	assert.False(t, inverted.IsValid())

	empty := Period{Start: now, End: now}
	assert.False(t, empty.IsValid())
}

func TestPeriodContains(t *testing.T) {
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	period := Period{Start: start, End: end}

	assert.True(t, period.Contains(start), "window is closed on both ends")
	assert.True(t, period.Contains(end))
	assert.True(t, period.Contains(start.Add(12*time.Hour)))
	assert.False(t, period.Contains(start.Add(-time.Second)))
	assert.False(t, period.Contains(end.Add(time.Second)))
}

func TestNewPeriodFromISO8601Duration(t *testing.T) {
	period, err := NewPeriodFromISO8601Duration("P7D")
	assert.NoError(t, err)

	assert.True(t, period.IsValid())
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), period.End.Sub(period.Start).Seconds(), 1)
	assert.WithinDuration(t, time.Now(), period.End, time.Minute)
}

func TestNewPeriodFromISO8601Duration_Invalid(t *testing.T) {
	_, err := NewPeriodFromISO8601Duration("not-a-duration")
	assert.Error(t, err)
}

package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return func() time.Time { return now }
}

func TestBuildVector(t *testing.T) {
	b := NewBuilder(WithClock(fixedClock(t, "2026-01-15")))

	vec, err := b.Build("2026-02-15", 1000)
	require.NoError(t, err)
	require.Len(t, vec, VectorSize)

	// 2026-02-15: month 2, day-of-year 46, ISO week 7, 31 days out.
	assert.InDelta(t, 2026.0/2025.0, float64(vec[0]), 1e-6)
	assert.InDelta(t, 2.0/12.0, float64(vec[1]), 1e-6)
	assert.InDelta(t, 46.0/365.0, float64(vec[2]), 1e-6)
	assert.InDelta(t, 7.0/52.0, float64(vec[3]), 1e-6)
	assert.InDelta(t, 31.0/365.0, float64(vec[4]), 1e-6)
	assert.InDelta(t, 1.0, float64(vec[5]), 1e-6)
	assert.InDelta(t, math.Sin(2*math.Pi*2/12), float64(vec[6]), 1e-6)
	assert.InDelta(t, math.Cos(2*math.Pi*2/12), float64(vec[7]), 1e-6)
	assert.InDelta(t, math.Sin(2*math.Pi*46/365), float64(vec[8]), 1e-6)
	assert.InDelta(t, math.Cos(2*math.Pi*46/365), float64(vec[9]), 1e-6)
}

func TestBuildCyclicalIdentity(t *testing.T) {
	b := NewBuilder(WithClock(fixedClock(t, "2026-01-15")))

	vec, err := b.Build("2026-07-20", 500)
	require.NoError(t, err)

	monthNorm := float64(vec[6])*float64(vec[6]) + float64(vec[7])*float64(vec[7])
	dayNorm := float64(vec[8])*float64(vec[8]) + float64(vec[9])*float64(vec[9])
	assert.InDelta(t, 1.0, monthNorm, 1e-5)
	assert.InDelta(t, 1.0, dayNorm, 1e-5)
}

func TestBuildPastDateGivesNegativeDaysFromNow(t *testing.T) {
	b := NewBuilder(WithClock(fixedClock(t, "2026-01-15")))

	vec, err := b.Build("2026-01-05", 1000)
	require.NoError(t, err)
	assert.InDelta(t, -10.0/365.0, float64(vec[4]), 1e-6)
}

func TestBuildQuantityScaling(t *testing.T) {
	b := NewBuilder(WithClock(fixedClock(t, "2026-01-15")))

	vec, err := b.Build("2026-02-15", 250)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, float64(vec[5]), 1e-6)
}

func TestBuildInvalidDate(t *testing.T) {
	b := NewBuilder()

	for _, date := range []string{"", "15-02-2026", "2026-02-30", "not-a-date"} {
		t.Run(date, func(t *testing.T) {
			_, err := b.Build(date, 1000)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

package features

import (
	"errors"
	"math"
	"time"

	"MandiPredict/pkg/util"
)

// VectorSize is the fixed feature vector length the models were trained on.
const VectorSize = 10

// ErrInvalidDate is returned when the date string is not a calendar date.
var ErrInvalidDate = errors.New("features: invalid date")

// Option configures Builder.
type Option func(*Builder)

// WithClock overrides the notion of "now" for the days-from-now feature.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// Builder converts (date, quantity) into the fixed feature vector. The only
// hidden input is the clock: the days-from-now feature makes the transform
// time-dependent, so reproducibility requires a fixed clock.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a feature builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the 10-element feature vector for a target date and
// quantity in kg. Feature order and scale are part of the model contract:
//
//	year/2025, month/12, dayOfYear/365, isoWeek/52, daysFromNow/365,
//	quantity/1000, sin/cos(2π·month/12), sin/cos(2π·dayOfYear/365)
func (b *Builder) Build(dateStr string, quantity float64) ([]float32, error) {
	target, ok := util.ParseDate(dateStr)
	if !ok {
		return nil, ErrInvalidDate
	}

	month := float64(target.Month())
	dayOfYear := float64(target.YearDay())
	_, isoWeek := target.ISOWeek()
	daysFromNow := math.Floor(target.Sub(b.now()).Hours() / 24)

	features := []float64{
		float64(target.Year()) / 2025.0,
		month / 12.0,
		dayOfYear / 365.0,
		float64(isoWeek) / 52.0,
		daysFromNow / 365.0,
		quantity / 1000.0,
		math.Sin(2 * math.Pi * month / 12),
		math.Cos(2 * math.Pi * month / 12),
		math.Sin(2 * math.Pi * dayOfYear / 365),
		math.Cos(2 * math.Pi * dayOfYear / 365),
	}

	vec := make([]float32, VectorSize)
	for i, f := range features {
		vec[i] = float32(f)
	}
	return vec, nil
}

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		commodity string
		want      float64
	}{
		{name: "above grain ceiling", raw: 99999, commodity: "rice", want: 5000},
		{name: "below vegetable floor", raw: 1, commodity: "tomato", want: 1000},
		{name: "inside range untouched", raw: 3200.456, commodity: "wheat", want: 3200.46},
		{name: "unknown commodity default range", raw: 7000, commodity: "jackfruit", want: 7000},
		{name: "unknown commodity default ceiling", raw: 50000, commodity: "jackfruit", want: 12000},
		{name: "case insensitive", raw: 99999, commodity: "Rice", want: 5000},
		{name: "spice ceiling", raw: 20000, commodity: "chilli", want: 15000},
		{name: "oilseed floor", raw: 100, commodity: "groundnut", want: 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.raw, tt.commodity))
		})
	}
}

func TestBoundsFor(t *testing.T) {
	assert.Equal(t, Range{Min: 1500, Max: 5000}, BoundsFor("maize"))
	assert.Equal(t, Range{Min: 3000, Max: 10000}, BoundsFor("cotton"))
	assert.Equal(t, Range{Min: 500, Max: 12000}, BoundsFor("dragonfruit"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.346))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, -2.5, Round2(-2.499))
}

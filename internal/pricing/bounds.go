package pricing

import (
	"math"
	"strings"
)

// Range is an inclusive [Min, Max] plausible price band in INR per quintal.
type Range struct {
	Min float64
	Max float64
}

var (
	grains     = Range{Min: 1500, Max: 5000}
	vegetables = Range{Min: 1000, Max: 8000}
	cashCrops  = Range{Min: 3000, Max: 10000}
	spices     = Range{Min: 4000, Max: 15000}
	oilseeds   = Range{Min: 4000, Max: 10000}

	// defaultRange bounds commodities with no class table.
	defaultRange = Range{Min: 500, Max: 12000}
)

var boundsByCommodity = map[string]Range{
	"rice":      grains,
	"wheat":     grains,
	"maize":     grains,
	"tomato":    vegetables,
	"potato":    vegetables,
	"onion":     vegetables,
	"cotton":    cashCrops,
	"turmeric":  spices,
	"chilli":    spices,
	"groundnut": oilseeds,
}

// BoundsFor returns the price range for a commodity (case-insensitive).
func BoundsFor(commodity string) Range {
	if r, ok := boundsByCommodity[strings.ToLower(commodity)]; ok {
		return r
	}
	return defaultRange
}

// Clamp bounds a raw model prediction into the commodity's plausible range
// and rounds to two decimals.
func Clamp(raw float64, commodity string) float64 {
	r := BoundsFor(commodity)
	return Round2(math.Max(r.Min, math.Min(r.Max, raw)))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package registry

import (
	"errors"
	"strings"
)

var (
	// ErrNoModels is returned when the index is empty.
	ErrNoModels = errors.New("registry: no models available")
	// ErrNoMatch is returned when every tier is exhausted.
	ErrNoMatch = errors.New("registry: no suitable model found")
)

// Resolve selects one entry for the requested commodity and optional market
// under a tiered policy, first hit wins within each tier:
//
//  1. exact: commodity equals and market (with any " apmc" suffix stripped)
//     is contained in the entry's market — only when a market was supplied
//  2. commodity-only: commodity equals, market ignored
//  3. partial: symmetric substring containment between commodities
//
// Entries previously marked load-failed stay eligible.
func (r *Registry) Resolve(commodity, market string) (*ModelEntry, error) {
	if len(r.entries) == 0 {
		return nil, ErrNoModels
	}

	wantCommodity := strings.ToLower(commodity)
	wantMarket := strings.ToLower(market)

	if wantMarket != "" {
		needle := strings.TrimSpace(strings.ReplaceAll(wantMarket, " apmc", ""))
		for _, e := range r.entries {
			if e.Commodity == wantCommodity && strings.Contains(e.Market, needle) {
				return e, nil
			}
		}
	}

	for _, e := range r.entries {
		if e.Commodity == wantCommodity {
			return e, nil
		}
	}

	for _, e := range r.entries {
		if strings.Contains(e.Commodity, wantCommodity) || strings.Contains(wantCommodity, e.Commodity) {
			return e, nil
		}
	}

	return nil, ErrNoMatch
}

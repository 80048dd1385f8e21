package registry

import (
	"errors"
	"strings"
)

// ErrUnparsableName is returned when an artifact filename does not follow the
// <commodity>_<market...>[_model]<ext> naming convention.
var ErrUnparsableName = errors.New("registry: unparsable artifact name")

// ArtifactName carries the (commodity, market) key pair parsed from an
// artifact filename. Commodity and Market are lower-cased matching keys;
// the Original* fields keep the case as written for display.
type ArtifactName struct {
	Commodity         string
	Market            string
	OriginalCommodity string
	OriginalMarket    string
}

// ParseArtifactName parses an artifact filename into its commodity/market
// pair. The extension and any "_model" token are stripped; the first
// underscore-separated segment is the commodity, the remaining segments
// joined by underscore form the market (markets may contain underscores,
// commodities may not).
func ParseArtifactName(filename, ext string) (ArtifactName, error) {
	clean := strings.TrimSuffix(filename, ext)
	clean = strings.ReplaceAll(clean, "_model", "")

	parts := strings.Split(clean, "_")
	if len(parts) < 2 || parts[0] == "" {
		return ArtifactName{}, ErrUnparsableName
	}

	commodity := parts[0]
	market := strings.Join(parts[1:], "_")
	if market == "" {
		return ArtifactName{}, ErrUnparsableName
	}

	return ArtifactName{
		Commodity:         strings.ToLower(commodity),
		Market:            strings.ToLower(market),
		OriginalCommodity: commodity,
		OriginalMarket:    market,
	}, nil
}

package planet

import (
	"fmt"
	"strings"
)

type PlanetType string

const (
	PlanetTypeBarren      PlanetType = "barren"
	PlanetTypeTerrestrial PlanetType = "terrestrial"
	PlanetTypeGasGiant    PlanetType = "gas_giant"
	PlanetTypeIce         PlanetType = "ice"
	PlanetTypeVolcanic    PlanetType = "volcanic"
)

// PlanetTypes lists every member of the closed set, in display order.
var PlanetTypes = []PlanetType{
	PlanetTypeBarren,
	PlanetTypeTerrestrial,
	PlanetTypeGasGiant,
	PlanetTypeIce,
	PlanetTypeVolcanic,
}

func (t PlanetType) IsValid() bool {
	switch t {
	case PlanetTypeBarren, PlanetTypeTerrestrial, PlanetTypeGasGiant, PlanetTypeIce, PlanetTypeVolcanic:
		return true
	default:
		return false
	}
}

func (t PlanetType) String() string {
	return string(t)
}

// ParsePlanetType accepts the canonical names case-insensitively, with
// "gas giant" and "gas-giant" as spellings of gas_giant.
func ParsePlanetType(s string) (PlanetType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	t := PlanetType(normalized)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlanetType, s)
	}
	return t, nil
}

// ListFilter narrows repository listings. Zero values mean "no filter".
type ListFilter struct {
	Type   PlanetType
	Limit  int
	Offset int
}

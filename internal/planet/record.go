package planet

import (
	"fmt"
	"time"
)

// record is the flat, serializable form of a Planet used by the cache.
type record struct {
	ID                    int               `json:"id"`
	Name                  string            `json:"name"`
	NumberOfMoons         int               `json:"number_of_moons"`
	Mass                  float64           `json:"mass"`
	Radius                float64           `json:"radius"`
	Gravity               float64           `json:"gravity"`
	LastAlbedoMeasurement time.Time         `json:"last_albedo_measurement"`
	HasRings              bool              `json:"has_rings"`
	Type                  PlanetType        `json:"type"`
	Atmosphere            *atmosphereRecord `json:"atmosphere,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

type atmosphereRecord struct {
	Composition     string    `json:"composition"`
	LastObservation time.Time `json:"last_observation"`
	AirQuality      int       `json:"air_quality"`
	Pressure        float64   `json:"pressure"`
	Density         float64   `json:"density"`
	HasClouds       bool      `json:"has_clouds"`
}

func recordOf(p *Planet) record {
	r := record{
		ID:                    p.id,
		Name:                  p.name,
		NumberOfMoons:         p.numberOfMoons,
		Mass:                  p.mass,
		Radius:                p.radius,
		Gravity:               p.gravity,
		LastAlbedoMeasurement: p.lastAlbedoMeasurement,
		HasRings:              p.hasRings,
		Type:                  p.planetType,
		CreatedAt:             p.createdAt,
		UpdatedAt:             p.updatedAt,
	}
	if a := p.atmosphere; a != nil {
		r.Atmosphere = &atmosphereRecord{
			Composition:     a.composition,
			LastObservation: a.lastObservation,
			AirQuality:      a.airQuality,
			Pressure:        a.pressure,
			Density:         a.density,
			HasClouds:       a.hasClouds,
		}
	}
	return r
}

// toPlanet rebuilds the entity through its setters. Unlike the best-effort
// constructor, a stored atmosphere that no longer validates is an error.
func (r record) toPlanet() (*Planet, error) {
	p, err := NewPlanet(r.Name, r.NumberOfMoons, r.Mass, r.Radius, r.Gravity, r.LastAlbedoMeasurement, r.HasRings, r.Type)
	if err != nil {
		return nil, fmt.Errorf("planet %d: %w", r.ID, err)
	}

	if a := r.Atmosphere; a != nil {
		if err := p.SetAtmosphere(a.Composition, a.LastObservation, a.AirQuality, a.Pressure, a.Density, a.HasClouds); err != nil {
			return nil, fmt.Errorf("atmosphere of planet %d: %w", r.ID, err)
		}
	}

	p.id = r.ID
	p.createdAt = r.CreatedAt
	p.updatedAt = r.UpdatedAt
	return p, nil
}

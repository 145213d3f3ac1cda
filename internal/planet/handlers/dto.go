package handlers

import (
	"fmt"
	"time"

	"planets-catalog/internal/planet"
	"planets-catalog/internal/shared/errors"
)

type AtmosphereRequest struct {
	Composition     string  `json:"composition"`
	LastObservation string  `json:"last_observation"`
	AirQuality      int     `json:"air_quality"`
	Pressure        float64 `json:"pressure"`
	Density         float64 `json:"density"`
	HasClouds       bool    `json:"has_clouds"`
}

type CreatePlanetRequest struct {
	Name                  string             `json:"name"`
	NumberOfMoons         int                `json:"number_of_moons"`
	Mass                  float64            `json:"mass"`
	Radius                float64            `json:"radius"`
	Gravity               float64            `json:"gravity"`
	LastAlbedoMeasurement string             `json:"last_albedo_measurement"`
	HasRings              bool               `json:"has_rings"`
	Type                  string             `json:"type"`
	Atmosphere            *AtmosphereRequest `json:"atmosphere,omitempty"`
}

type UpdatePlanetRequest struct {
	Name                  *string  `json:"name"`
	NumberOfMoons         *int     `json:"number_of_moons"`
	Mass                  *float64 `json:"mass"`
	Radius                *float64 `json:"radius"`
	Gravity               *float64 `json:"gravity"`
	LastAlbedoMeasurement *string  `json:"last_albedo_measurement"`
	HasRings              *bool    `json:"has_rings"`
	Type                  *string  `json:"type"`
}

type AtmosphereResponse struct {
	Composition     string  `json:"composition"`
	LastObservation string  `json:"last_observation"`
	AirQuality      int     `json:"air_quality"`
	Pressure        float64 `json:"pressure"`
	Density         float64 `json:"density"`
	HasClouds       bool    `json:"has_clouds"`
}

type PlanetResponse struct {
	ID                    int                 `json:"id"`
	Name                  string              `json:"name"`
	NumberOfMoons         int                 `json:"number_of_moons"`
	Mass                  float64             `json:"mass"`
	Radius                float64             `json:"radius"`
	Gravity               float64             `json:"gravity"`
	LastAlbedoMeasurement string              `json:"last_albedo_measurement"`
	HasRings              bool                `json:"has_rings"`
	Type                  planet.PlanetType   `json:"type"`
	Atmosphere            *AtmosphereResponse `json:"atmosphere"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

type PlanetListResponse struct {
	Planets []PlanetResponse `json:"planets"`
	Count   int              `json:"count"`
}

// parseDate treats an empty string as the absent date so the entity
// reports its own field error.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.WrapValidation(fmt.Sprintf("%s must be a YYYY-MM-DD date", field), err)
	}
	return t, nil
}

// parseType leaves unknown names to the entity's type check.
func parseType(value string) planet.PlanetType {
	if t, err := planet.ParsePlanetType(value); err == nil {
		return t
	}
	return planet.PlanetType(value)
}

func (r AtmosphereRequest) toAttributes() (planet.AtmosphereAttributes, error) {
	observed, err := parseDate("last_observation", r.LastObservation)
	if err != nil {
		return planet.AtmosphereAttributes{}, err
	}

	return planet.AtmosphereAttributes{
		Composition:     r.Composition,
		LastObservation: observed,
		AirQuality:      r.AirQuality,
		Pressure:        r.Pressure,
		Density:         r.Density,
		HasClouds:       r.HasClouds,
	}, nil
}

func (r CreatePlanetRequest) toAttributes() (planet.Attributes, error) {
	albedo, err := parseDate("last_albedo_measurement", r.LastAlbedoMeasurement)
	if err != nil {
		return planet.Attributes{}, err
	}

	attrs := planet.Attributes{
		Name:                  r.Name,
		NumberOfMoons:         r.NumberOfMoons,
		Mass:                  r.Mass,
		Radius:                r.Radius,
		Gravity:               r.Gravity,
		LastAlbedoMeasurement: albedo,
		HasRings:              r.HasRings,
		Type:                  parseType(r.Type),
	}

	if r.Atmosphere != nil {
		// An unreadable observation date leaves the zero date, which the
		// best-effort constructor rejects like any other invalid atmosphere.
		atm, _ := r.Atmosphere.toAttributes()
		attrs.Atmosphere = &atm
	}

	return attrs, nil
}

func (r UpdatePlanetRequest) toPatch() (planet.Patch, error) {
	patch := planet.Patch{
		Name:          r.Name,
		NumberOfMoons: r.NumberOfMoons,
		Mass:          r.Mass,
		Radius:        r.Radius,
		Gravity:       r.Gravity,
		HasRings:      r.HasRings,
	}

	if r.LastAlbedoMeasurement != nil {
		albedo, err := parseDate("last_albedo_measurement", *r.LastAlbedoMeasurement)
		if err != nil {
			return planet.Patch{}, err
		}
		patch.LastAlbedoMeasurement = &albedo
	}

	if r.Type != nil {
		t := parseType(*r.Type)
		patch.Type = &t
	}

	return patch, nil
}

func toResponse(p *planet.Planet) PlanetResponse {
	resp := PlanetResponse{
		ID:                    p.ID(),
		Name:                  p.Name(),
		NumberOfMoons:         p.NumberOfMoons(),
		Mass:                  p.Mass(),
		Radius:                p.Radius(),
		Gravity:               p.Gravity(),
		LastAlbedoMeasurement: p.LastAlbedoMeasurement().Format(time.DateOnly),
		HasRings:              p.HasRings(),
		Type:                  p.Type(),
		CreatedAt:             p.CreatedAt(),
		UpdatedAt:             p.UpdatedAt(),
	}

	if a := p.Atmosphere(); a != nil {
		resp.Atmosphere = &AtmosphereResponse{
			Composition:     a.Composition(),
			LastObservation: a.LastObservation().Format(time.DateOnly),
			AirQuality:      a.AirQuality(),
			Pressure:        a.Pressure(),
			Density:         a.Density(),
			HasClouds:       a.HasClouds(),
		}
	}

	return resp
}

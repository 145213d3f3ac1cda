package planet

import "time"

// Attributes carries the input of a planet creation. A nil Atmosphere
// means the planet is created without one.
type Attributes struct {
	Name                  string
	NumberOfMoons         int
	Mass                  float64
	Radius                float64
	Gravity               float64
	LastAlbedoMeasurement time.Time
	HasRings              bool
	Type                  PlanetType
	Atmosphere            *AtmosphereAttributes
}

type AtmosphereAttributes struct {
	Composition     string
	LastObservation time.Time
	AirQuality      int
	Pressure        float64
	Density         float64
	HasClouds       bool
}

// Build constructs the planet with the best-effort atmosphere policy of
// NewPlanetWithAtmosphere. dropped reports an atmosphere that was supplied
// but rejected.
func (a Attributes) Build() (p *Planet, dropped bool, err error) {
	if a.Atmosphere == nil {
		p, err = NewPlanet(a.Name, a.NumberOfMoons, a.Mass, a.Radius, a.Gravity, a.LastAlbedoMeasurement, a.HasRings, a.Type)
		return p, false, err
	}

	atm := a.Atmosphere
	p, err = NewPlanetWithAtmosphere(a.Name, a.NumberOfMoons, a.Mass, a.Radius, a.Gravity, a.LastAlbedoMeasurement, a.HasRings, a.Type,
		atm.Composition, atm.LastObservation, atm.AirQuality, atm.Pressure, atm.Density, atm.HasClouds)
	if err != nil {
		return nil, false, err
	}
	return p, p.Atmosphere() == nil, nil
}

// ApplyTo assigns the atmosphere strictly, returning its validation error.
func (a AtmosphereAttributes) ApplyTo(p *Planet) error {
	return p.SetAtmosphere(a.Composition, a.LastObservation, a.AirQuality, a.Pressure, a.Density, a.HasClouds)
}

// Patch holds optional planet field updates; nil fields are left alone.
type Patch struct {
	Name                  *string
	NumberOfMoons         *int
	Mass                  *float64
	Radius                *float64
	Gravity               *float64
	LastAlbedoMeasurement *time.Time
	HasRings              *bool
	Type                  *PlanetType
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply runs each present field through its setter in declaration order and
// stops at the first failure. Fields set before the failure stay applied on
// planet, so callers apply patches to a copy they can discard.
func (p Patch) Apply(planet *Planet) error {
	if p.Name != nil {
		if err := planet.SetName(*p.Name); err != nil {
			return err
		}
	}
	if p.NumberOfMoons != nil {
		if err := planet.SetNumberOfMoons(*p.NumberOfMoons); err != nil {
			return err
		}
	}
	if p.Mass != nil {
		if err := planet.SetMass(*p.Mass); err != nil {
			return err
		}
	}
	if p.Radius != nil {
		if err := planet.SetRadius(*p.Radius); err != nil {
			return err
		}
	}
	if p.Gravity != nil {
		if err := planet.SetGravity(*p.Gravity); err != nil {
			return err
		}
	}
	if p.LastAlbedoMeasurement != nil {
		if err := planet.SetLastAlbedoMeasurement(*p.LastAlbedoMeasurement); err != nil {
			return err
		}
	}
	if p.HasRings != nil {
		planet.SetHasRings(*p.HasRings)
	}
	if p.Type != nil {
		if err := planet.SetType(*p.Type); err != nil {
			return err
		}
	}
	return nil
}

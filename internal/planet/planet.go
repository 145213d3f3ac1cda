package planet

import "time"

// Planet is the root entity of the catalog. It optionally owns one
// Atmosphere, which is either absent (nil) or fully valid.
type Planet struct {
	id        int
	createdAt time.Time
	updatedAt time.Time

	name                  string
	numberOfMoons         int
	mass                  float64
	radius                float64
	gravity               float64
	lastAlbedoMeasurement time.Time
	hasRings              bool
	planetType            PlanetType
	atmosphere            *Atmosphere
}

// NewPlanet builds a planet without an atmosphere.
func NewPlanet(name string, numberOfMoons int, mass, radius, gravity float64, lastAlbedoMeasurement time.Time, hasRings bool, planetType PlanetType) (*Planet, error) {
	p := &Planet{}
	if err := p.setFields(name, numberOfMoons, mass, radius, gravity, lastAlbedoMeasurement, hasRings, planetType); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPlanetWithAtmosphere fails only on planet fields. An invalid
// atmosphere is dropped and the planet is returned without one; use
// SetAtmosphere to have atmosphere errors reported.
func NewPlanetWithAtmosphere(name string, numberOfMoons int, mass, radius, gravity float64, lastAlbedoMeasurement time.Time, hasRings bool, planetType PlanetType,
	composition string, lastObservation time.Time, airQuality int, pressure, density float64, hasClouds bool) (*Planet, error) {
	p, err := NewPlanet(name, numberOfMoons, mass, radius, gravity, lastAlbedoMeasurement, hasRings, planetType)
	if err != nil {
		return nil, err
	}

	if err := p.SetAtmosphere(composition, lastObservation, airQuality, pressure, density, hasClouds); err != nil {
		p.atmosphere = nil
	}
	return p, nil
}

func (p *Planet) setFields(name string, numberOfMoons int, mass, radius, gravity float64, lastAlbedoMeasurement time.Time, hasRings bool, planetType PlanetType) error {
	if err := p.SetName(name); err != nil {
		return err
	}
	if err := p.SetNumberOfMoons(numberOfMoons); err != nil {
		return err
	}
	if err := p.SetMass(mass); err != nil {
		return err
	}
	if err := p.SetRadius(radius); err != nil {
		return err
	}
	if err := p.SetGravity(gravity); err != nil {
		return err
	}
	if err := p.SetLastAlbedoMeasurement(lastAlbedoMeasurement); err != nil {
		return err
	}
	p.SetHasRings(hasRings)
	return p.SetType(planetType)
}

// ID is zero until the planet has been stored.
func (p *Planet) ID() int {
	return p.id
}

func (p *Planet) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Planet) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Planet) Name() string {
	return p.name
}

func (p *Planet) SetName(name string) error {
	if isBlank(name) {
		return ErrInvalidName
	}
	p.name = name
	return nil
}

func (p *Planet) NumberOfMoons() int {
	return p.numberOfMoons
}

func (p *Planet) SetNumberOfMoons(numberOfMoons int) error {
	if numberOfMoons < 0 {
		return ErrInvalidNumberOfMoons
	}
	p.numberOfMoons = numberOfMoons
	return nil
}

func (p *Planet) Mass() float64 {
	return p.mass
}

func (p *Planet) SetMass(mass float64) error {
	if !atLeast(mass, MinMass) {
		return ErrInvalidMass
	}
	p.mass = mass
	return nil
}

func (p *Planet) Radius() float64 {
	return p.radius
}

func (p *Planet) SetRadius(radius float64) error {
	if !atLeast(radius, MinRadius) {
		return ErrInvalidRadius
	}
	p.radius = radius
	return nil
}

func (p *Planet) Gravity() float64 {
	return p.gravity
}

func (p *Planet) SetGravity(gravity float64) error {
	if !(gravity > 0) {
		return ErrInvalidGravity
	}
	p.gravity = gravity
	return nil
}

func (p *Planet) LastAlbedoMeasurement() time.Time {
	return p.lastAlbedoMeasurement
}

// SetLastAlbedoMeasurement accepts today.
func (p *Planet) SetLastAlbedoMeasurement(lastAlbedoMeasurement time.Time) error {
	if !isPastOrToday(lastAlbedoMeasurement) {
		return ErrInvalidLastAlbedoMeasurement
	}
	p.lastAlbedoMeasurement = lastAlbedoMeasurement
	return nil
}

func (p *Planet) HasRings() bool {
	return p.hasRings
}

func (p *Planet) SetHasRings(hasRings bool) {
	p.hasRings = hasRings
}

func (p *Planet) Type() PlanetType {
	return p.planetType
}

func (p *Planet) SetType(planetType PlanetType) error {
	if !planetType.IsValid() {
		return ErrInvalidPlanetType
	}
	p.planetType = planetType
	return nil
}

// Atmosphere returns nil when the planet has none.
func (p *Planet) Atmosphere() *Atmosphere {
	return p.atmosphere
}

// SetAtmosphere replaces the atmosphere with a newly built one. Validation
// errors are returned unchanged and the previous atmosphere is kept.
func (p *Planet) SetAtmosphere(composition string, lastObservation time.Time, airQuality int, pressure, density float64, hasClouds bool) error {
	atmosphere, err := NewAtmosphere(composition, lastObservation, airQuality, pressure, density, hasClouds)
	if err != nil {
		return err
	}
	p.atmosphere = atmosphere
	return nil
}

func (p *Planet) RemoveAtmosphere() {
	p.atmosphere = nil
}

func (p *Planet) HasAtmosphere() bool {
	return p.atmosphere != nil
}

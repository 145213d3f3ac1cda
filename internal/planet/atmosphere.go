package planet

import "time"

// Atmosphere describes the gas envelope of a planet. Its fields are only
// reachable through setters, so a constructed Atmosphere is always valid.
type Atmosphere struct {
	composition     string
	lastObservation time.Time
	airQuality      int
	pressure        float64
	density         float64
	hasClouds       bool
}

// NewAtmosphere validates every field in declaration order and returns the
// first failure.
func NewAtmosphere(composition string, lastObservation time.Time, airQuality int, pressure, density float64, hasClouds bool) (*Atmosphere, error) {
	a := &Atmosphere{}
	if err := a.SetComposition(composition); err != nil {
		return nil, err
	}
	if err := a.SetLastObservation(lastObservation); err != nil {
		return nil, err
	}
	a.SetAirQuality(airQuality)
	if err := a.SetPressure(pressure); err != nil {
		return nil, err
	}
	if err := a.SetDensity(density); err != nil {
		return nil, err
	}
	a.SetHasClouds(hasClouds)
	return a, nil
}

func (a *Atmosphere) Composition() string {
	return a.composition
}

// SetComposition accepts letters, digits, commas and spaces, e.g. "Nitrogen, Oxygen".
func (a *Atmosphere) SetComposition(composition string) error {
	if isBlank(composition) || !compositionPattern.MatchString(composition) {
		return ErrInvalidComposition
	}
	a.composition = composition
	return nil
}

func (a *Atmosphere) LastObservation() time.Time {
	return a.lastObservation
}

func (a *Atmosphere) SetLastObservation(lastObservation time.Time) error {
	if !isPastOrToday(lastObservation) {
		return ErrInvalidLastObservation
	}
	a.lastObservation = lastObservation
	return nil
}

func (a *Atmosphere) AirQuality() int {
	return a.airQuality
}

// SetAirQuality clamps into [MinAirQuality, MaxAirQuality] instead of failing.
func (a *Atmosphere) SetAirQuality(airQuality int) {
	a.airQuality = clamp(airQuality, MinAirQuality, MaxAirQuality)
}

func (a *Atmosphere) Pressure() float64 {
	return a.pressure
}

func (a *Atmosphere) SetPressure(pressure float64) error {
	if !atLeast(pressure, 0) {
		return ErrInvalidPressure
	}
	a.pressure = pressure
	return nil
}

func (a *Atmosphere) Density() float64 {
	return a.density
}

func (a *Atmosphere) SetDensity(density float64) error {
	if !atLeast(density, 0) {
		return ErrInvalidDensity
	}
	a.density = density
	return nil
}

func (a *Atmosphere) HasClouds() bool {
	return a.hasClouds
}

func (a *Atmosphere) SetHasClouds(hasClouds bool) {
	a.hasClouds = hasClouds
}

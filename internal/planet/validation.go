package planet

import (
	"math"
	"regexp"
	"strings"
	"time"

	apperrors "planets-catalog/internal/shared/errors"
)

// Error messages returned by the entity setters.
const (
	InvalidName                  = "[ERROR] Name cannot be null or empty"
	InvalidNumberOfMoons         = "[ERROR] Number of moons cannot be negative"
	InvalidMass                  = "[ERROR] Mass cannot be less than 10e23 kg"
	InvalidRadius                = "[ERROR] Radius cannot be less than 500 km"
	InvalidGravity               = "[ERROR] Gravity cannot be negative or zero"
	InvalidLastAlbedoMeasurement = "[ERROR] Last albedo measurement cannot be null or in the future"
	InvalidPlanetType            = "[ERROR] Invalid planet type"

	InvalidComposition     = "[ERROR] Composition cannot be null or empty"
	InvalidLastObservation = "[ERROR] Last observation cannot be null or in the future"
	InvalidPressure        = "[ERROR] Pressure cannot be negative"
	InvalidDensity         = "[ERROR] Density cannot be negative"
)

// Sentinels for errors.Is; all carry the validation error type.
var (
	ErrInvalidName                  = apperrors.Validation(InvalidName)
	ErrInvalidNumberOfMoons         = apperrors.Validation(InvalidNumberOfMoons)
	ErrInvalidMass                  = apperrors.Validation(InvalidMass)
	ErrInvalidRadius                = apperrors.Validation(InvalidRadius)
	ErrInvalidGravity               = apperrors.Validation(InvalidGravity)
	ErrInvalidLastAlbedoMeasurement = apperrors.Validation(InvalidLastAlbedoMeasurement)
	ErrInvalidPlanetType            = apperrors.Validation(InvalidPlanetType)

	ErrInvalidComposition     = apperrors.Validation(InvalidComposition)
	ErrInvalidLastObservation = apperrors.Validation(InvalidLastObservation)
	ErrInvalidPressure        = apperrors.Validation(InvalidPressure)
	ErrInvalidDensity         = apperrors.Validation(InvalidDensity)
)

const (
	// MinMass is the enforced threshold in kg. It is lower than the 10e23
	// quoted by InvalidMass; both are kept as published.
	MinMass = 5.97e22
	// MinRadius is in km.
	MinRadius = 500.0

	MinAirQuality = 0
	MaxAirQuality = 100
)

var compositionPattern = regexp.MustCompile(`^[a-zA-Z0-9, ]+$`)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// atLeast is false for NaN.
func atLeast(v, min float64) bool {
	return !math.IsNaN(v) && v >= min
}

// isPastOrToday compares calendar dates only: the value's own date against
// today's local date. The zero time counts as absent.
func isPastOrToday(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	y, m, d := date.Date()
	ty, tm, td := time.Now().Date()
	return !civil(y, m, d).After(civil(ty, tm, td))
}

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

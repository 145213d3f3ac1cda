// Package seed loads planets from a YAML catalog file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"planets-catalog/internal/planet"
	apperrors "planets-catalog/internal/shared/errors"

	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Planets []Entry `yaml:"planets"`
}

type Entry struct {
	Name                  string           `yaml:"name"`
	NumberOfMoons         int              `yaml:"number_of_moons"`
	Mass                  float64          `yaml:"mass"`
	Radius                float64          `yaml:"radius"`
	Gravity               float64          `yaml:"gravity"`
	LastAlbedoMeasurement string           `yaml:"last_albedo_measurement"`
	HasRings              bool             `yaml:"has_rings"`
	Type                  string           `yaml:"type"`
	Atmosphere            *AtmosphereEntry `yaml:"atmosphere"`
}

type AtmosphereEntry struct {
	Composition     string  `yaml:"composition"`
	LastObservation string  `yaml:"last_observation"`
	AirQuality      int     `yaml:"air_quality"`
	Pressure        float64 `yaml:"pressure"`
	Density         float64 `yaml:"density"`
	HasClouds       bool    `yaml:"has_clouds"`
}

// Creator is the part of planet.Service the seeder drives.
type Creator interface {
	Create(ctx context.Context, attrs planet.Attributes) (*planet.Planet, error)
}

type Skipped struct {
	Index int
	Name  string
	Err   error
}

type Result struct {
	Created            []string
	Skipped            []Skipped
	DroppedAtmospheres []string
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}
	return catalog, nil
}

// Load rejects unknown keys so typos surface instead of seeding zero values.
func Load(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, err
	}
	return &catalog, nil
}

// Attributes converts the entry. An unreadable albedo date or a non-finite
// number fails the entry; an unreadable observation date leaves the
// atmosphere to be dropped.
func (e Entry) Attributes() (planet.Attributes, error) {
	if err := e.checkFinite(); err != nil {
		return planet.Attributes{}, err
	}

	albedo, err := parseDate(e.LastAlbedoMeasurement)
	if err != nil {
		return planet.Attributes{}, apperrors.WrapValidation("last_albedo_measurement must be a YYYY-MM-DD date", err)
	}

	planetType := planet.PlanetType(e.Type)
	if t, err := planet.ParsePlanetType(e.Type); err == nil {
		planetType = t
	}

	attrs := planet.Attributes{
		Name:                  e.Name,
		NumberOfMoons:         e.NumberOfMoons,
		Mass:                  e.Mass,
		Radius:                e.Radius,
		Gravity:               e.Gravity,
		LastAlbedoMeasurement: albedo,
		HasRings:              e.HasRings,
		Type:                  planetType,
	}

	if a := e.Atmosphere; a != nil {
		observed, _ := parseDate(a.LastObservation)
		attrs.Atmosphere = &planet.AtmosphereAttributes{
			Composition:     a.Composition,
			LastObservation: observed,
			AirQuality:      a.AirQuality,
			Pressure:        a.Pressure,
			Density:         a.Density,
			HasClouds:       a.HasClouds,
		}
	}

	return attrs, nil
}

type namedValue struct {
	name  string
	value float64
}

// YAML accepts .inf and .nan, which JSON responses cannot carry.
func (e Entry) checkFinite() error {
	values := []namedValue{{"mass", e.Mass}, {"radius", e.Radius}, {"gravity", e.Gravity}}
	if a := e.Atmosphere; a != nil {
		values = append(values, namedValue{"atmosphere.pressure", a.Pressure}, namedValue{"atmosphere.density", a.Density})
	}

	for _, v := range values {
		if math.IsInf(v.value, 0) || math.IsNaN(v.value) {
			return apperrors.Validation(v.name + " must be a finite number")
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, value)
}

// Run creates every entry in order. Invalid or duplicate entries are skipped
// and reported; any other failure stops the run.
func Run(ctx context.Context, creator Creator, catalog *Catalog, logger *slog.Logger) (Result, error) {
	logger = logger.With("component", "seed", "entries", len(catalog.Planets))
	logger.Info("Seeding planet catalog")

	var result Result
	for i, entry := range catalog.Planets {
		entryLogger := logger.With("index", i, "name", entry.Name)

		attrs, err := entry.Attributes()
		if err == nil {
			var p *planet.Planet
			p, err = creator.Create(ctx, attrs)
			if err == nil {
				result.Created = append(result.Created, p.Name())
				if entry.Atmosphere != nil && !p.HasAtmosphere() {
					result.DroppedAtmospheres = append(result.DroppedAtmospheres, p.Name())
				}
				continue
			}
		}

		if !apperrors.IsValidation(err) && apperrors.GetType(err) != apperrors.ErrorTypeConflict {
			return result, fmt.Errorf("seed entry %d (%s): %w", i, entry.Name, err)
		}
		entryLogger.Warn("Skipping catalog entry", "error", err)
		result.Skipped = append(result.Skipped, Skipped{Index: i, Name: entry.Name, Err: err})
	}

	logger.Info("Seeding completed",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"dropped_atmospheres", len(result.DroppedAtmospheres),
	)
	return result, nil
}

package planet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"planets-catalog/internal/shared/database"
	apperrors "planets-catalog/internal/shared/errors"

	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	uniqueViolation          = "23505"
	stringDataRightTruncated = "22001"
)

const selectPlanets = `
	SELECT p.id, p.name, p.number_of_moons, p.mass, p.radius, p.gravity,
		p.last_albedo_measurement, p.has_rings, p.type, p.created_at, p.updated_at,
		a.composition, a.last_observation, a.air_quality, a.pressure, a.density, a.has_clouds
	FROM planets p
	LEFT JOIN atmospheres a ON a.planet_id = p.id`

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Create(ctx context.Context, p *Planet) error {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create_planet",
		"name", p.Name(),
		"type", p.Type(),
	)
	logger.Debug("Creating planet")

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			INSERT INTO planets (name, number_of_moons, mass, radius, gravity, last_albedo_measurement, has_rings, type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowContext(ctx, query,
			p.name, p.numberOfMoons, p.mass, p.radius, p.gravity, p.lastAlbedoMeasurement, p.hasRings, p.planetType,
		).Scan(&p.id, &p.createdAt, &p.updatedAt)
		if err != nil {
			return translateError(err, p.name)
		}

		return r.saveAtmosphere(ctx, tx, p)
	})
	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		return err
	}

	logger.Debug("Planet created successfully", "planet_id", p.id)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_planet", "planet_id", id)

	row := r.db.QueryRowContext(ctx, selectPlanets+` WHERE p.id = $1`, id)
	p, err := scanPlanet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("planet %d not found", id)
	}
	if err != nil {
		logger.Error("Failed to get planet", "error", err)
		return nil, err
	}
	return p, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list_planets", "type", filter.Type)
	logger.Debug("Listing planets")

	var (
		clauses []string
		args    []interface{}
	)
	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, fmt.Sprintf("p.type = $%d", len(args)))
	}

	query := selectPlanets
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var planets []*Planet
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, err
		}
		planets = append(planets, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

// Update writes every planet field and replaces or removes the atmosphere row.
func (r *Repository) Update(ctx context.Context, p *Planet) error {
	logger := r.logger.With("component", "planet_repository", "operation", "update_planet", "planet_id", p.id)
	logger.Debug("Updating planet")

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			UPDATE planets
			SET name = $1, number_of_moons = $2, mass = $3, radius = $4, gravity = $5,
				last_albedo_measurement = $6, has_rings = $7, type = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING updated_at`

		err := tx.QueryRowContext(ctx, query,
			p.name, p.numberOfMoons, p.mass, p.radius, p.gravity, p.lastAlbedoMeasurement, p.hasRings, p.planetType, p.id,
		).Scan(&p.updatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundf("planet %d not found", p.id)
		}
		if err != nil {
			return translateError(err, p.name)
		}

		return r.saveAtmosphere(ctx, tx, p)
	})
	if err != nil {
		logger.Error("Failed to update planet", "error", err)
		return err
	}

	logger.Debug("Planet updated successfully")
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	logger := r.logger.With("component", "planet_repository", "operation", "delete_planet", "planet_id", id)

	result, err := r.db.ExecContext(ctx, `DELETE FROM planets WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete planet", "error", err)
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFoundf("planet %d not found", id)
	}

	logger.Debug("Planet deleted")
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM planets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count planets: %w", err)
	}
	return count, nil
}

func (r *Repository) saveAtmosphere(ctx context.Context, exec database.Executor, p *Planet) error {
	a := p.atmosphere
	if a == nil {
		if _, err := exec.ExecContext(ctx, `DELETE FROM atmospheres WHERE planet_id = $1`, p.id); err != nil {
			return fmt.Errorf("failed to remove atmosphere: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO atmospheres (planet_id, composition, last_observation, air_quality, pressure, density, has_clouds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (planet_id) DO UPDATE SET
			composition = EXCLUDED.composition,
			last_observation = EXCLUDED.last_observation,
			air_quality = EXCLUDED.air_quality,
			pressure = EXCLUDED.pressure,
			density = EXCLUDED.density,
			has_clouds = EXCLUDED.has_clouds`

	_, err := exec.ExecContext(ctx, query,
		p.id, a.composition, a.lastObservation, a.airQuality, a.pressure, a.density, a.hasClouds)
	if err != nil {
		return fmt.Errorf("failed to save atmosphere: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlanet(row rowScanner) (*Planet, error) {
	var (
		rec             record
		composition     sql.NullString
		lastObservation sql.NullTime
		airQuality      sql.NullInt64
		pressure        sql.NullFloat64
		density         sql.NullFloat64
		hasClouds       sql.NullBool
	)

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.NumberOfMoons,
		&rec.Mass,
		&rec.Radius,
		&rec.Gravity,
		&rec.LastAlbedoMeasurement,
		&rec.HasRings,
		&rec.Type,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&composition,
		&lastObservation,
		&airQuality,
		&pressure,
		&density,
		&hasClouds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan planet: %w", err)
	}

	if composition.Valid {
		rec.Atmosphere = &atmosphereRecord{
			Composition:     composition.String,
			LastObservation: lastObservation.Time,
			AirQuality:      int(airQuality.Int64),
			Pressure:        pressure.Float64,
			Density:         density.Float64,
			HasClouds:       hasClouds.Bool,
		}
	}

	p, err := rec.toPlanet()
	if err != nil {
		return nil, apperrors.WrapInternal("stored planet is invalid", err)
	}
	return p, nil
}

func translateError(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return apperrors.Conflictf("planet %q already exists", name)
		case stringDataRightTruncated:
			return apperrors.WrapValidation("a text value is too long to store", err)
		}
	}
	return fmt.Errorf("failed to write planet: %w", err)
}

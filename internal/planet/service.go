package planet

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "planets-catalog/internal/shared/errors"
)

// Store is the persistence the service needs; *Repository implements it.
type Store interface {
	Create(ctx context.Context, p *Planet) error
	GetByID(ctx context.Context, id int) (*Planet, error)
	List(ctx context.Context, filter ListFilter) ([]*Planet, error)
	Update(ctx context.Context, p *Planet) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type Service struct {
	store  Store
	cache  Cache
	logger *slog.Logger
}

func NewService(store Store, cache Cache, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	if cache == nil {
		cache = noopCache{}
	}

	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Create stores a new planet. A supplied atmosphere that fails validation
// is dropped rather than failing the request.
func (s *Service) Create(ctx context.Context, attrs Attributes) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "create_planet", "name", attrs.Name)

	p, dropped, err := attrs.Build()
	if err != nil {
		return nil, err
	}
	if dropped {
		logger.Warn("Invalid atmosphere dropped, planet created without one")
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, p)
	logger.Info("Planet created", "planet_id", p.ID(), "has_atmosphere", p.HasAtmosphere())
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Planet, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, p)
	return p, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Planet, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, ErrInvalidPlanetType
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, apperrors.Validation("limit and offset cannot be negative")
	}
	return s.store.List(ctx, filter)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Update applies patch through the planet's setters. Nothing is persisted
// unless every present field validates.
func (s *Service) Update(ctx context.Context, id int, patch Patch) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "update_planet", "planet_id", id)

	if patch.IsEmpty() {
		return nil, apperrors.Validation("no fields to update")
	}

	return s.modify(ctx, id, logger, patch.Apply)
}

// SetAtmosphere assigns a new atmosphere and reports its validation errors.
func (s *Service) SetAtmosphere(ctx context.Context, id int, attrs AtmosphereAttributes) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "set_atmosphere", "planet_id", id)

	return s.modify(ctx, id, logger, attrs.ApplyTo)
}

func (s *Service) RemoveAtmosphere(ctx context.Context, id int) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "remove_atmosphere", "planet_id", id)

	return s.modify(ctx, id, logger, func(p *Planet) error {
		p.RemoveAtmosphere()
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	logger := s.logger.With("component", "planet_service", "operation", "delete_planet", "planet_id", id)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	logger.Info("Planet deleted")
	return nil
}

// modify always starts from the stored planet, never the cached one, so a
// rejected change leaves no trace.
func (s *Service) modify(ctx context.Context, id int, logger *slog.Logger, change func(*Planet) error) (*Planet, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(p); err != nil {
		logger.Debug("Change rejected", "error", err)
		return nil, err
	}

	if err := s.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save planet %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, id)
	logger.Info("Planet updated")
	return p, nil
}

package planet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"planets-catalog/internal/shared/config"
	"planets-catalog/internal/shared/database"
	apperrors "planets-catalog/internal/shared/errors"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepository needs a disposable PostgreSQL database.
func setupRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("PLANETS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PLANETS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, dsn, config.DatabaseConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.RunMigrations(ctx, filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "TRUNCATE planets RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return NewRepository(db, testLogger())
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	attrs := marsAttributes()
	attrs.Atmosphere = thinAtmosphere()
	p, _, err := attrs.Build()
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID())

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "Mars", got.Name())
	assert.Equal(t, 6.417e23, got.Mass())
	require.NotNil(t, got.Atmosphere())
	assert.Equal(t, "Carbon dioxide, Nitrogen, Argon", got.Atmosphere().Composition())
}

func TestRepository_DuplicateNameConflicts(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first, _, err := marsAttributes().Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, _, err := marsAttributes().Build()
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetType(err))
}

func TestRepository_LongNameIsStored(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	attrs := marsAttributes()
	attrs.Name = strings.Repeat("Mars", 100)
	p, _, err := attrs.Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Len(t, got.Name(), 400)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"unique violation", &pq.Error{Code: uniqueViolation}, apperrors.ErrorTypeConflict},
		{"value too long", &pq.Error{Code: stringDataRightTruncated}, apperrors.ErrorTypeValidation},
		{"other postgres error", &pq.Error{Code: "23514"}, apperrors.ErrorTypeInternal},
		{"driver error", errors.New("connection reset"), apperrors.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err, "Mars")
			assert.Equal(t, tt.want, apperrors.GetType(err))
		})
	}
}

func TestRepository_UpdateRemovesAtmosphere(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	attrs := marsAttributes()
	attrs.Atmosphere = thinAtmosphere()
	p, _, err := attrs.Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	p.RemoveAtmosphere()
	require.NoError(t, p.SetNumberOfMoons(3))
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Nil(t, got.Atmosphere())
	assert.Equal(t, 3, got.NumberOfMoons())
}

func TestRepository_ListDeleteCount(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	mars, _, err := marsAttributes().Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, mars))

	neptuneAttrs := marsAttributes()
	neptuneAttrs.Name = "Neptune"
	neptuneAttrs.Type = PlanetTypeIce
	neptune, _, err := neptuneAttrs.Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, neptune))

	ice, err := repo.List(ctx, ListFilter{Type: PlanetTypeIce})
	require.NoError(t, err)
	require.Len(t, ice, 1)
	assert.Equal(t, "Neptune", ice[0].Name())

	page, err := repo.List(ctx, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Neptune", page[0].Name())

	require.NoError(t, repo.Delete(ctx, mars.ID()))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = repo.Delete(ctx, mars.ID())
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiSArch/wishlist/pkg/database"
)

func TestUserProjectionRepositoryExists(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("6ba7b810-9dad-11d1-80b4-00c04fd430c8").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewUserProjectionRepository(mock)
	exists, err := repo.Exists(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserProjectionRepositoryUpsertIsIdempotent(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_projections (id) VALUES ($1) ON CONFLICT (id) DO NOTHING")).
		WithArgs("6ba7b810-9dad-11d1-80b4-00c04fd430c8").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewUserProjectionRepository(mock)
	require.NoError(t, repo.Upsert(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserProjectionRepositoryDeleteUnknownID(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM user_projections WHERE id").
		WithArgs("6ba7b810-9dad-11d1-80b4-00c04fd430c8").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewUserProjectionRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
}

func TestProductVariantProjectionRepositoryMissing(t *testing.T) {
	known := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	unknown := "0b6ba8a9-7d56-4f5c-8a29-6a1b1e1f0009"

	t.Run("returns only the unknown ids in input order", func(t *testing.T) {
		mock, err := database.NewMockPool()
		require.NoError(t, err)
		defer mock.Close()

		ids := []string{unknown, known}
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM product_variant_projections WHERE id = ANY($1)")).
			WithArgs(ids).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(known))

		repo := NewProductVariantProjectionRepository(mock)
		missing, err := repo.Missing(context.Background(), ids)
		require.NoError(t, err)
		assert.Equal(t, []string{unknown}, missing)
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		mock, err := database.NewMockPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewProductVariantProjectionRepository(mock)
		missing, err := repo.Missing(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, missing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all ids known yields nothing", func(t *testing.T) {
		mock, err := database.NewMockPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id FROM product_variant_projections").
			WithArgs([]string{known}).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(known))

		repo := NewProductVariantProjectionRepository(mock)
		missing, err := repo.Missing(context.Background(), []string{known})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) PropertyRepository {
	t.Helper()
	repo, err := NewFilePropertyRepository(filepath.Join(t.TempDir(), "properties.json"))
	require.NoError(t, err)
	return repo
}

func newListing(title string, price float64, propertyType model.PropertyType, createdAt time.Time) *model.Property {
	return &model.Property{
		ID:        uuid.NewString(),
		Title:     title,
		PriceUSD:  price,
		Type:      propertyType,
		Status:    model.StatusEnVenta,
		Images:    []string{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestFileRepo_CreateAndGet(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	p := newListing("Casa X", 100000, model.TypeCasa, time.Now())
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Casa X", got.Title)
	assert.Equal(t, float64(100000), got.PriceUSD)
}

func TestFileRepo_GetUnknownID(t *testing.T) {
	repo := newFileRepo(t)

	_, err := repo.FindByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileRepo_ListFiltersByType(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newListing("Casa A", 100, model.TypeCasa, now)))
	require.NoError(t, repo.Create(ctx, newListing("Depto B", 200, model.TypeDepartamento, now)))
	require.NoError(t, repo.Create(ctx, newListing("Casa C", 300, model.TypeCasa, now)))

	casas, err := repo.List(ctx, model.ListingFilter{Type: model.TypeCasa})
	require.NoError(t, err)
	require.Len(t, casas, 2)
	for _, p := range casas {
		assert.Equal(t, model.TypeCasa, p.Type)
	}
}

func TestFileRepo_ListPriceRangeInclusive(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newListing("Barata", 100, model.TypeCasa, now)))
	require.NoError(t, repo.Create(ctx, newListing("Media", 200, model.TypeCasa, now)))
	require.NoError(t, repo.Create(ctx, newListing("Cara", 300, model.TypeCasa, now)))

	minPrice, maxPrice := 100.0, 200.0
	got, err := repo.List(ctx, model.ListingFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.PriceUSD, minPrice)
		assert.LessOrEqual(t, p.PriceUSD, maxPrice)
	}
}

func TestFileRepo_ListSortOrders(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, repo.Create(ctx, newListing("Vieja", 300, model.TypeCasa, base.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newListing("Media", 100, model.TypeCasa, base.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, newListing("Nueva", 200, model.TypeCasa, base)))

	newest, err := repo.List(ctx, model.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "Nueva", newest[0].Title)
	assert.Equal(t, "Vieja", newest[2].Title)

	asc, err := repo.List(ctx, model.ListingFilter{Sort: model.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, float64(100), asc[0].PriceUSD)
	assert.Equal(t, float64(300), asc[2].PriceUSD)

	desc, err := repo.List(ctx, model.ListingFilter{Sort: model.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, float64(300), desc[0].PriceUSD)
	assert.Equal(t, float64(100), desc[2].PriceUSD)
}

func TestFileRepo_ListFeaturedFlag(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	featured := newListing("Destacada", 100, model.TypeCasa, time.Now())
	featured.Featured = true
	require.NoError(t, repo.Create(ctx, featured))
	require.NoError(t, repo.Create(ctx, newListing("Común", 200, model.TypeCasa, time.Now())))

	wantFeatured := true
	got, err := repo.List(ctx, model.ListingFilter{Featured: &wantFeatured})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Destacada", got[0].Title)
}

func TestFileRepo_UpdatePreservesIDAndCreatedAt(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	createdAt := time.Now().Add(-time.Hour)
	p := newListing("Casa X", 100000, model.TypeCasa, createdAt)
	require.NoError(t, repo.Create(ctx, p))

	newPrice := 120000.0
	updated, err := repo.Update(ctx, p.ID, model.PropertyPatch{PriceUSD: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, newPrice, updated.PriceUSD)
	assert.WithinDuration(t, createdAt, updated.CreatedAt, time.Second)
	assert.Equal(t, "Casa X", updated.Title)
}

func TestFileRepo_UpdateUnknownID(t *testing.T) {
	repo := newFileRepo(t)

	title := "Nueva"
	_, err := repo.Update(context.Background(), "no-such-id", model.PropertyPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileRepo_DeleteThenGetYieldsNotFound(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	p := newListing("Casa X", 100000, model.TypeCasa, time.Now())
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// A repeated delete of the same id fails, delete is not idempotent.
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), common.ErrNotFound)
}

func TestFileRepo_UnreadableFileServesEmptyListing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "properties.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo, err := NewFilePropertyRepository(path)
	require.NoError(t, err)

	got, err := repo.List(context.Background(), model.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Point reads still surface the error instead of fabricating a 404.
	_, err = repo.FindByID(context.Background(), "any")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrNotFound))
}

func TestFileRepo_ConcurrentCreatesLoseNothing(t *testing.T) {
	repo := newFileRepo(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			p := newListing("Concurrente", 100, model.TypeCasa, time.Now())
			assert.NoError(t, repo.Create(ctx, p))
		}()
	}
	wg.Wait()

	got, err := repo.List(ctx, model.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, got, writers)
}

package repository

import (
	"testing"

	"inmobiliaria_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(model.ListingFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Empty(t, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	featured := true
	minPrice, maxPrice := 50000.0, 200000.0
	query, args := buildListQuery(model.ListingFilter{
		Type:     model.TypeCasa,
		Status:   model.StatusEnVenta,
		Featured: &featured,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	assert.Contains(t, query, "type = $1")
	assert.Contains(t, query, "status = $2")
	assert.Contains(t, query, "featured = $3")
	assert.Contains(t, query, "price_usd >= $4")
	assert.Contains(t, query, "price_usd <= $5")
	assert.Equal(t, []interface{}{model.TypeCasa, model.StatusEnVenta, true, minPrice, maxPrice}, args)
}

func TestBuildListQuery_SortVariants(t *testing.T) {
	query, _ := buildListQuery(model.ListingFilter{Sort: model.SortPriceAsc})
	assert.Contains(t, query, "ORDER BY price_usd ASC")

	query, _ = buildListQuery(model.ListingFilter{Sort: model.SortPriceDesc})
	assert.Contains(t, query, "ORDER BY price_usd DESC")
}

func TestMatchesFilter_PriceBoundsInclusive(t *testing.T) {
	p := model.Property{PriceUSD: 100}

	bound := 100.0
	assert.True(t, matchesFilter(p, model.ListingFilter{MinPrice: &bound}))
	assert.True(t, matchesFilter(p, model.ListingFilter{MaxPrice: &bound}))

	above := 100.01
	assert.False(t, matchesFilter(p, model.ListingFilter{MinPrice: &above}))
}

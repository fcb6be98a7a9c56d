package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFiltersNormalizeCategories(t *testing.T) {
	a := SearchFilters{Categories: []string{"Museum", " nature ", "history"}}.normalize()
	b := SearchFilters{Categories: []string{"HISTORY", "nature", "museum"}}.normalize()
	assert.Equal(t, []string{"history", "museum", "nature"}, a.Categories)
	assert.Equal(t, a.Categories, b.Categories)
}

func TestSearchCacheKeyOrderInsensitive(t *testing.T) {
	a := SearchFilters{Query: " Registan ", Categories: []string{"b", "a"}}.normalize()
	b := SearchFilters{Query: "registan", Categories: []string{"a", "b"}}.normalize()
	assert.Equal(t, searchCacheKey("attractions", a), searchCacheKey("attractions", b))
}

func TestSearchCacheKeyDistinguishesFilters(t *testing.T) {
	a := SearchFilters{Query: "registan"}.normalize()
	b := SearchFilters{Query: "registan", MinRating: 4}.normalize()
	assert.NotEqual(t, searchCacheKey("attractions", a), searchCacheKey("attractions", b))

	// same filters, different entity
	assert.NotEqual(t, searchCacheKey("attractions", a), searchCacheKey("accommodations", a))
}

func TestNormalizeRejectsUnknownSortField(t *testing.T) {
	f := SearchFilters{SortBy: "password; DROP TABLE"}.normalize()
	assert.Equal(t, "rating", f.SortBy)
}

func TestNormalizeDistanceSortNeedsRadius(t *testing.T) {
	f := SearchFilters{SortBy: "distance"}.normalize()
	assert.Equal(t, "rating", f.SortBy)

	f = SearchFilters{SortBy: "distance", Latitude: 41.3, Longitude: 69.2, RadiusKm: 25}.normalize()
	assert.Equal(t, "distance", f.SortBy)
}

func TestNormalizeDropsCoordinatesWithoutRadius(t *testing.T) {
	f := SearchFilters{Latitude: 41.3, Longitude: 69.2}.normalize()
	assert.Zero(t, f.Latitude)
	assert.Zero(t, f.Longitude)
}

func TestNormalizeClampsPaging(t *testing.T) {
	f := SearchFilters{Page: -1, PageSize: 5000}.normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
}

func TestOrderClauseHasStableTiebreak(t *testing.T) {
	f := SearchFilters{SortBy: "price", SortDir: "asc"}.normalize()
	clause := orderClause(f, "accommodations", "price_per_night")
	assert.Equal(t, "accommodations.price_per_night ASC, accommodations.id ASC", clause)
}

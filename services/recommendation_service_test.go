package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterestKeywords(t *testing.T) {
	keywords := interestKeywords([]byte(`["Diving", " history ", "", "FOOD"]`))
	assert.Equal(t, []string{"diving", "history", "food"}, keywords)
}

func TestInterestKeywordsBadInput(t *testing.T) {
	assert.Nil(t, interestKeywords(nil))
	assert.Nil(t, interestKeywords([]byte("not json")))
	assert.Empty(t, interestKeywords([]byte(`[]`)))
}

func TestClampRecommendLimit(t *testing.T) {
	assert.Equal(t, 10, clampRecommendLimit(0))
	assert.Equal(t, 10, clampRecommendLimit(-3))
	assert.Equal(t, 1, clampRecommendLimit(1))
	assert.Equal(t, 50, clampRecommendLimit(50))
	// oversized requests are capped, not remapped to the default
	assert.Equal(t, 50, clampRecommendLimit(51))
	assert.Equal(t, 50, clampRecommendLimit(1000))
}

func TestInterestClause(t *testing.T) {
	clause, args := interestClause([]string{"diving"}, []string{"name", "category"})
	assert.Equal(t, "(name ILIKE ? OR category ILIKE ?)", clause)
	assert.Equal(t, []interface{}{"%diving%", "%diving%"}, args)

	clause, args = interestClause([]string{"a", "b"}, []string{"name"})
	assert.Equal(t, "(name ILIKE ? OR name ILIKE ?)", clause)
	assert.Len(t, args, 2)
}

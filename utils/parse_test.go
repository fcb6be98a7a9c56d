package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePagination(c)
}

func TestParsePaginationDefaults(t *testing.T) {
	page, size := paginationFor(t, "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestParsePaginationExplicit(t *testing.T) {
	page, size := paginationFor(t, "page=3&page_size=50")
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)
}

func TestParsePaginationAliases(t *testing.T) {
	_, size := paginationFor(t, "per_page=15")
	assert.Equal(t, 15, size)

	_, size = paginationFor(t, "items_per_page=7")
	assert.Equal(t, 7, size)

	// page_size wins over the legacy names
	_, size = paginationFor(t, "page_size=5&per_page=60")
	assert.Equal(t, 5, size)
}

func TestParsePaginationClampsGarbage(t *testing.T) {
	page, size := paginationFor(t, "page=-2&page_size=100000")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)

	page, size = paginationFor(t, "page=abc&page_size=xyz")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestParseFloatSafe(t *testing.T) {
	assert.Equal(t, 3.5, ParseFloatSafe("3.5"))
	assert.Equal(t, 0.0, ParseFloatSafe(""))
	assert.Equal(t, 0.0, ParseFloatSafe("not-a-number"))
}

func TestParseIntSafe(t *testing.T) {
	assert.Equal(t, 42, ParseIntSafe(" 42 "))
	assert.Equal(t, 0, ParseIntSafe("x"))
}

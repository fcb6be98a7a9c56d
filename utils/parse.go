package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseFloatSafe(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ParsePagination reads page/page_size from the query string. Older clients
// still send per_page or items_per_page, so those names are accepted too.
// page is 1-based, page_size is clamped to [1, 100].
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	size := c.Query("page_size")
	if size == "" {
		size = c.Query("per_page")
	}
	if size == "" {
		size = c.Query("items_per_page")
	}
	if size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			pageSize = n
		}
	}
	return page, pageSize
}

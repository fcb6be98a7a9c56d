package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validationError maps a binding failure to a 422 with per-field messages.
// Non-validator errors (malformed JSON and the like) become a plain 400.
func validationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				fields[name] = name + " is required"
			case "email":
				fields[name] = name + " must be a valid email"
			case "min":
				fields[name] = name + " must be at least " + fe.Param()
			case "max":
				fields[name] = name + " must be at most " + fe.Param()
			default:
				fields[name] = name + " is invalid"
			}
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "invalid request"})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func currentTouristID(c *gin.Context) uint {
	return uint(c.GetInt("tourist_id"))
}

func paginated(page, pageSize int, total int64, data interface{}) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"data":        data,
	}
}

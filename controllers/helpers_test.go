package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Score int    `json:"score" binding:"required,min=1,max=5"`
}

func bindAndRespond(body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req bindTarget
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
	}
	return w
}

func TestValidationErrorNamesFields(t *testing.T) {
	w := bindAndRespond(`{"score": 9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Fields  map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "email is required", resp.Fields["email"])
	assert.Equal(t, "score must be at most 5", resp.Fields["score"])
}

func TestValidationErrorMalformedJSONIs400(t *testing.T) {
	w := bindAndRespond(`{"email": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaginatedShape(t *testing.T) {
	h := paginated(2, 20, 45, []string{"a"})
	assert.Equal(t, 2, h["page"])
	assert.Equal(t, 20, h["page_size"])
	assert.Equal(t, int64(45), h["total_count"])
}

func TestParseIDParamRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c)
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

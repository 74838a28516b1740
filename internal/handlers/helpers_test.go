// internal/handlers/helpers_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	c, _ := newContext(http.MethodGet, "/products/"+id.String(), "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	parsed, ok := parseID(c, productNotFound())
	require.True(t, ok)
	assert.Equal(t, id, parsed)

	c, w := newContext(http.MethodGet, "/products/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = parseID(c, productNotFound())
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestBindJSON(t *testing.T) {
	var req struct {
		Name string `json:"name"`
	}

	c, _ := newContext(http.MethodPost, "/", `{"name":"Sari"}`)
	require.True(t, bindJSON(c, &req))
	assert.Equal(t, "Sari", req.Name)

	c, w := newContext(http.MethodPost, "/", `{"name":`)
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCurrentAndOptionalUser(t *testing.T) {
	c, w := newContext(http.MethodGet, "/", "")
	assert.Nil(t, optionalUser(c))
	_, ok := currentUser(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	id := uuid.New()
	c, _ = newContext(http.MethodGet, "/", "")
	c.Set(utils.ContextKeyUserID, id)
	userID, ok := currentUser(c)
	require.True(t, ok)
	assert.Equal(t, id, userID)
	require.NotNil(t, optionalUser(c))
	assert.Equal(t, id, *optionalUser(c))
}

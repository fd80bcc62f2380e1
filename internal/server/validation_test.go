package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedRouter(t *testing.T, spec []byte) *gin.Engine {
	t.Helper()
	mw, err := NewValidator(spec, discardLogger())
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewValidator_EmbeddedSpecLoads(t *testing.T) {
	_, err := NewValidator(openAPISpec, nil)
	require.NoError(t, err)
}

func TestNewValidator_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := NewValidator([]byte("not yaml"), nil)
	assert.Error(t, err)
}

func TestValidator_KnownRoutesPass(t *testing.T) {
	r := newValidatedRouter(t, openAPISpec)

	assert.Equal(t, http.StatusOK, do(r, "GET", "/health").Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/api/get-files").Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/api/stats?profile=alice").Code)
}

func TestValidator_UnknownRoutePassesThrough(t *testing.T) {
	r := newValidatedRouter(t, openAPISpec)

	assert.Equal(t, http.StatusOK, do(r, "GET", "/not-in-spec").Code)
}

func TestValidator_RejectsBadProfileParameter(t *testing.T) {
	r := newValidatedRouter(t, openAPISpec)

	w := do(r, "GET", "/api/stats?profile=a%2Fb")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"invalid request"`)
	assert.Contains(t, w.Body.String(), "profile")
}

func TestValidator_CustomSpecRequiredQuery(t *testing.T) {
	spec := []byte(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items:
    get:
      parameters:
        - {name: limit, in: query, required: true, schema: {type: integer}}
      responses:
        "200": {description: ok}
`)
	r := newValidatedRouter(t, spec)

	assert.Equal(t, http.StatusBadRequest, do(r, "GET", "/items").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "GET", "/items?limit=abc").Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/items?limit=5").Code)
}

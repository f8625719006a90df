package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/models"
)

// newTestRouter builds the production router against an in-memory database
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.Review{}))
	config.SetDB(db)

	cfg := &config.Config{
		Port:      "8080",
		GoEnv:     "test",
		JWTSecret: "router-test-secret",
	}
	config.SetConfig(cfg)

	return setupRouter(cfg)
}

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Minto Portfolio API is running", response["message"])
}

// TestAPIV1Prefix tests that endpoints require the /api/v1 prefix
func TestAPIV1Prefix(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code, "Endpoint should require /api/v1 prefix")

	req, _ = http.NewRequest("GET", "/api/v1/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Endpoint should work with /api/v1 prefix")
}

// TestProtectedRoutesRequireToken verifies every authenticated route group
// rejects anonymous requests
func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/users/me"},
		{"POST", "/api/v1/orders"},
		{"GET", "/api/v1/orders"},
		{"POST", "/api/v1/intake"},
		{"POST", "/api/v1/reviews"},
		{"GET", "/api/v1/admin/dashboard"},
		{"DELETE", "/api/v1/orders"},
	}

	for _, route := range protected {
		req, _ := http.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require a token", route.method, route.path)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, false, response["success"])
	}
}

// TestPublicRoutesOpen verifies the public surface stays reachable without
// a token
func TestPublicRoutesOpen(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Review listing should be public")
}

// TestCORSHeaders tests that allowed origins receive CORS headers
func TestCORSHeaders(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

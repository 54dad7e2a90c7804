package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakshot/backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		SessionExpiryMinutes: 10,
	}
}

func TestSessionJWTRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := IssueSessionJWT(cfg, "abc123", "Tester")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionJWT(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.SessionToken)
	assert.Equal(t, "Tester", claims.DisplayName)
}

func TestSessionJWTRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := IssueSessionJWT(cfg, "abc123", "Tester")
	require.NoError(t, err)

	other := &config.Config{JWTSecret: "different-secret", SessionExpiryMinutes: 10}
	_, err = ParseSessionJWT(other, token)
	assert.Error(t, err)
}

func TestSessionJWTRejectsGarbage(t *testing.T) {
	_, err := ParseSessionJWT(testConfig(), "not.a.jwt")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "breakshot-api", body["service"])
	assert.NotEmpty(t, body["uptime"])
}

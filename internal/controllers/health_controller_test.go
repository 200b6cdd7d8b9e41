package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gentil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	e := newTestEnv()
	e.drafts.SaveResponses("u1", models.OnboardingResponses{Name: "Ana"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	e.health.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, float64(1), resp["drafts"])
	assert.Equal(t, float64(0), resp["armed_triggers"])
}

func TestHealth_ReportsArmedTriggers(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.reminders.RegisterToken, newRequest(t, http.MethodPost, "/push-token", "u1", pushTokenRequest{Token: "tok"}))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	e.health.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(10), decodeBody[map[string]any](t, rr)["armed_triggers"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	e := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	e.health.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}

package controllers

import (
	"net/http"
	"testing"
	"time"

	"gentil/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStreakGet_AnonymousIsZero(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.streaks.Get, newRequest(t, http.MethodGet, "/streak", "", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[streakResponse](t, rr).CurrentStreak)
}

func TestRecordActivity_RequiresUser(t *testing.T) {
	e := newTestEnv()
	rr := serve(e.streaks.RecordActivity, newRequest(t, http.MethodPost, "/streak/activity", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRecordActivity_ConsecutiveDays(t *testing.T) {
	e := newTestEnv()

	rr := serve(e.streaks.RecordActivity, newRequest(t, http.MethodPost, "/streak/activity", "u1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeBody[models.StreakRecord](t, rr).CurrentStreak)

	// Same day again.
	rr = serve(e.streaks.RecordActivity, newRequest(t, http.MethodPost, "/streak/activity", "u1", nil))
	assert.Equal(t, 1, decodeBody[models.StreakRecord](t, rr).CurrentStreak)

	e.clock.Advance(24 * time.Hour)
	rr = serve(e.streaks.RecordActivity, newRequest(t, http.MethodPost, "/streak/activity", "u1", nil))
	rec := decodeBody[models.StreakRecord](t, rr)
	assert.Equal(t, 2, rec.CurrentStreak)
	assert.Equal(t, 2, rec.LongestStreak)
	assert.Equal(t, "2024-01-12", rec.LastActivityDate.String())

	rr = serve(e.streaks.Get, newRequest(t, http.MethodGet, "/streak", "u1", nil))
	assert.Equal(t, 2, decodeBody[streakResponse](t, rr).CurrentStreak)
}

package services

import (
	"context"
	"testing"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"
	"gentil/internal/repositories"
	"gentil/internal/streak"
	"gentil/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowHours(t *testing.T) {
	assert.Equal(t, 13.0, windowHours(models.MustTimeOfDay("08:00"), models.MustTimeOfDay("21:00")))
	assert.Equal(t, 2.5, windowHours(models.MustTimeOfDay("08:00"), models.MustTimeOfDay("10:30")))
	assert.Equal(t, 0.3, windowHours(models.MustTimeOfDay("08:00"), models.MustTimeOfDay("08:20")))
	assert.Equal(t, 0.0, windowHours(models.MustTimeOfDay("21:00"), models.MustTimeOfDay("08:00")))
}

func TestDaysUsingApp(t *testing.T) {
	now := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, daysUsingApp(time.Time{}, now))
	assert.Equal(t, 1, daysUsingApp(now.Add(-time.Hour), now))
	assert.Equal(t, 2, daysUsingApp(now.Add(-25*time.Hour), now))
	assert.Equal(t, 1, daysUsingApp(now.Add(time.Hour), now))
}

func TestDashboardService_Get(t *testing.T) {
	clk := clock.Fake(testNow)
	store := repositories.NewMemoryStore(clk)
	ctx := context.Background()
	logger := &testutil.MockLogger{}

	streaks := NewStreakService(streak.NewTracker(store, clk, time.UTC), logger, &testutil.MockMetrics{})
	favorites := NewFavoriteService(store)
	affirmations := NewAffirmationService(store, store, logger)
	drafts := NewDraftService()
	svc := NewDashboardService(streaks, favorites, affirmations, drafts, store, store, store, clk)

	// before any data
	d, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Dashboard{WindowHours: 13, DaysUsingApp: 1}, d)

	seeded := seedAffirmations(t, store, clk, 3, "amor")
	require.NoError(t, store.UpsertProfile(ctx, models.Profile{UserID: "u1"}))
	require.NoError(t, store.SavePreferences(ctx, "u1", prefs(4, "09:00", "12:30")))
	_, err = favorites.Toggle(ctx, "u1", seeded[0].ID)
	require.NoError(t, err)
	require.NoError(t, affirmations.RecordRead(ctx, "u1", seeded[1].ID))
	drafts.SaveResponses("u1", models.OnboardingResponses{Name: "Ana", Goals: "paz", Troubles: "sono"})
	_, err = streaks.RecordActivity(ctx, "u1")
	require.NoError(t, err)

	clk.Advance(72 * time.Hour)
	d, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Dashboard{
		Streak:               1,
		FavoritesCount:       1,
		PerDay:               4,
		WeeklyNotifications:  28,
		WindowHours:          3.5,
		OnboardingCompletion: 25,
		DaysUsingApp:         4,
		ReadCount:            1,
		TotalAffirmations:    3,
	}, d)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

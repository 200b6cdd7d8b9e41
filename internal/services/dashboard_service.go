package services

import (
	"context"
	"math"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"
	"gentil/internal/repositories"
)

// dashboardCatalogSample bounds the affirmation count shown on the dashboard.
const dashboardCatalogSample = 200

type Dashboard struct {
	Streak               int     `json:"streak"`
	FavoritesCount       int     `json:"favorites_count"`
	PerDay               int     `json:"per_day"`
	WeeklyNotifications  int     `json:"weekly_notifications"`
	WindowHours          float64 `json:"window_hours"`
	OnboardingCompletion int     `json:"onboarding_completion"`
	DaysUsingApp         int     `json:"days_using_app"`
	ReadCount            int     `json:"read_count"`
	TotalAffirmations    int     `json:"total_affirmations"`
}

type DashboardServiceInterface interface {
	Get(ctx context.Context, userID string) (Dashboard, error)
}

type DashboardService struct {
	streaks      StreakServiceInterface
	favorites    FavoriteServiceInterface
	affirmations AffirmationServiceInterface
	drafts       DraftServiceInterface
	prefs        repositories.PreferencesRepository
	profiles     repositories.ProfileRepository
	reads        repositories.ReadHistoryRepository
	clock        clock.Clock
}

func NewDashboardService(
	streaks StreakServiceInterface,
	favorites FavoriteServiceInterface,
	affirmations AffirmationServiceInterface,
	drafts DraftServiceInterface,
	prefs repositories.PreferencesRepository,
	profiles repositories.ProfileRepository,
	reads repositories.ReadHistoryRepository,
	clk clock.Clock,
) *DashboardService {
	return &DashboardService{
		streaks:      streaks,
		favorites:    favorites,
		affirmations: affirmations,
		drafts:       drafts,
		prefs:        prefs,
		profiles:     profiles,
		reads:        reads,
		clock:        clk,
	}
}

// windowHours is the reminder window length rounded to one decimal, never negative.
func windowHours(start, end models.TimeOfDay) float64 {
	minutes := end.Minutes() - start.Minutes()
	return math.Max(0, math.Round(float64(minutes)/60*10)/10)
}

// daysUsingApp counts the started days since created, at least 1.
func daysUsingApp(created, now time.Time) int {
	if created.IsZero() {
		return 1
	}
	days := int(math.Floor(now.Sub(created).Hours()/24)) + 1
	return max(1, days)
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	if userID == "" {
		return Dashboard{}, ErrUnauthenticated
	}
	var d Dashboard
	var err error

	if d.Streak, err = s.streaks.GetStreak(ctx, userID); err != nil {
		return Dashboard{}, err
	}
	if d.FavoritesCount, err = s.favorites.Count(ctx, userID); err != nil {
		return Dashboard{}, err
	}

	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return Dashboard{}, storageErr("load preferences", err)
	}
	window := models.DefaultNotificationPreferences()
	if prefs != nil {
		d.PerDay = prefs.PerDay
		window = *prefs
	}
	d.WeeklyNotifications = d.PerDay * 7
	d.WindowHours = windowHours(window.StartTime, window.EndTime)

	d.OnboardingCompletion = s.drafts.CompletionPercent(userID)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return Dashboard{}, storageErr("load profile", err)
	}
	var created time.Time
	if profile != nil {
		created = profile.CreatedAt
	}
	d.DaysUsingApp = daysUsingApp(created, s.clock.Now())

	if d.ReadCount, err = s.reads.CountReads(ctx, userID); err != nil {
		return Dashboard{}, storageErr("count reads", err)
	}

	sample, err := s.affirmations.List(ctx, dashboardCatalogSample)
	if err != nil {
		return Dashboard{}, err
	}
	d.TotalAffirmations = len(sample)
	return d, nil
}

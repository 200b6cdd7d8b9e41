package di

import (
	"context"
	"fmt"
	"time"

	"gentil/internal"
	"gentil/internal/auth"
	"gentil/internal/clock"
	"gentil/internal/controllers"
	"gentil/internal/notify"
	"gentil/internal/providers"
	"gentil/internal/reminder"
	"gentil/internal/repositories"
	"gentil/internal/streak"
	"gentil/internal/structures"
)

const storeOpenTimeout = 15 * time.Second

func NewClock() clock.Clock {
	return clock.Real()
}

// NewStore opens the configured database. The memory driver keeps
// everything in process.
func NewStore(conf *structures.Config, clk clock.Clock, logger providers.Logger) (repositories.Store, error) {
	switch conf.Database.Driver {
	case "", "memory":
		logger.Warnf(providers.TypeApp, "Using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore(clk), nil
	case string(repositories.DialectPostgres), string(repositories.DialectSQLite):
		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		defer cancel()
		store, err := repositories.OpenSQL(ctx, repositories.Dialect(conf.Database.Driver), conf.Database.DSN, conf.Database.MaxOpenConns, clk)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", conf.Database.Driver, err)
		}
		logger.Infof(providers.TypeApp, "Connected to %s store", conf.Database.Driver)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}
}

func NewTracker(conf *structures.Config, store repositories.Store, clk clock.Clock) (streak.TrackerInterface, error) {
	loc, err := providers.LoadLocation(conf.Streak.Timezone)
	if err != nil {
		return nil, fmt.Errorf("streak: %w", err)
	}
	return streak.NewTracker(store, clk, loc), nil
}

func NewHub(conf *structures.Config, logger providers.Logger) (notify.HubInterface, error) {
	loc, err := providers.LoadLocation(conf.Reminder.Timezone)
	if err != nil {
		return nil, fmt.Errorf("reminder: %w", err)
	}
	return notify.NewHub(notify.NewLogSender(logger), conf.Reminder.Title, loc), nil
}

// NewCatalog uses the configured reminder messages, or the built-in ones.
func NewCatalog(conf *structures.Config) reminder.Catalog {
	if len(conf.Reminder.Messages) == 0 {
		return reminder.DefaultCatalog()
	}
	return reminder.NewCatalog(conf.Reminder.Messages)
}

func NewTokenIssuer(conf *structures.Config, clk clock.Clock) auth.TokenIssuerInterface {
	return auth.NewTokenIssuer(conf.Auth.Secret, conf.Auth.TokenTTL, clk)
}

func NewControllers(
	accounts *controllers.AccountController,
	streaks *controllers.StreakController,
	reminders *controllers.ReminderController,
	content *controllers.ContentController,
	onboarding *controllers.OnboardingController,
	dashboard *controllers.DashboardController,
) *internal.Controllers {
	return &internal.Controllers{
		Accounts:   accounts,
		Streaks:    streaks,
		Reminders:  reminders,
		Content:    content,
		Onboarding: onboarding,
		Dashboard:  dashboard,
	}
}

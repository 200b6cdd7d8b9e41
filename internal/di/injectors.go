//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"gentil/internal"
	"gentil/internal/controllers"
	"gentil/internal/persistence"
	"gentil/internal/providers"
	"gentil/internal/repositories"
	"gentil/internal/services"
	"gentil/internal/structures"
)

var repositorySet = wire.NewSet(
	NewStore,
	wire.Bind(new(repositories.UserRepository), new(repositories.Store)),
	wire.Bind(new(repositories.AffirmationRepository), new(repositories.Store)),
	wire.Bind(new(repositories.FavoriteRepository), new(repositories.Store)),
	wire.Bind(new(repositories.ReadHistoryRepository), new(repositories.Store)),
	wire.Bind(new(repositories.ProfileRepository), new(repositories.Store)),
	wire.Bind(new(repositories.PreferencesRepository), new(repositories.Store)),
	wire.Bind(new(services.ReminderStore), new(repositories.Store)),
)

var serviceSet = wire.NewSet(
	services.NewStreakService,
	wire.Bind(new(services.StreakServiceInterface), new(*services.StreakService)),
	services.NewReminderService,
	wire.Bind(new(services.ReminderServiceInterface), new(*services.ReminderService)),
	services.NewDraftService,
	wire.Bind(new(services.DraftServiceInterface), new(*services.DraftService)),
	services.NewAffirmationService,
	wire.Bind(new(services.AffirmationServiceInterface), new(*services.AffirmationService)),
	services.NewFavoriteService,
	wire.Bind(new(services.FavoriteServiceInterface), new(*services.FavoriteService)),
	services.NewProfileService,
	wire.Bind(new(services.ProfileServiceInterface), new(*services.ProfileService)),
	services.NewAccountService,
	wire.Bind(new(services.AccountServiceInterface), new(*services.AccountService)),
	services.NewDashboardService,
	wire.Bind(new(services.DashboardServiceInterface), new(*services.DashboardService)),
)

var controllerSet = wire.NewSet(
	controllers.NewAccountController,
	controllers.NewStreakController,
	controllers.NewReminderController,
	controllers.NewContentController,
	controllers.NewOnboardingController,
	controllers.NewDashboardController,
	controllers.NewHealthController,
	NewControllers,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		NewClock,
		NewTracker,
		NewHub,
		NewCatalog,
		NewTokenIssuer,
		repositorySet,
		serviceSet,
		controllerSet,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

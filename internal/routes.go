package internal

import (
	"net/http"

	"gentil/internal/controllers"
	"gentil/internal/providers"
)

// Controllers groups every handler set mounted on the API mux.
type Controllers struct {
	Accounts   *controllers.AccountController
	Streaks    *controllers.StreakController
	Reminders  *controllers.ReminderController
	Content    *controllers.ContentController
	Onboarding *controllers.OnboardingController
	Dashboard  *controllers.DashboardController
}

func InitRoutes(c *Controllers) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/auth/register", http.HandlerFunc(c.Accounts.Register))
	routers.Post("/auth/login", http.HandlerFunc(c.Accounts.Login))

	routers.Get("/streak", http.HandlerFunc(c.Streaks.Get))
	routers.Post("/streak/activity", http.HandlerFunc(c.Streaks.RecordActivity))

	routers.Get("/reminders/preferences", http.HandlerFunc(c.Reminders.GetPreferences))
	routers.Put("/reminders/preferences", http.HandlerFunc(c.Reminders.SavePreferences))
	routers.Get("/reminders/preview", http.HandlerFunc(c.Reminders.Preview))
	routers.Post("/reminders/reschedule", http.HandlerFunc(c.Reminders.Reschedule))
	routers.Post("/push-token", http.HandlerFunc(c.Reminders.RegisterToken))
	routers.Delete("/push-token", http.HandlerFunc(c.Reminders.RevokeToken))

	routers.Get("/affirmations", http.HandlerFunc(c.Content.List))
	routers.Post("/affirmations", http.HandlerFunc(c.Content.Create))
	routers.Post("/affirmations/read", http.HandlerFunc(c.Content.RecordRead))
	routers.Get("/favorites", http.HandlerFunc(c.Content.ListFavorites))
	routers.Post("/favorites", http.HandlerFunc(c.Content.ToggleFavorite))
	routers.Delete("/favorites", http.HandlerFunc(c.Content.RemoveFavorite))
	routers.Get("/favorites/status", http.HandlerFunc(c.Content.FavoriteStatus))

	routers.Get("/onboarding", http.HandlerFunc(c.Onboarding.Get))
	routers.Put("/onboarding", http.HandlerFunc(c.Onboarding.Save))
	routers.Delete("/onboarding", http.HandlerFunc(c.Onboarding.Reset))
	routers.Post("/onboarding/complete", http.HandlerFunc(c.Onboarding.Complete))
	routers.Get("/preferences", http.HandlerFunc(c.Onboarding.GetAppPreferences))
	routers.Put("/preferences", http.HandlerFunc(c.Onboarding.SaveAppPreferences))
	routers.Get("/profile", http.HandlerFunc(c.Onboarding.Profile))

	routers.Get("/dashboard", http.HandlerFunc(c.Dashboard.Get))
	return routers
}

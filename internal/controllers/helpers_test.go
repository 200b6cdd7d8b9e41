package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gentil/internal/auth"
	"gentil/internal/clock"
	"gentil/internal/notify"
	"gentil/internal/reminder"
	"gentil/internal/repositories"
	"gentil/internal/services"
	"gentil/internal/streak"
	"gentil/internal/structures"
	"gentil/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)

type nopSender struct{}

func (nopSender) Send(context.Context, notify.Notification) error { return nil }

// testEnv wires real services over a MemoryStore.
type testEnv struct {
	clock   *clock.FakeClock
	store   *repositories.MemoryStore
	hub     *notify.Hub
	cache   *testutil.MockCache
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	drafts  *services.DraftService

	accounts     *AccountController
	streaks      *StreakController
	reminders    *ReminderController
	content      *ContentController
	onboarding   *OnboardingController
	dashboard    *DashboardController
	health       *HealthController
	affirmations *services.AffirmationService
}

func newTestEnv() *testEnv {
	e := &testEnv{
		clock:   clock.Fake(testNow),
		cache:   testutil.NewMockCache(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
		drafts:  services.NewDraftService(),
	}
	e.store = repositories.NewMemoryStore(e.clock)
	e.hub = notify.NewHub(nopSender{}, "Gentil", time.UTC)

	conf := &structures.Config{Auth: structures.AuthConfig{Secret: "0123456789abcdef", TokenTTL: time.Hour, BcryptCost: 4}}
	tokens := auth.NewTokenIssuer(conf.Auth.Secret, conf.Auth.TokenTTL, e.clock)

	streakSvc := services.NewStreakService(streak.NewTracker(e.store, e.clock, time.UTC), e.logger, e.metrics)
	reminderSvc := services.NewReminderService(e.store, e.hub, reminder.DefaultCatalog(), e.clock, e.logger, e.metrics)
	e.affirmations = services.NewAffirmationService(e.store, e.store, e.logger)
	favorites := services.NewFavoriteService(e.store)
	profiles := services.NewProfileService(e.store, e.drafts, reminderSvc, e.logger)
	dashboard := services.NewDashboardService(streakSvc, favorites, e.affirmations, e.drafts, e.store, e.store, e.store, e.clock)

	e.accounts = NewAccountController(e.logger, services.NewAccountService(conf, e.store, tokens, e.logger))
	e.streaks = NewStreakController(e.logger, streakSvc)
	e.reminders = NewReminderController(e.logger, reminderSvc)
	e.content = NewContentController(e.logger, e.affirmations, favorites, e.cache)
	e.onboarding = NewOnboardingController(e.logger, e.drafts, profiles)
	e.dashboard = NewDashboardController(e.logger, dashboard)
	e.health = NewHealthController(e.drafts, e.hub)
	return e
}

func newRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

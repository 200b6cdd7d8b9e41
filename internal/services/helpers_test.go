package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"
	"gentil/internal/notify"
	"gentil/internal/reminder"
	"gentil/internal/repositories"
	"gentil/internal/testutil"
)

var (
	testNow    = time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	errStorage = errors.New("connection refused")
)

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (s *recordingSender) Send(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

// brokenStore fails every preference and token write.
type brokenStore struct {
	*repositories.MemoryStore
}

func (b brokenStore) SavePreferences(context.Context, string, models.NotificationPreferences) error {
	return errStorage
}

func (b brokenStore) SavePushToken(context.Context, models.PushToken) error {
	return errStorage
}

func (b brokenStore) ListPushTokens(context.Context) ([]models.PushToken, error) {
	return nil, errStorage
}

type reminderFixture struct {
	store   *repositories.MemoryStore
	hub     *notify.Hub
	sender  *recordingSender
	clock   *clock.FakeClock
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	svc     *ReminderService
}

func newReminderFixture(catalog reminder.Catalog) *reminderFixture {
	f := &reminderFixture{
		clock:   clock.Fake(testNow),
		sender:  &recordingSender{},
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	f.store = repositories.NewMemoryStore(f.clock)
	f.hub = notify.NewHub(f.sender, "Gentil", time.UTC)
	if catalog == nil {
		catalog = reminder.DefaultCatalog()
	}
	f.svc = NewReminderService(f.store, f.hub, catalog, f.clock, f.logger, f.metrics)
	return f
}

func prefs(perDay int, start, end string) models.NotificationPreferences {
	return models.NotificationPreferences{
		PerDay:    perDay,
		StartTime: models.MustTimeOfDay(start),
		EndTime:   models.MustTimeOfDay(end),
	}
}

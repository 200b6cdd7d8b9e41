package services

import (
	"context"
	"errors"
	"strings"

	"gentil/internal/clock"
	"gentil/internal/models"
	"gentil/internal/notify"
	"gentil/internal/providers"
	"gentil/internal/reminder"
	"gentil/internal/repositories"
)

type ReminderStore interface {
	repositories.PreferencesRepository
	repositories.PushTokenRepository
}

// ScheduleOutcome reports what a best-effort reschedule achieved.
type ScheduleOutcome struct {
	Armed   int    `json:"armed"`
	Warning string `json:"warning,omitempty"`
}

type ReminderServiceInterface interface {
	GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) (ScheduleOutcome, error)
	Reschedule(ctx context.Context, userID string) (reminder.Plan, error)
	Preview(ctx context.Context, userID string) ([]reminder.Trigger, error)
	RegisterPushToken(ctx context.Context, token models.PushToken) (ScheduleOutcome, error)
	RevokePushToken(ctx context.Context, userID string) error
	RestoreAll(ctx context.Context) (int, error)
	Dispatch(ctx context.Context) notify.TickResult
}

type ReminderService struct {
	store   ReminderStore
	hub     notify.HubInterface
	catalog reminder.Catalog
	clock   clock.Clock
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewReminderService(store ReminderStore, hub notify.HubInterface, catalog reminder.Catalog, clk clock.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *ReminderService {
	return &ReminderService{
		store:   store,
		hub:     hub,
		catalog: catalog,
		clock:   clk,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *ReminderService) scheduler(userID string) *reminder.Scheduler {
	return reminder.NewScheduler(s.hub.Facility(userID), s.catalog, s.clock)
}

// GetPreferences returns the stored preferences or the onboarding defaults.
func (s *ReminderService) GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error) {
	if userID == "" {
		return models.NotificationPreferences{}, ErrUnauthenticated
	}
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, storageErr("load preferences", err)
	}
	if prefs == nil {
		return models.DefaultNotificationPreferences(), nil
	}
	return *prefs, nil
}

// SavePreferences stores valid preferences and then tries to reschedule.
// A failed reschedule does not fail the save; it comes back as a warning.
func (s *ReminderService) SavePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) (ScheduleOutcome, error) {
	if userID == "" {
		return ScheduleOutcome{}, ErrUnauthenticated
	}
	if err := reminder.Validate(prefs); err != nil {
		return ScheduleOutcome{}, err
	}
	if err := s.store.SavePreferences(ctx, userID, prefs); err != nil {
		return ScheduleOutcome{}, storageErr("save preferences", err)
	}
	return s.bestEffortReschedule(ctx, userID, prefs), nil
}

func (s *ReminderService) bestEffortReschedule(ctx context.Context, userID string, prefs models.NotificationPreferences) ScheduleOutcome {
	var plan reminder.Plan
	err := BestEffort(s.logger, "reschedule "+userID, func() error {
		var err error
		plan, err = s.reschedule(ctx, userID, prefs)
		return err
	})
	if err != nil {
		return ScheduleOutcome{Armed: len(plan.Triggers), Warning: err.Error()}
	}
	return ScheduleOutcome{Armed: len(plan.Triggers)}
}

// Reschedule re-arms the user's reminders from their current preferences.
func (s *ReminderService) Reschedule(ctx context.Context, userID string) (reminder.Plan, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return reminder.Plan{}, err
	}
	return s.reschedule(ctx, userID, prefs)
}

func (s *ReminderService) reschedule(ctx context.Context, userID string, prefs models.NotificationPreferences) (reminder.Plan, error) {
	plan, err := s.scheduler(userID).Reschedule(ctx, prefs)
	s.metrics.IncReschedule(rescheduleResult(err))
	s.metrics.SetArmedTriggers(s.hub.ArmedTotal())
	if err != nil {
		return plan, err
	}
	s.logger.Infof(providers.TypeReminder, "Armed %d reminders for %s", len(plan.Triggers), userID)
	return plan, nil
}

func rescheduleResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, reminder.ErrPermissionDenied):
		return "denied"
	case errors.Is(err, reminder.ErrSchedulingUnavailable):
		return "failed"
	default:
		return "invalid"
	}
}

func (s *ReminderService) Preview(ctx context.Context, userID string) ([]reminder.Trigger, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.scheduler(userID).Preview(prefs)
}

// RegisterPushToken grants notification permission to the user and arms
// their reminders.
func (s *ReminderService) RegisterPushToken(ctx context.Context, token models.PushToken) (ScheduleOutcome, error) {
	if token.UserID == "" {
		return ScheduleOutcome{}, ErrUnauthenticated
	}
	token.Token = strings.TrimSpace(token.Token)
	if token.Token == "" {
		return ScheduleOutcome{}, &ValidationError{Fields: map[string]string{"token": "token is required"}}
	}
	if err := s.store.SavePushToken(ctx, token); err != nil {
		return ScheduleOutcome{}, storageErr("save push token", err)
	}
	s.hub.Grant(token.UserID, token.Token)

	prefs, err := s.GetPreferences(ctx, token.UserID)
	if err != nil {
		return ScheduleOutcome{Warning: err.Error()}, nil
	}
	return s.bestEffortReschedule(ctx, token.UserID, prefs), nil
}

func (s *ReminderService) RevokePushToken(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.store.DeletePushToken(ctx, userID); err != nil {
		return storageErr("delete push token", err)
	}
	s.hub.Revoke(userID)
	s.metrics.SetArmedTriggers(s.hub.ArmedTotal())
	return nil
}

// RestoreAll grants every stored token and re-arms its reminders. It returns
// how many users were armed without error.
func (s *ReminderService) RestoreAll(ctx context.Context) (int, error) {
	tokens, err := s.store.ListPushTokens(ctx)
	if err != nil {
		return 0, storageErr("list push tokens", err)
	}
	prefs, err := s.store.ListPreferences(ctx)
	if err != nil {
		return 0, storageErr("list preferences", err)
	}

	restored := 0
	for _, t := range tokens {
		s.hub.Grant(t.UserID, t.Token)
		p, ok := prefs[t.UserID]
		if !ok {
			p = models.DefaultNotificationPreferences()
		}
		if _, err := s.reschedule(ctx, t.UserID, p); err != nil {
			s.logger.Warnf(providers.TypeReminder, "Restore reminders for %s: %s", t.UserID, err)
			continue
		}
		restored++
	}
	s.logger.Infof(providers.TypeReminder, "Restored reminders for %d of %d users", restored, len(tokens))
	return restored, nil
}

// Dispatch fires every reminder due at the current minute.
func (s *ReminderService) Dispatch(ctx context.Context) notify.TickResult {
	res := s.hub.Tick(ctx, s.clock.Now())
	for i := 0; i < res.Sent; i++ {
		s.metrics.IncNotifications("sent")
	}
	for _, err := range res.Errors {
		s.metrics.IncNotifications("failed")
		s.logger.Errorf(providers.TypeReminder, "Dispatch: %s", err)
	}
	return res
}

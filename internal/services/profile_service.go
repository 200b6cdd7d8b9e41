package services

import (
	"context"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/repositories"
)

// SyncResult is the outcome of turning an onboarding draft into a profile.
type SyncResult struct {
	Profile  *models.Profile  `json:"profile"`
	Schedule *ScheduleOutcome `json:"schedule,omitempty"`
	Warning  string           `json:"warning,omitempty"`
}

type ProfileServiceInterface interface {
	SyncOnboarding(ctx context.Context, userID string) (SyncResult, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

type ProfileService struct {
	profiles  repositories.ProfileRepository
	drafts    DraftServiceInterface
	reminders ReminderServiceInterface
	logger    providers.Logger
}

func NewProfileService(profiles repositories.ProfileRepository, drafts DraftServiceInterface, reminders ReminderServiceInterface, logger providers.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, drafts: drafts, reminders: reminders, logger: logger}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func profileFromResponses(userID string, r models.OnboardingResponses) models.Profile {
	categories := r.Categories
	if categories == nil {
		categories = []string{}
	}
	return models.Profile{
		UserID:              userID,
		Name:                optional(r.Name),
		RelationshipStatus:  optional(r.RelationshipStatus),
		IsReligious:         optional(r.IsReligious),
		Signo:               optional(r.Signo),
		RecentFeeling:       optional(r.RecentFeeling),
		FeelingCause:        optional(r.FeelingCause),
		TimeDedication:      optional(r.TimeDedication),
		StartGoal:           optional(r.StartGoal),
		Categories:          categories,
		Troubles:            optional(r.Troubles),
		Avoidance:           optional(r.Avoidance),
		Goals:               optional(r.Goals),
		GoalsAvoidance:      optional(r.GoalsAvoidance),
		OnboardingCompleted: true,
	}
}

// reminderPrefsFromResponses returns nil when onboarding did not ask for reminders.
func reminderPrefsFromResponses(r models.OnboardingResponses) (*models.NotificationPreferences, error) {
	if r.NotificationsPerDay <= 0 {
		return nil, nil
	}
	prefs := models.DefaultNotificationPreferences()
	prefs.PerDay = r.NotificationsPerDay
	if r.NotificationStartTime != "" {
		t, err := models.ParseTimeOfDay(r.NotificationStartTime)
		if err != nil {
			return nil, err
		}
		prefs.StartTime = t
	}
	if r.NotificationEndTime != "" {
		t, err := models.ParseTimeOfDay(r.NotificationEndTime)
		if err != nil {
			return nil, err
		}
		prefs.EndTime = t
	}
	return &prefs, nil
}

// SyncOnboarding upserts the profile from the user's onboarding draft and
// marks onboarding completed. Reminder preferences collected during
// onboarding are saved best-effort.
func (s *ProfileService) SyncOnboarding(ctx context.Context, userID string) (SyncResult, error) {
	if userID == "" {
		return SyncResult{}, ErrUnauthenticated
	}
	r := s.drafts.Responses(userID)

	if err := s.profiles.UpsertProfile(ctx, profileFromResponses(userID, r)); err != nil {
		return SyncResult{}, storageErr("upsert profile", err)
	}
	s.drafts.MarkCompleted(userID)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return SyncResult{}, storageErr("load profile", err)
	}
	res := SyncResult{Profile: profile}

	prefs, err := reminderPrefsFromResponses(r)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Onboarding reminder times for %s: %s", userID, err)
		res.Warning = err.Error()
		return res, nil
	}
	if prefs == nil {
		return res, nil
	}

	var outcome ScheduleOutcome
	err = BestEffort(s.logger, "save onboarding reminders "+userID, func() error {
		var err error
		outcome, err = s.reminders.SavePreferences(ctx, userID, *prefs)
		return err
	})
	if err != nil {
		res.Warning = err.Error()
		return res, nil
	}
	res.Schedule = &outcome
	return res, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, storageErr("load profile", err)
	}
	return p, nil
}

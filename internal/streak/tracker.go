package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"
)

var (
	ErrUnauthenticated        = errors.New("streak: no authenticated user")
	ErrPersistenceUnavailable = errors.New("streak: persistence unavailable")
)

// Store loads and saves streak records. Load returns (nil, nil) when the
// user has no record yet. Save must write all fields of the record or none.
type Store interface {
	Load(ctx context.Context, userID string) (*models.StreakRecord, error)
	Save(ctx context.Context, userID string, rec models.StreakRecord) error
}

type Transition int

const (
	TransitionStarted Transition = iota
	TransitionSameDay
	TransitionContinued
	TransitionReset
)

func (t Transition) String() string {
	switch t {
	case TransitionStarted:
		return "started"
	case TransitionSameDay:
		return "same_day"
	case TransitionContinued:
		return "continued"
	case TransitionReset:
		return "reset"
	default:
		return "unknown"
	}
}

type TrackerInterface interface {
	RecordActivity(ctx context.Context, userID string, today models.Date) (models.StreakRecord, Transition, error)
	RecordActivityNow(ctx context.Context, userID string) (models.StreakRecord, Transition, error)
	GetStreak(ctx context.Context, userID string) (int, error)
	Today() models.Date
}

type Tracker struct {
	store Store
	clock clock.Clock
	loc   *time.Location
}

// NewTracker builds a tracker whose calendar days are taken in loc.
// A nil loc means UTC.
func NewTracker(store Store, clk clock.Clock, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{store: store, clock: clk, loc: loc}
}

// Today is the current calendar date in the tracker's zone.
func (t *Tracker) Today() models.Date {
	return models.DateOf(t.clock.Now(), t.loc)
}

// Next computes the record that follows prev after activity on today.
// A nil prev starts a new streak.
func Next(prev *models.StreakRecord, today models.Date) (models.StreakRecord, Transition) {
	if prev == nil {
		return models.StreakRecord{CurrentStreak: 1, LongestStreak: 1, LastActivityDate: today}, TransitionStarted
	}
	if prev.LastActivityDate == today {
		return *prev, TransitionSameDay
	}

	next := *prev
	transition := TransitionReset
	if prev.LastActivityDate == today.AddDays(-1) {
		next.CurrentStreak++
		transition = TransitionContinued
	} else {
		next.CurrentStreak = 1
	}
	next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
	next.LastActivityDate = today
	return next, transition
}

func (t *Tracker) RecordActivity(ctx context.Context, userID string, today models.Date) (models.StreakRecord, Transition, error) {
	if userID == "" {
		return models.StreakRecord{}, 0, ErrUnauthenticated
	}

	prev, err := t.store.Load(ctx, userID)
	if err != nil {
		return models.StreakRecord{}, 0, fmt.Errorf("%w: load: %w", ErrPersistenceUnavailable, err)
	}

	next, transition := Next(prev, today)
	if transition == TransitionSameDay {
		return next, transition, nil
	}

	if err = t.store.Save(ctx, userID, next); err != nil {
		return models.StreakRecord{}, 0, fmt.Errorf("%w: save: %w", ErrPersistenceUnavailable, err)
	}
	return next, transition, nil
}

func (t *Tracker) RecordActivityNow(ctx context.Context, userID string) (models.StreakRecord, Transition, error) {
	return t.RecordActivity(ctx, userID, t.Today())
}

// GetStreak returns the current streak, or 0 when there is no user or no record.
func (t *Tracker) GetStreak(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	rec, err := t.store.Load(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: load: %w", ErrPersistenceUnavailable, err)
	}
	if rec == nil {
		return 0, nil
	}
	return rec.CurrentStreak, nil
}

package reminder

import (
	"context"
	"fmt"
	"time"

	"gentil/internal/clock"
	"gentil/internal/models"
)

// DailyTrigger is a recurring wall-clock time handed to the facility.
type DailyTrigger struct {
	Hour   int
	Minute int
}

// Facility is the notification service reminders are armed on.
type Facility interface {
	Permitted() bool
	CancelAll(ctx context.Context) error
	Arm(ctx context.Context, trigger DailyTrigger, body string) error
}

// SchedulingError reports a facility failure and how far arming got.
type SchedulingError struct {
	Intended int
	Armed    int
	Err      error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("reminder: armed %d of %d triggers: %v", e.Armed, e.Intended, e.Err)
}

func (e *SchedulingError) Is(target error) bool {
	return target == ErrSchedulingUnavailable
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}

type Plan struct {
	Triggers []Trigger `json:"triggers"`
	ArmedAt  time.Time `json:"armed_at"`
}

type Scheduler struct {
	facility Facility
	catalog  Catalog
	clock    clock.Clock
}

func NewScheduler(facility Facility, catalog Catalog, clk clock.Clock) *Scheduler {
	return &Scheduler{facility: facility, catalog: catalog, clock: clk}
}

// Reschedule replaces every armed trigger with the slots derived from prefs.
// Nothing is cancelled when permission is missing or prefs are invalid.
func (s *Scheduler) Reschedule(ctx context.Context, prefs models.NotificationPreferences) (Plan, error) {
	if !s.facility.Permitted() {
		return Plan{}, ErrPermissionDenied
	}

	triggers, err := ComputeTriggerTimes(prefs, s.catalog.Len())
	if err != nil {
		return Plan{}, err
	}

	if err = s.facility.CancelAll(ctx); err != nil {
		return Plan{}, &SchedulingError{Intended: len(triggers), Err: err}
	}

	for i, tr := range triggers {
		err = s.facility.Arm(ctx, DailyTrigger{Hour: tr.Hour, Minute: tr.Minute}, s.catalog.Message(tr.MessageIndex))
		if err != nil {
			return Plan{Triggers: triggers[:i]}, &SchedulingError{Intended: len(triggers), Armed: i, Err: err}
		}
	}

	return Plan{Triggers: triggers, ArmedAt: s.clock.Now()}, nil
}

// Preview computes the slots for prefs without touching the facility.
func (s *Scheduler) Preview(prefs models.NotificationPreferences) ([]Trigger, error) {
	return ComputeTriggerTimes(prefs, s.catalog.Len())
}

func (s *Scheduler) Catalog() Catalog {
	return s.catalog
}

package reminder

import (
	"errors"
	"fmt"

	"gentil/internal/models"
)

const MaxPerDay = 20

var (
	ErrInvalidWindow         = errors.New("reminder: end time must be after start time")
	ErrInvalidPreferences    = errors.New("reminder: reminders per day out of range")
	ErrEmptyCatalog          = errors.New("reminder: message catalog is empty")
	ErrPermissionDenied      = errors.New("reminder: notification permission not granted")
	ErrSchedulingUnavailable = errors.New("reminder: notification facility unavailable")
)

// Trigger is one daily reminder slot.
type Trigger struct {
	Hour         int `json:"hour"`
	Minute       int `json:"minute"`
	MessageIndex int `json:"message_index"`
}

func (t Trigger) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t Trigger) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Validate checks prefs without computing any slot.
func Validate(prefs models.NotificationPreferences) error {
	if prefs.EndTime.Minutes()-prefs.StartTime.Minutes() <= 0 {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, prefs.StartTime, prefs.EndTime)
	}
	if prefs.PerDay < 0 || prefs.PerDay > MaxPerDay {
		return fmt.Errorf("%w: %d", ErrInvalidPreferences, prefs.PerDay)
	}
	return nil
}

// ComputeTriggerTimes spreads min(PerDay, catalogSize) reminders evenly over
// [StartTime, EndTime). The first slot is always StartTime. A PerDay of zero
// yields no slots.
func ComputeTriggerTimes(prefs models.NotificationPreferences, catalogSize int) ([]Trigger, error) {
	if err := Validate(prefs); err != nil {
		return nil, err
	}
	if catalogSize < 1 {
		return nil, ErrEmptyCatalog
	}

	count := min(prefs.PerDay, catalogSize)
	triggers := make([]Trigger, 0, count)
	if count == 0 {
		return triggers, nil
	}

	start := prefs.StartTime.Minutes()
	interval := (prefs.EndTime.Minutes() - start) / count
	for i := 0; i < count; i++ {
		m := start + i*interval
		triggers = append(triggers, Trigger{
			Hour:         (m / 60) % 24,
			Minute:       m % 60,
			MessageIndex: i % catalogSize,
		})
	}
	return triggers, nil
}

package providers

import (
	"fmt"
	"time"

	"gentil/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (v *CnfValidator) Validate() error {
	val := validate.Struct(v.conf)
	val.StopOnError = false
	if !val.Validate() {
		return fmt.Errorf("invalid config: %s", val.Errors.String())
	}

	if v.conf.Database.Driver != "memory" && v.conf.Database.DSN == "" {
		return fmt.Errorf("invalid config: database.dsn is required for driver %s", v.conf.Database.Driver)
	}
	// Reminder slots are minute-aligned, so every minute needs a tick.
	if v.conf.Reminder.TickInterval >= time.Minute {
		return fmt.Errorf("invalid config: reminder.tickInterval must be below 1m, got %s", v.conf.Reminder.TickInterval)
	}
	for _, tz := range []string{v.conf.Streak.Timezone, v.conf.Reminder.Timezone} {
		if _, err := LoadLocation(tz); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	return nil
}

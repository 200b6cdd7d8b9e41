package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gentil/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("database.driver", "memory")
	viper.SetDefault("auth.tokenTTL", 30*24*time.Hour)
	viper.SetDefault("auth.bcryptCost", 10)
	viper.SetDefault("streak.timezone", "UTC")
	viper.SetDefault("reminder.timezone", "UTC")
	viper.SetDefault("reminder.tickInterval", 30*time.Second)
	viper.SetDefault("reminder.title", "Gentil 🌱")
	viper.SetDefault("cache.ttl", 60)

	viper.BindEnv("logger.level", "GENTIL_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "GENTIL_SAVE_INTERVAL")
	viper.BindEnv("database.driver", "GENTIL_DATABASE_DRIVER")
	viper.BindEnv("database.dsn", "GENTIL_DATABASE_DSN")
	viper.BindEnv("auth.secret", "GENTIL_AUTH_SECRET")
	viper.BindEnv("streak.timezone", "GENTIL_STREAK_TIMEZONE")
	viper.BindEnv("reminder.timezone", "GENTIL_REMINDER_TIMEZONE")
	viper.BindEnv("cache.enabled", "GENTIL_CACHE_ENABLED")
	viper.BindEnv("cache.size", "GENTIL_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Gentil"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// LoadLocation resolves a configured zone name. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

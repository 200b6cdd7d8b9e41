package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver" validate:"required|in:postgres,sqlite,memory"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
}

type AuthConfig struct {
	Secret     string        `yaml:"secret" validate:"required|minLen:16"`
	TokenTTL   time.Duration `yaml:"tokenTTL" validate:"required|min:1"`
	BcryptCost int           `yaml:"bcryptCost"`
}

type StreakConfig struct {
	Timezone string `yaml:"timezone"`
}

type ReminderConfig struct {
	Timezone     string        `yaml:"timezone"`
	TickInterval time.Duration `yaml:"tickInterval" validate:"required|min:1"`
	Title        string        `yaml:"title"`
	Messages     []string      `yaml:"messages"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Database    DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
	Streak      StreakConfig   `yaml:"streak"`
	Reminder    ReminderConfig `yaml:"reminder"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

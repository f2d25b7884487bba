package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Tally"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tally"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
		RateLimitRPS   float64       `envconfig:"RATE_LIMIT_RPS" default:"20"`
		RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"40"`
		SentryDSN      string        `envconfig:"SENTRY_DSN"`
	}

	Recurring struct {
		Interval time.Duration `envconfig:"RECURRING_INTERVAL" default:"1h"`
	}

	Categories struct {
		CacheTTL time.Duration `envconfig:"CATEGORY_CACHE_TTL" default:"5m"`
	}

	Client struct {
		APIURL  string        `envconfig:"API_URL" default:"http://localhost:8080/api"`
		Timeout time.Duration `envconfig:"CLIENT_TIMEOUT" default:"10s"`
		LogFile string        `envconfig:"TALLY_LOG_FILE"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Recurring.Interval <= 0 {
		return nil, fmt.Errorf("RECURRING_INTERVAL must be positive, got %s", cfg.Recurring.Interval)
	}

	return &cfg, nil
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Tally", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Recurring.Interval)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/tally?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "expenses")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://tally.example")
	t.Setenv("RECURRING_INTERVAL", "15m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://tally.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Recurring.Interval)
	assert.InDelta(t, 2.5, cfg.Server.RateLimitRPS, 1e-9)
	assert.Contains(t, cfg.ConnectionString(), "/expenses?")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_TIMEOUT", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RecurringInterval(t *testing.T) {
	type testCase struct {
		name    string
		value   string
		wantErr bool
	}

	tests := []testCase{
		{name: "positive", value: "30s"},
		{name: "zero", value: "0s", wantErr: true},
		{name: "negative", value: "-5m", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("RECURRING_INTERVAL", tc.value)

			cfg, err := config.Load()
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "RECURRING_INTERVAL")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 30*time.Second, cfg.Recurring.Interval)
		})
	}
}

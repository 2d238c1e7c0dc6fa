package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "salon_app_v1", cfg.Store.Key)
	assert.Equal(t, 10*time.Second, cfg.Notify.Interval)
	assert.False(t, cfg.Notify.Permitted)
	assert.Zero(t, cfg.Notify.PerMinute, "alerts are not throttled unless configured")
	assert.Empty(t, cfg.Backup.Schedule)
	assert.False(t, cfg.TwilioEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("NOTIFY_INTERVAL", "1m")
	t.Setenv("NOTIFY_PERMITTED", "true")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("NOTIFY_RATE_PER_MINUTE", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, time.Minute, cfg.Notify.Interval)
	assert.True(t, cfg.Notify.Permitted)
	assert.Equal(t, 30, cfg.Notify.PerMinute)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Alert.KafkaBrokers)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "UnknownDriver", env: map[string]string{"STORE_DRIVER": "csv"}, want: "invalid store driver"},
		{name: "PostgresWithoutDSN", env: map[string]string{"STORE_DRIVER": "postgres"}, want: "STORE_DSN"},
		{name: "ZeroInterval", env: map[string]string{"NOTIFY_INTERVAL": "0s"}, want: "NOTIFY_INTERVAL"},
		{name: "BadTimezone", env: map[string]string{"APP_TIMEZONE": "Mars/Olympus"}, want: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Salon"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Local"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Store struct {
		Driver        string `envconfig:"STORE_DRIVER" default:"sqlite"`
		Path          string `envconfig:"STORE_PATH" default:"data/salon.db"`
		DSN           string `envconfig:"STORE_DSN"`
		Key           string `envconfig:"STORE_KEY" default:"salon_app_v1"`
		RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		RedisPassword string `envconfig:"REDIS_PASSWORD"`
		RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	Notify struct {
		Interval  time.Duration `envconfig:"NOTIFY_INTERVAL" default:"10s"`
		Permitted bool          `envconfig:"NOTIFY_PERMITTED" default:"false"`
		PerMinute int           `envconfig:"NOTIFY_RATE_PER_MINUTE" default:"0"`
		Burst     int           `envconfig:"NOTIFY_RATE_BURST" default:"10"`
	}

	Alert struct {
		Console bool `envconfig:"ALERT_CONSOLE" default:"true"`
		Bell    bool `envconfig:"ALERT_BELL" default:"false"`

		TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
		TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
		TwilioFrom       string `envconfig:"TWILIO_FROM"`
		TwilioTo         string `envconfig:"TWILIO_TO"`
		TwilioWhatsApp   bool   `envconfig:"TWILIO_WHATSAPP" default:"false"`

		AMQPURL        string `envconfig:"AMQP_URL"`
		AMQPExchange   string `envconfig:"AMQP_EXCHANGE" default:"salon.alerts"`
		AMQPRoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"appointment.reminder"`

		KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
		KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"salon.alerts"`
	}

	Backup struct {
		Dir      string `envconfig:"BACKUP_DIR" default:"backups"`
		Schedule string `envconfig:"BACKUP_SCHEDULE"`
		Keep     int    `envconfig:"BACKUP_KEEP" default:"14"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

// Location resolves App.Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

// TwilioEnabled reports whether enough Twilio settings are present to send.
func (c *Config) TwilioEnabled() bool {
	return c.Alert.TwilioAccountSID != "" && c.Alert.TwilioAuthToken != "" && c.Alert.TwilioTo != ""
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres", "redis", "memory":
	default:
		return fmt.Errorf("invalid store driver %q: must be one of [sqlite postgres redis memory]", c.Store.Driver)
	}

	if c.Store.Driver == "postgres" && strings.TrimSpace(c.Store.DSN) == "" {
		return fmt.Errorf("STORE_DSN is required when using the postgres store")
	}

	if c.Notify.Interval <= 0 {
		return fmt.Errorf("NOTIFY_INTERVAL must be positive, got %s", c.Notify.Interval)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

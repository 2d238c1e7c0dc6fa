// Package setup builds the alert sinks enabled by configuration.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/alert/amqp"
	"github.com/MrJamesThe3rd/salon/internal/alert/kafka"
	"github.com/MrJamesThe3rd/salon/internal/alert/sms"
	"github.com/MrJamesThe3rd/salon/internal/config"
)

type closer interface {
	Close() error
}

// Sinks returns the configured sinks and a function releasing their
// connections. console receives the console sink's output; pass nil to leave
// it out regardless of configuration.
func Sinks(cfg *config.Config, console io.Writer) ([]alert.Sink, func() error, error) {
	var (
		sinks   []alert.Sink
		closers []closer
	)

	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}

		return errors.Join(errs...)
	}

	if console != nil && cfg.Alert.Console {
		sinks = append(sinks, alert.NewConsole(console, cfg.Alert.Bell))
	}

	if cfg.TwilioEnabled() {
		sinks = append(sinks, sms.New(sms.Config{
			AccountSID: cfg.Alert.TwilioAccountSID,
			AuthToken:  cfg.Alert.TwilioAuthToken,
			From:       cfg.Alert.TwilioFrom,
			To:         cfg.Alert.TwilioTo,
			WhatsApp:   cfg.Alert.TwilioWhatsApp,
		}))
	}

	if cfg.Alert.AMQPURL != "" {
		p, err := amqp.Dial(cfg.Alert.AMQPURL, cfg.Alert.AMQPExchange, cfg.Alert.AMQPRoutingKey)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("amqp sink: %w", err)
		}

		sinks = append(sinks, p)
		closers = append(closers, p)
	}

	if len(cfg.Alert.KafkaBrokers) > 0 {
		p := kafka.New(cfg.Alert.KafkaBrokers, cfg.Alert.KafkaTopic)
		sinks = append(sinks, p)
		closers = append(closers, p)
	}

	for _, s := range sinks {
		slog.Info("alert sink enabled", "sink", s.Name())
	}

	return sinks, closeAll, nil
}

// Package alert delivers notification alerts to the configured sinks once the
// user has allowed it.
package alert

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/salon/internal/notify"
)

var (
	ErrNotPermitted = errors.New("alerts not permitted")
	ErrThrottled    = errors.New("alert dropped by rate limit")
)

// Sink is a destination for alerts.
type Sink interface {
	Name() string
	Send(ctx context.Context, alert notify.Alert) error
}

type GateConfig struct {
	Permitted bool
	// PerMinute caps deliveries; zero disables the limit.
	PerMinute int
	Burst     int
}

// Gate implements notify.Dispatcher. It holds the user's permission and fans
// every alert out to all sinks.
type Gate struct {
	permitted atomic.Bool
	limiter   *rate.Limiter
	sinks     []Sink
}

func NewGate(cfg GateConfig, sinks ...Sink) *Gate {
	g := &Gate{sinks: sinks}
	g.permitted.Store(cfg.Permitted)

	if cfg.PerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.PerMinute
		}

		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), burst)
	}

	return g
}

func (g *Gate) Permitted() bool {
	return g.permitted.Load()
}

func (g *Gate) Grant() {
	g.permitted.Store(true)
}

func (g *Gate) Revoke() {
	g.permitted.Store(false)
}

// Sinks returns the names of the configured sinks.
func (g *Gate) Sinks() []string {
	names := make([]string, 0, len(g.sinks))
	for _, s := range g.sinks {
		names = append(names, s.Name())
	}

	return names
}

// Dispatch sends alert to every sink. Every sink is tried; their errors are
// joined.
func (g *Gate) Dispatch(ctx context.Context, alert notify.Alert) error {
	if !g.Permitted() {
		return ErrNotPermitted
	}

	if g.limiter != nil && !g.limiter.Allow() {
		return fmt.Errorf("%w: %s", ErrThrottled, alert.Key)
	}

	var errs []error

	for _, s := range g.sinks {
		if err := s.Send(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}

	return errors.Join(errs...)
}

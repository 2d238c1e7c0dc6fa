package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// DefaultInterval matches how often the schedule is checked.
const DefaultInterval = 10 * time.Second

// Clock reads the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Source returns the current appointment list. It is called on every tick so
// that scans never work on a stale list.
type Source func() []salon.Appointment

// Poller runs the engine on every tick and dispatches the resulting alerts.
type Poller struct {
	engine     *Engine
	clock      Clock
	source     Source
	dispatcher Dispatcher
	fired      Fired
	interval   time.Duration
	logger     *slog.Logger
}

type PollerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

func NewPoller(engine *Engine, clock Clock, source Source, dispatcher Dispatcher, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Poller{
		engine:     engine,
		clock:      clock,
		source:     source,
		dispatcher: dispatcher,
		fired:      NewFired(),
		interval:   cfg.Interval,
		logger:     cfg.Logger,
	}
}

// Start polls on a real ticker until ctx is done. The ticker is stopped on
// return.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("notification poller started", "interval", p.interval)
	p.Run(ctx, ticker.C)
	p.logger.Info("notification poller stopped")
}

// Run invokes Tick for every value received on ticks until ctx is done or
// ticks is closed.
func (p *Poller) Run(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}

			p.Tick(ctx)
		}
	}
}

// Tick performs a single scan. It returns the alerts that were due, whether
// or not their dispatch succeeded.
func (p *Poller) Tick(ctx context.Context) []Alert {
	if !p.dispatcher.Permitted() {
		return nil
	}

	due := p.engine.Scan(p.clock.Now(), p.source(), p.fired)

	for _, alert := range due {
		if err := p.dispatcher.Dispatch(ctx, alert); err != nil {
			p.logger.Error("failed to dispatch alert", "key", alert.Key, "error", err)
			continue
		}

		p.logger.Info("alert dispatched", "key", alert.Key, "title", alert.Title)
	}

	return due
}

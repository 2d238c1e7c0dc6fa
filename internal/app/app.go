// Package app wires the services shared by the API server and the terminal UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/alert/setup"
	"github.com/MrJamesThe3rd/salon/internal/backup"
	"github.com/MrJamesThe3rd/salon/internal/config"
	"github.com/MrJamesThe3rd/salon/internal/importer"
	"github.com/MrJamesThe3rd/salon/internal/notify"
	"github.com/MrJamesThe3rd/salon/internal/salon"
	"github.com/MrJamesThe3rd/salon/internal/store"
)

type App struct {
	Config   *config.Config
	Location *time.Location

	Salon    *salon.Service
	Importer *importer.Service
	Backup   *backup.Service
	Gate     *alert.Gate
	Poller   *notify.Poller

	kv         store.KV
	closeSinks func() error
}

// New opens the configured store, loads the document and builds the alert
// pipeline. console receives console alerts; extra sinks are appended to the
// configured ones.
func New(ctx context.Context, cfg *config.Config, console io.Writer, extra ...alert.Sink) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(ctx, store.Config{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		DSN:           cfg.Store.DSN,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	salonService := salon.NewService(store.NewDocumentStore(kv, cfg.Store.Key))
	if err := salonService.Open(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("load document: %w", err)
	}

	sinks, closeSinks, err := setup.Sinks(cfg, console)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	gate := alert.NewGate(alert.GateConfig{
		Permitted: cfg.Notify.Permitted,
		PerMinute: cfg.Notify.PerMinute,
		Burst:     cfg.Notify.Burst,
	}, append(sinks, extra...)...)

	poller := notify.NewPoller(
		notify.NewEngine(loc),
		notify.SystemClock{},
		salonService.Appointments,
		gate,
		notify.PollerConfig{Interval: cfg.Notify.Interval},
	)

	return &App{
		Config:     cfg,
		Location:   loc,
		Salon:      salonService,
		Importer:   importer.NewService(salonService),
		Backup:     backup.NewService(salonService),
		Gate:       gate,
		Poller:     poller,
		kv:         kv,
		closeSinks: closeSinks,
	}, nil
}

// Scheduler returns the backup scheduler, or nil when no schedule is
// configured.
func (a *App) Scheduler() (*backup.Scheduler, error) {
	if a.Config.Backup.Schedule == "" {
		return nil, nil
	}

	return backup.NewScheduler(a.Backup, backup.SchedulerConfig{
		Spec:     a.Config.Backup.Schedule,
		Dir:      a.Config.Backup.Dir,
		Keep:     a.Config.Backup.Keep,
		Location: a.Location,
	})
}

// Run starts the notification poller and, when configured, the backup
// scheduler. It blocks until ctx is done and both have stopped, so Close may
// be called once it returns.
func (a *App) Run(ctx context.Context) error {
	scheduler, err := a.Scheduler()
	if err != nil {
		return fmt.Errorf("backup scheduler: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Poller.Start(gctx)
		return nil
	})

	if scheduler != nil {
		g.Go(func() error {
			scheduler.Run(gctx)
			return nil
		})
	}

	return g.Wait()
}

func (a *App) Close() error {
	err := errors.Join(a.closeSinks(), a.kv.Close())
	if err != nil {
		slog.Error("failed to close resources", "error", err)
	}

	return err
}

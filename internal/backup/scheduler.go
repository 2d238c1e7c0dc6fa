package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type SchedulerConfig struct {
	// Spec is a standard five field cron expression, e.g. "0 22 * * *".
	Spec     string
	Dir      string
	Keep     int
	Location *time.Location
	Logger   *slog.Logger
}

// Scheduler writes backups on a cron schedule.
type Scheduler struct {
	svc    *Service
	cron   *cron.Cron
	dir    string
	keep   int
	logger *slog.Logger
}

func NewScheduler(svc *Service, cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Scheduler{
		svc:    svc,
		cron:   cron.New(cron.WithLocation(cfg.Location)),
		dir:    cfg.Dir,
		keep:   cfg.Keep,
		logger: cfg.Logger,
	}

	if _, err := s.cron.AddFunc(cfg.Spec, func() { s.RunOnce(time.Now()) }); err != nil {
		return nil, fmt.Errorf("parsing backup schedule %q: %w", cfg.Spec, err)
	}

	return s, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running backup to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("backup scheduler started", "dir", s.dir)

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info("backup scheduler stopped")
}

// RunOnce writes a backup and prunes old ones. Failures are logged.
func (s *Scheduler) RunOnce(now time.Time) {
	path, err := s.svc.WriteFile(s.dir, now)
	if err != nil {
		s.logger.Error("scheduled backup failed", "error", err)
		return
	}

	s.logger.Info("scheduled backup written", "path", path)

	removed, err := Prune(s.dir, s.keep)
	if err != nil {
		s.logger.Error("failed to prune backups", "error", err)
		return
	}

	if len(removed) > 0 {
		s.logger.Info("pruned old backups", "count", len(removed))
	}
}

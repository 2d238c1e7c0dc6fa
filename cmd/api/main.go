package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/salon/internal/app"
	"github.com/MrJamesThe3rd/salon/internal/config"
	salonHttp "github.com/MrJamesThe3rd/salon/internal/http"
	appointmentHandler "github.com/MrJamesThe3rd/salon/internal/http/appointment"
	backupHandler "github.com/MrJamesThe3rd/salon/internal/http/backup"
	clientHandler "github.com/MrJamesThe3rd/salon/internal/http/client"
	financeHandler "github.com/MrJamesThe3rd/salon/internal/http/finance"
	notificationHandler "github.com/MrJamesThe3rd/salon/internal/http/notification"
	procedureHandler "github.com/MrJamesThe3rd/salon/internal/http/procedure"
	"github.com/MrJamesThe3rd/salon/internal/logging"
	"github.com/MrJamesThe3rd/salon/internal/notify"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format, cfg.App.Name)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		clientH       = clientHandler.NewHandler(a.Salon, a.Importer)
		procedureH    = procedureHandler.NewHandler(a.Salon)
		appointmentH  = appointmentHandler.NewHandler(a.Salon)
		financeH      = financeHandler.NewHandler(a.Salon, a.Location)
		backupH       = backupHandler.NewHandler(a.Backup)
		notificationH = notificationHandler.NewHandler(a.Gate, notify.DefaultOffsets(), cfg.Notify.Interval)
	)

	router := salonHttp.New(salonHttp.Handlers{
		Clients:       clientH,
		Procedures:    procedureH,
		Appointments:  appointmentH,
		Finance:       financeH,
		Backup:        backupH,
		Notifications: notificationH,
	}, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.Run(gctx)
	})

	return g.Wait()
}

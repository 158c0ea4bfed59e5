package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/config"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/db"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/jobs"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/realtime"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
)

const shutdownTimeout = 10 * time.Second

var sweepOnlyFlag = flag.Bool("sweep-only", false, "Remove expired sessions and exit")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.ServiceName, cfg.App.LogLevel, cfg.App.Dev)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.ILogger) error {
	conn, err := db.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			log.Warning("close database", logger.Error(err))
		}
	}()

	store, err := sessionStore(conn)
	if err != nil {
		return err
	}
	sessions := session.NewManager(store, cfg.Session.TTL, session.WithLogger(log.With(logger.String("component", "session"))))

	if *sweepOnlyFlag {
		jobs.SweepOnce(context.Background(), sessions, log)
		return nil
	}

	hub := realtime.NewHub(log.With(logger.String("component", "realtime")))
	detach := hub.Attach(sessions)
	defer detach()

	scheduler := jobs.NewScheduler(log.With(logger.String("component", "jobs")))
	if err := scheduler.EverySweep(cfg.Session.SweepSchedule, sessions); err != nil {
		return err
	}
	scheduler.Start()

	client := api.New(cfg.Backend.BaseURL,
		api.WithTimeout(cfg.Backend.Timeout),
		api.WithLogger(log.With(logger.String("component", "api"))),
	)

	app := NewApp(Deps{
		Config:   cfg,
		Log:      log,
		API:      client,
		Sessions: sessions,
		DB:       conn,
		Hub:      hub,
	})

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddress(),
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Zap(log).Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			logger.String("addr", srv.Addr),
			logger.String("backend", cfg.Backend.BaseURL),
			logger.String("sessions", cfg.Session.Driver),
			logger.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

// sessionStore picks the store backing the session manager.
func sessionStore(conn *gorm.DB) (session.Store, error) {
	if conn == nil {
		return session.NewMemoryStore(), nil
	}
	return session.NewGormStore(conn)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"eventdesk/internal/app"
	"eventdesk/internal/attendee/handler"
	attendeemetrics "eventdesk/internal/attendee/metrics"
	"eventdesk/internal/platform/config"
	"eventdesk/internal/platform/httpserver"
	"eventdesk/internal/platform/logger"
	"eventdesk/internal/platform/metrics"
	"eventdesk/pkg/platform/httputil"
	"eventdesk/pkg/platform/middleware/metadata"
	"eventdesk/pkg/platform/middleware/requesttime"
)

// main wires configuration, the attendee desk and the HTTP router, then
// serves until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		slog.Error("eventdesk exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	desk, err := app.Build(ctx, cfg, log,
		app.WithMetrics(attendeemetrics.New()),
		app.WithAsyncAudit(),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := desk.Close(); err != nil {
			log.Warn("failed to release resources", "error", err)
		}
	}()

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health(desk))
	handler.New(desk.Manager, log, metrics.New()).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.ShutdownTimeout, log)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("eventdesk stopped")
	return nil
}

// health reports ok, and checks Redis when it backs the store.
func health(desk *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "store": desk.StoreKind}
		if desk.Redis != nil {
			if err := desk.Redis.Reachable(r.Context()); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
				httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["redis"] = "ok"
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}

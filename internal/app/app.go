// Package app assembles the attendee desk from configuration. Both the HTTP
// server and the command-line tool build their manager through Build.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"eventdesk/internal/attendee/identifier"
	attendeemetrics "eventdesk/internal/attendee/metrics"
	"eventdesk/internal/attendee/service"
	"eventdesk/internal/attendee/store"
	"eventdesk/internal/platform/config"
	"eventdesk/internal/platform/redis"
	auditfile "eventdesk/pkg/platform/audit/store/file"
	"eventdesk/pkg/platform/audit/publisher"
)

// App owns the manager and the resources it depends on.
type App struct {
	Manager   *service.Manager
	Audit     *publisher.Publisher
	AuditLog  *auditfile.Store
	Redis     *redis.Client
	StoreKind string
}

type options struct {
	metrics *attendeemetrics.Metrics
	async   bool
}

type Option func(*options)

// WithMetrics records desk metrics on m.
func WithMetrics(m *attendeemetrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithAsyncAudit writes audit events through the buffered worker sized by
// cfg.AuditBuffer. Short-lived processes leave it off and write inline.
func WithAsyncAudit() Option {
	return func(o *options) {
		o.async = true
	}
}

// Build opens the configured store, loads the registry and wires the audit
// trail. Callers must Close the result.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	generator, err := identifier.New(identifier.Kind(cfg.CredentialKind))
	if err != nil {
		return nil, err
	}

	a := &App{StoreKind: cfg.Store}
	var st store.Store
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Dial(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.Redis = client
		st = store.NewRedisStore(client)
	default:
		st = store.NewFileStore(cfg.DataDir)
	}

	a.AuditLog = auditfile.New(cfg.DataDir)
	pubOpts := []publisher.Option{publisher.WithLogger(logger)}
	if o.async && cfg.AuditBuffer > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.AuditBuffer))
	}
	a.Audit = publisher.NewPublisher(a.AuditLog, pubOpts...)

	mgrOpts := []service.Option{
		service.WithLogger(logger),
		service.WithAuditPublisher(a.Audit),
		service.WithCredentialDir(cfg.CredentialPath()),
		service.WithReportDir(cfg.DataDir),
	}
	if o.metrics != nil {
		mgrOpts = append(mgrOpts, service.WithMetrics(o.metrics))
	}
	a.Manager, err = service.New(ctx, st, generator, mgrOpts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "attendee desk ready",
		"store", cfg.Store,
		"data_dir", cfg.DataDir,
		"credentials", cfg.CredentialKind,
	)
	return a, nil
}

// Close drains the audit queue and releases the Redis connection.
func (a *App) Close() error {
	if a.Audit != nil {
		a.Audit.Close()
	}
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}

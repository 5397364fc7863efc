// Package service holds the event manager: the single owner of the attendee
// registry. Every read and every read-modify-persist sequence runs under one
// lock, and persistence completes before an operation reports success.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventdesk/internal/attendee/identifier"
	"eventdesk/internal/attendee/metrics"
	"eventdesk/internal/attendee/models"
	"eventdesk/internal/attendee/store"
	"eventdesk/pkg/attrs"
	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/platform/audit"
	"eventdesk/pkg/platform/sentinel"
	"eventdesk/pkg/requestcontext"
)

// maxIdentifierAttempts bounds re-generation when a new identifier collides.
const maxIdentifierAttempts = 8

// DefaultCredentialDir is where credentials go when no directory is configured.
const DefaultCredentialDir = "generated_ids"

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Manager coordinates the registry, its store and the identifier generator.
type Manager struct {
	mu        sync.Mutex
	registry  *models.Registry
	store     store.Store
	generator identifier.Generator

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	clock          func() time.Time
	credentialDir  string
	reportDir      string
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(m *Manager) {
		m.auditPublisher = publisher
	}
}

// WithClock overrides the request clock. Without it the manager uses
// requestcontext.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.clock = now
	}
}

// WithCredentialDir sets where EmitCredential writes.
func WithCredentialDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.credentialDir = dir
		}
	}
}

// WithReportDir sets where ExportReportFile writes when given no path.
func WithReportDir(dir string) Option {
	return func(m *Manager) {
		m.reportDir = dir
	}
}

// New loads the registry from st. A snapshot that cannot be trusted fails
// with CodeCorruptData; nothing is repaired.
func New(ctx context.Context, st store.Store, generator identifier.Generator, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:         st,
		generator:     generator,
		logger:        slog.Default(),
		credentialDir: DefaultCredentialDir,
		reportDir:     ".",
	}
	for _, opt := range opts {
		opt(m)
	}

	reg, err := st.Load(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrCorrupt) {
			m.logger.ErrorContext(ctx, "attendee snapshot is corrupt", "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeCorruptData, "attendee snapshot is corrupt")
		}
		m.logger.ErrorContext(ctx, "failed to load attendees", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeIOFailure, "failed to load attendees")
	}
	m.registry = reg
	m.logger.InfoContext(ctx, "attendees loaded", "count", reg.Len())
	return m, nil
}

// CredentialDir returns where credentials are written.
func (m *Manager) CredentialDir() string {
	return m.credentialDir
}

func (m *Manager) now(ctx context.Context) time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return requestcontext.Now(ctx)
}

// persist saves reg, mapping any failure to CodeIOFailure.
func (m *Manager) persist(ctx context.Context, reg *models.Registry) error {
	if err := m.store.Save(ctx, reg); err != nil {
		m.logger.ErrorContext(ctx, "failed to persist attendees",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.Wrap(err, dErrors.CodeIOFailure, "failed to save attendees")
	}
	return nil
}

// backup writes a snapshot copy and records it. Callers hold the lock.
func (m *Manager) backup(ctx context.Context, manual bool) (string, error) {
	path, err := m.store.Backup(ctx, manual)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to back up attendees",
			"manual", manual,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", dErrors.Wrap(err, dErrors.CodeIOFailure, "failed to back up attendees")
	}
	if path == "" {
		m.logger.InfoContext(ctx, "no snapshot to back up", "manual", manual)
		return "", nil
	}
	m.logAudit(ctx, audit.EventBackupCreated, "detail", path)
	if m.metrics != nil {
		m.metrics.IncrementBackup(manual)
	}
	return path, nil
}

// allocateIdentifier returns a generated identifier not present in reg.
func (m *Manager) allocateIdentifier(reg *models.Registry) (string, error) {
	for range maxIdentifierAttempts {
		id, err := m.generator.Generate()
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate identifier")
		}
		if !reg.HasIdentifier(id) {
			return id, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInternal,
		fmt.Sprintf("no free identifier after %d attempts", maxIdentifierAttempts))
}

func notFound(id string) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("attendee %s not found", id))
}

// reject logs a refused operation and counts it. Expected outcomes log at
// Info, faults at Error.
func (m *Manager) reject(ctx context.Context, op string, err error, args ...any) error {
	args = append(args,
		"operation", op,
		"code", dErrors.CodeOf(err),
		"request_id", requestcontext.RequestID(ctx),
	)
	if dErrors.IsFault(err) {
		m.logger.ErrorContext(ctx, dErrors.Message(err), append(args, "error", err)...)
	} else {
		m.logger.InfoContext(ctx, dErrors.Message(err), args...)
	}
	if m.metrics != nil {
		m.metrics.IncrementRejection(op, string(dErrors.CodeOf(err)))
	}
	return err
}

func (m *Manager) observe(op string, start time.Time) {
	if m.metrics != nil {
		m.metrics.ObserveOperation(op, start)
	}
}

// logAudit logs event and hands it to the audit publisher. Attributes use
// slog key/value pairs; "identifier" and "detail" populate the event.
func (m *Manager) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	m.logger.InfoContext(ctx, string(event), args...)
	if m.auditPublisher == nil {
		return
	}
	e := audit.NewEvent(event, attrs.ExtractString(attributes, "identifier"), attrs.ExtractString(attributes, "detail"))
	e.Timestamp = m.now(ctx)
	if err := m.auditPublisher.Emit(ctx, e); err != nil {
		m.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

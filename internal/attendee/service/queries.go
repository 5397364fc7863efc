package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"eventdesk/internal/attendee/identifier"
	"eventdesk/internal/attendee/models"
	"eventdesk/internal/attendee/report"
	dErrors "eventdesk/pkg/domain-errors"
	pstrings "eventdesk/pkg/platform/strings"
)

// Get returns a copy of the attendee stored under id.
func (m *Manager) Get(ctx context.Context, id string) (*models.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.registry.Get(id)
	if !ok {
		return nil, m.reject(ctx, "get", notFound(id), "identifier", id)
	}
	return a.Clone(), nil
}

// List returns copies of every attendee in insertion order.
func (m *Manager) List(_ context.Context) []*models.Attendee {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Search matches query, ignoring case, against name, email, phone, role and
// identifier. A blank query returns everyone.
func (m *Manager) Search(_ context.Context, query string) []*models.Attendee {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*models.Attendee{}
	for _, a := range m.registry.All() {
		if pstrings.AnyContainsFold(query, a.SearchFields()...) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Stats aggregates the registry.
func (m *Manager) Stats(_ context.Context) models.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.ComputeStats(m.registry.All())
}

// ExportReport writes a kind report of the current registry to w.
func (m *Manager) ExportReport(ctx context.Context, kind report.Kind, w io.Writer) error {
	start := time.Now()
	defer m.observe("export_report", start)

	kind, err := m.parseKind(ctx, kind)
	if err != nil {
		return err
	}
	m.mu.Lock()
	attendees := m.snapshot()
	m.mu.Unlock()

	if err := report.Write(w, kind, attendees); err != nil {
		return dErrors.Wrap(err, dErrors.CodeIOFailure, "failed to write report")
	}
	return nil
}

// ExportReportFile writes a kind report to path, or to the default report
// name in the report directory when path is empty, and returns where it went.
func (m *Manager) ExportReportFile(ctx context.Context, kind report.Kind, path string) (string, error) {
	kind, err := m.parseKind(ctx, kind)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = filepath.Join(m.reportDir, report.FileName(kind, m.now(ctx)))
	}
	var buf bytes.Buffer
	if err := m.ExportReport(ctx, kind, &buf); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeIOFailure, "failed to create report directory")
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIOFailure, fmt.Sprintf("failed to write report %s", path))
	}
	m.logger.InfoContext(ctx, "report exported", "kind", string(kind), "path", path)
	return path, nil
}

func (m *Manager) parseKind(ctx context.Context, kind report.Kind) (report.Kind, error) {
	k, err := report.ParseKind(string(kind))
	if err != nil {
		return "", m.reject(ctx, "export_report", dErrors.Wrap(err, dErrors.CodeBadRequest, err.Error()))
	}
	return k, nil
}

// ManualBackup copies the current snapshot. With nothing saved yet it
// returns "" and writes nothing.
func (m *Manager) ManualBackup(ctx context.Context) (string, error) {
	start := time.Now()
	defer m.observe("backup", start)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backup(ctx, true)
}

// Credential renders the attendee's credential without writing it.
func (m *Manager) Credential(ctx context.Context, id string) (*identifier.Credential, error) {
	a, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := m.generator.Render(a)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render credential")
	}
	return c, nil
}

// snapshot copies the registry. Callers hold the lock.
func (m *Manager) snapshot() []*models.Attendee {
	all := m.registry.All()
	out := make([]*models.Attendee, len(all))
	for i, a := range all {
		out[i] = a.Clone()
	}
	return out
}

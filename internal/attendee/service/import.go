package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"eventdesk/internal/attendee/importer"
	"eventdesk/internal/attendee/models"
	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/platform/audit"
	"eventdesk/pkg/requestcontext"
)

// Import adds every complete row whose email is new to the registry and the
// batch. Rows are staged on a copy: a failure on any row leaves the registry,
// the snapshot and the credential directory as they were. On success the
// registry is saved once and one automatic backup is taken.
func (m *Manager) Import(ctx context.Context, rows []models.ImportRow, emit bool) (*models.ImportResult, error) {
	start := time.Now()
	defer m.observe("import", start)

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := m.registry.Clone()
	result := &models.ImportResult{Attendees: []*models.Attendee{}}

	for _, row := range rows {
		result.Total++
		row.Normalize()
		if !row.Complete() {
			result.Invalid++
			continue
		}
		if staged.HasEmail(row.Email) {
			result.Skipped++
			continue
		}
		a, err := m.newAttendee(staged, row)
		if err != nil {
			m.discardArtifacts(ctx, result.Artifacts)
			return nil, err
		}
		if emit {
			path, err := m.generator.EmitCredential(a, m.credentialDir)
			if err != nil {
				m.discardArtifacts(ctx, result.Artifacts)
				m.logger.ErrorContext(ctx, "credential emission failed, import aborted",
					"email", a.Email,
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				return nil, dErrors.Wrap(err, dErrors.CodeIOFailure,
					fmt.Sprintf("failed to write credential for %s", a.Email))
			}
			result.Artifacts = append(result.Artifacts, path)
		}
		if err := staged.Add(a); err != nil {
			m.discardArtifacts(ctx, result.Artifacts)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to stage attendee")
		}
		result.Imported++
		result.Attendees = append(result.Attendees, a.Clone())
	}

	if err := m.persist(ctx, staged); err != nil {
		m.discardArtifacts(ctx, result.Artifacts)
		return nil, err
	}
	m.registry = staged

	if _, err := m.backup(ctx, false); err != nil {
		// The import itself is committed; a failed copy does not undo it.
		m.logger.WarnContext(ctx, "import committed without automatic backup", "error", err)
	}

	m.logAudit(ctx, audit.EventAttendeesImported,
		"detail", fmt.Sprintf("added=%d skipped=%d invalid=%d", result.Imported, result.Skipped, result.Invalid),
		"total", result.Total,
	)
	if m.metrics != nil {
		m.metrics.RecordImport(result.Imported, result.Skipped, result.Invalid)
	}
	return result, nil
}

// ImportCSV decodes header-driven CSV and imports the rows.
func (m *Manager) ImportCSV(ctx context.Context, r io.Reader, emit bool) (*models.ImportResult, error) {
	rows, err := importer.Decode(r)
	if err != nil {
		return nil, m.reject(ctx, "import", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid csv"))
	}
	return m.Import(ctx, rows, emit)
}

// Register adds a single attendee outside a bulk import.
func (m *Manager) Register(ctx context.Context, row models.ImportRow, emit bool) (*models.Attendee, error) {
	start := time.Now()
	defer m.observe("register", start)

	row.Normalize()
	if !row.Complete() {
		return nil, m.reject(ctx, "register", dErrors.New(dErrors.CodeValidation, "name and email are required"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registry.HasEmail(row.Email) {
		return nil, m.reject(ctx, "register", dErrors.New(dErrors.CodeDuplicateEmail,
			fmt.Sprintf("an attendee with email %s already exists", row.Email)))
	}
	staged := m.registry.Clone()
	a, err := m.newAttendee(staged, row)
	if err != nil {
		return nil, err
	}
	var artifact string
	if emit {
		artifact, err = m.generator.EmitCredential(a, m.credentialDir)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeIOFailure,
				fmt.Sprintf("failed to write credential for %s", a.Email))
		}
	}
	if err := staged.Add(a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to stage attendee")
	}
	if err := m.persist(ctx, staged); err != nil {
		m.discardArtifacts(ctx, []string{artifact})
		return nil, err
	}
	m.registry = staged

	m.logAudit(ctx, audit.EventAttendeeRegistered, "identifier", a.Identifier)
	if m.metrics != nil {
		m.metrics.RecordImport(1, 0, 0)
	}
	return a.Clone(), nil
}

func (m *Manager) newAttendee(reg *models.Registry, row models.ImportRow) (*models.Attendee, error) {
	id, err := m.allocateIdentifier(reg)
	if err != nil {
		return nil, err
	}
	a, err := models.NewAttendee(id, row.Name, row.Email, row.Phone, row.Role)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// discardArtifacts removes credentials written for an aborted batch.
func (m *Manager) discardArtifacts(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			m.logger.WarnContext(ctx, "failed to remove credential from aborted import",
				"path", p,
				"error", err,
			)
		}
	}
}

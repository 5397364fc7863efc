// Package identifier issues attendee identifiers and writes the per-attendee
// credential that carries them.
package identifier

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eventdesk/internal/attendee/models"
	"eventdesk/pkg/email"
)

// Generator produces unique identifiers and emits printable credentials.
// Implementations must not mutate the attendee.
type Generator interface {
	// Generate returns a new opaque token. Uniqueness against the registry is
	// the caller's concern; collisions are handled by retrying.
	Generate() (string, error)
	// EmitCredential writes the credential for a into dir and returns its path.
	EmitCredential(a *models.Attendee, dir string) (string, error)
	// Render returns the credential without touching the filesystem.
	Render(a *models.Attendee) (*Credential, error)
}

// Credential is a rendered credential document.
type Credential struct {
	ContentType string
	Ext         string
	Body        []byte
}

// Kind selects a Generator implementation.
type Kind string

const (
	KindToken Kind = "token"
	KindQR    Kind = "qr"
)

// New builds the generator for kind.
func New(kind Kind) (Generator, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case KindToken, "":
		return NewTokenGenerator(), nil
	case KindQR:
		return NewQRGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown credential kind %q", kind)
	}
}

// writeCredential writes c to dir/<email stem>.<ext>, creating dir when
// missing. See email.FileStem for how addresses become file names.
func writeCredential(a *models.Attendee, c *Credential, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create credential dir: %w", err)
	}
	path := filepath.Join(dir, email.FileStem(a.Email)+"."+c.Ext)
	if err := os.WriteFile(path, c.Body, 0o644); err != nil {
		return "", fmt.Errorf("write credential: %w", err)
	}
	return path, nil
}

// Package file appends audit events to a JSON Lines log next to the snapshot.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	audit "eventdesk/pkg/platform/audit"
)

// LogName is the audit log file name inside the data directory.
const LogName = "audit.jsonl"

type Store struct {
	mu   sync.Mutex
	path string
}

func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, LogName)}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes event as one line. The file is opened per call so external
// rotation is picked up.
func (s *Store) Append(_ context.Context, event audit.Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append audit event: %w", err)
	}
	return f.Close()
}

func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []audit.Event
	for _, e := range all {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll reads the whole log. A missing log is empty.
func (s *Store) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var out []audit.Event
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e audit.Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("decode audit line %d: %w", n, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return out, nil
}

// Package store persists the attendee registry as a single JSON snapshot and
// keeps timestamped backups of it.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"eventdesk/internal/attendee/models"
	"eventdesk/pkg/platform/sentinel"
)

// Store loads and saves the whole registry. Implementations return
// sentinel.ErrCorrupt for snapshots that cannot be trusted; every other
// failure is an I/O fault.
type Store interface {
	Load(ctx context.Context) (*models.Registry, error)
	Save(ctx context.Context, reg *models.Registry) error
	// Backup copies the current snapshot and returns where it went. With no
	// snapshot yet it does nothing and returns "".
	Backup(ctx context.Context, manual bool) (string, error)
}

const backupStampLayout = "20060102_150405"

// backupPrefix names automatic and operator-requested backups apart.
func backupPrefix(manual bool) string {
	if manual {
		return "manual_backup"
	}
	return "backup"
}

// Encode writes reg as an indented JSON object keyed by identifier, in
// registry order. encoding/json sorts map keys, so the object is assembled
// by hand to keep insertion order.
func Encode(reg *models.Registry) ([]byte, error) {
	var buf bytes.Buffer
	all := reg.All()
	if len(all) == 0 {
		return []byte("{}\n"), nil
	}
	buf.WriteString("{\n")
	for i, a := range all {
		key, err := json.Marshal(a.Identifier)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", a.Identifier, err)
		}
		rec, err := json.MarshalIndent(a.ToRecord(), "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode attendee %q: %w", a.Identifier, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(rec)
		if i < len(all)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Decode rebuilds a registry from a snapshot, keeping the object's key order.
func Decode(r io.Reader) (*models.Registry, error) {
	dec := json.NewDecoder(r)
	reg := models.NewRegistry()

	tok, err := dec.Token()
	if err != nil {
		return nil, corrupt("read snapshot", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, corrupt("read snapshot", fmt.Errorf("expected object, got %v", tok))
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, corrupt("read key", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, corrupt("read key", fmt.Errorf("unexpected token %v", tok))
		}
		var rec models.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, corrupt(fmt.Sprintf("read record %q", key), err)
		}
		a, err := models.FromRecord(key, rec)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(a); err != nil {
			return nil, corrupt(fmt.Sprintf("record %q", key), err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, corrupt("read snapshot", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, corrupt("read snapshot", errors.New("trailing data after object"))
	}
	return reg, nil
}

func corrupt(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, sentinel.ErrCorrupt)
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used to stamp backups.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

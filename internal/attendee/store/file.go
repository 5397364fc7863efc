package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"eventdesk/internal/attendee/models"
)

// SnapshotName is the file the registry lives in under the data directory.
const SnapshotName = "attendees.json"

// FileStore keeps the snapshot and its backups in one directory.
type FileStore struct {
	dir     string
	options options

	// rename is swapped in tests to simulate a failed commit.
	rename func(oldpath, newpath string) error
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	return &FileStore{
		dir:     dir,
		options: buildOptions(opts),
		rename:  os.Rename,
	}
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// SnapshotPath returns the full path of the snapshot file.
func (s *FileStore) SnapshotPath() string {
	return filepath.Join(s.dir, SnapshotName)
}

// Load reads the snapshot. A missing file is an empty registry.
func (s *FileStore) Load(_ context.Context) (*models.Registry, error) {
	raw, err := os.ReadFile(s.SnapshotPath())
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(bytes.NewReader(raw))
}

// Save replaces the snapshot atomically. On failure the previous snapshot is
// left as it was.
func (s *FileStore) Save(_ context.Context, reg *models.Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return s.writeAtomic(s.SnapshotPath(), data)
}

// Backup copies the snapshot to <prefix>_YYYYMMDD_HHMMSS.json.
func (s *FileStore) Backup(_ context.Context, manual bool) (string, error) {
	raw, err := os.ReadFile(s.SnapshotPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}
	stamp := s.options.now().Format(backupStampLayout)
	base := fmt.Sprintf("%s_%s", backupPrefix(manual), stamp)
	path := filepath.Join(s.dir, base+".json")
	for n := 1; ; n++ {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d.json", base, n))
	}
	if err := s.writeAtomic(path, raw); err != nil {
		return "", err
	}
	return path, nil
}

func (s *FileStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := s.rename(tmpName, path); err != nil {
		return fmt.Errorf("commit %s: %w", path, err)
	}
	committed = true
	return nil
}

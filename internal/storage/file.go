package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roundsight/predictor/models"
)

// File persists the snapshot as a single JSON document. Saves go through
// a temp file and a rename so readers never observe a partial write.
type File struct {
	path string
}

// NewFile creates a store backed by the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the snapshot. A missing file is first-run state.
func (f *File) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.EmptySnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	if snap.PatternScores == nil {
		snap.PatternScores = make(map[models.PatternKind]models.PatternStats)
	}
	return &snap, nil
}

// Save overwrites the snapshot file atomically.
func (f *File) Save(snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error {
	return nil
}

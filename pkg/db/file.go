package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/flatfile"
)

// FileDB stores the roster in a single CSV or JSON file
type FileDB struct {
	path  string
	codec flatfile.Codec
}

// NewFileDB creates a file-backed database. format may be empty to infer it from the extension
func NewFileDB(path, format string) (*FileDB, error) {
	codec, err := flatfile.CodecFor(format, path)
	if err != nil {
		return nil, err
	}
	return &FileDB{path: path, codec: codec}, nil
}

// Path returns the autosave path
func (db *FileDB) Path() string {
	return db.path
}

// LoadVolunteers reads the roster file. A missing file yields an empty roster
func (db *FileDB) LoadVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	volunteers, err := flatfile.Load(db.path, db.codec)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteers: %w", err)
	}
	return volunteers, nil
}

// SaveVolunteers overwrites the roster file
func (db *FileDB) SaveVolunteers(ctx context.Context, volunteers []model.Volunteer) error {
	if err := flatfile.Save(db.path, db.codec, volunteers); err != nil {
		return fmt.Errorf("failed to save volunteers: %w", err)
	}
	return nil
}

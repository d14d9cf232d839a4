// Package roster holds the ordered in-memory list of volunteers and keeps it
// in step with a storage backend: every mutation is written through before it
// returns, and rolled back if the write fails.
package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/db"
)

// ErrNotFound is returned when an index or ID does not refer to a record
var ErrNotFound = errors.New("volunteer not found")

// PersistenceError reports a mutation that could not be written to the backend.
// The in-memory roster has been restored to its previous state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store is the canonical ordered roster
type Store struct {
	database db.Database
	logger   *zap.Logger
	records  []model.Volunteer
}

// Open loads the roster from the database
func Open(ctx context.Context, database db.Database, logger *zap.Logger) (*Store, error) {
	records, err := database.LoadVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	logger.Debug("Roster loaded", zap.Int("count", len(records)))

	return &Store{
		database: database,
		logger:   logger,
		records:  records,
	}, nil
}

// All returns a copy of the roster in order
func (s *Store) All() []model.Volunteer {
	out := make([]model.Volunteer, len(s.records))
	for i, v := range s.records {
		out[i] = v.Clone()
	}
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// IndexOf returns the position of the record with the given ID, or -1
func (s *Store) IndexOf(id string) int {
	for i, v := range s.records {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the record with the given ID
func (s *Store) Get(id string) (model.Volunteer, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Volunteer{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[i].Clone(), nil
}

// Add appends a record and persists the roster
func (s *Store) Add(ctx context.Context, v model.Volunteer) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if s.IndexOf(v.ID) >= 0 {
		return fmt.Errorf("volunteer %s already exists", v.ID)
	}

	return s.mutate(ctx, "add", func(records []model.Volunteer) []model.Volunteer {
		return append(records, v.Clone())
	})
}

// Replace overwrites the record at index and persists the roster
func (s *Store) Replace(ctx context.Context, index int, v model.Volunteer) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrNotFound, index, len(s.records))
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if other := s.IndexOf(v.ID); other >= 0 && other != index {
		return fmt.Errorf("volunteer %s already exists at index %d", v.ID, other)
	}

	return s.mutate(ctx, "replace", func(records []model.Volunteer) []model.Volunteer {
		records[index] = v.Clone()
		return records
	})
}

// Remove deletes the record at index and persists the roster
func (s *Store) Remove(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrNotFound, index, len(s.records))
	}

	return s.mutate(ctx, "remove", func(records []model.Volunteer) []model.Volunteer {
		return append(records[:index], records[index+1:]...)
	})
}

// ReplaceByID overwrites the record with the given ID. The replacement keeps that ID
func (s *Store) ReplaceByID(ctx context.Context, id string, v model.Volunteer) error {
	i := s.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	v.ID = id
	return s.Replace(ctx, i, v)
}

// RemoveByID deletes the record with the given ID
func (s *Store) RemoveByID(ctx context.Context, id string) error {
	i := s.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Remove(ctx, i)
}

// mutate applies fn to a copy of the roster, persists the result and only then
// swaps it in, so a failed write leaves the store unchanged
func (s *Store) mutate(ctx context.Context, op string, fn func([]model.Volunteer) []model.Volunteer) error {
	next := make([]model.Volunteer, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = fn(next)

	if err := s.database.SaveVolunteers(ctx, next); err != nil {
		s.logger.Error("Failed to persist roster, change discarded",
			zap.String("op", op),
			zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}

	s.records = next
	s.logger.Debug("Roster persisted", zap.String("op", op), zap.Int("count", len(next)))
	return nil
}

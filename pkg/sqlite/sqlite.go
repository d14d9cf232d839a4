// Package sqlite stores the roster in a local SQLite file using the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB stores the roster in SQLite
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite file at path and applies migrations
func Open(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// Single writer
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB, path: path}
	if err := db.runMigrations(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying database handle
func (d *DB) Close() error {
	return d.db.Close()
}

// LoadVolunteers retrieves the roster in stored order
func (d *DB) LoadVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, phone, registered, interests, availability, experience, message
		FROM volunteer
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := []model.Volunteer{}
	for rows.Next() {
		var v model.Volunteer
		var interests string
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Registered,
			&interests, &v.Availability, &v.Experience, &v.Message); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		if err := json.Unmarshal([]byte(interests), &v.Interests); err != nil {
			return nil, fmt.Errorf("failed to decode interests for %s: %w", v.ID, err)
		}
		if v.Interests == nil {
			v.Interests = []string{}
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}
	return volunteers, nil
}

// SaveVolunteers replaces the stored roster in a single transaction
func (d *DB) SaveVolunteers(ctx context.Context, volunteers []model.Volunteer) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM volunteer`); err != nil {
		return fmt.Errorf("failed to clear volunteers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO volunteer (id, position, name, email, phone, registered, interests, availability, experience, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range volunteers {
		interests := v.Interests
		if interests == nil {
			interests = []string{}
		}
		encoded, err := json.Marshal(interests)
		if err != nil {
			return fmt.Errorf("failed to encode interests for %s: %w", v.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, v.ID, i, v.Name, v.Email, v.Phone, v.Registered,
			string(encoded), v.Availability, v.Experience, v.Message); err != nil {
			return fmt.Errorf("failed to insert volunteer %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit volunteers: %w", err)
	}
	return nil
}

func (d *DB) runMigrations(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		var n int
		if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE filename = ?`, filename).Scan(&n); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", filename, err)
		}
		if n > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		tx, err := d.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES (?)`, filename); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", filename, err)
		}
	}

	return nil
}

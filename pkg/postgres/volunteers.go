package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

var volunteerColumns = []string{
	"id", "position", "name", "email", "phone", "registered",
	"interests", "availability", "experience", "message",
}

// LoadVolunteers retrieves the roster in stored order
func (d *DB) LoadVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
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
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Registered,
			&v.Interests, &v.Availability, &v.Experience, &v.Message); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
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
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM volunteer`); err != nil {
		return fmt.Errorf("failed to clear volunteers: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"volunteer"}, volunteerColumns,
		pgx.CopyFromSlice(len(volunteers), func(i int) ([]any, error) {
			v := volunteers[i]
			interests := v.Interests
			if interests == nil {
				interests = []string{}
			}
			return []any{v.ID, i, v.Name, v.Email, v.Phone, v.Registered,
				interests, v.Availability, v.Experience, v.Message}, nil
		}))
	if err != nil {
		return fmt.Errorf("failed to insert volunteers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit volunteers: %w", err)
	}
	return nil
}

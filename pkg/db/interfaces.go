package db

import (
	"context"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// Database defines whole-roster persistence.
// FileDB, sqlite.DB and postgres.DB implement this interface.
type Database interface {
	LoadVolunteers(ctx context.Context) ([]model.Volunteer, error)
	SaveVolunteers(ctx context.Context, volunteers []model.Volunteer) error
}

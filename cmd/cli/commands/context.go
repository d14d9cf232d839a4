package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/internal/config"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/render"
	"github.com/jakechorley/volunteer-manager/pkg/roster"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Roster *roster.Store
	Logger *zap.Logger
	Ctx    context.Context
	Theme  render.Theme
	Now    func() time.Time
}

func (app *AppContext) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// resolveVolunteer finds a record by full id or by a unique id prefix, as shown on cards
func resolveVolunteer(app *AppContext, ref string) (model.Volunteer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Volunteer{}, fmt.Errorf("volunteer id must not be empty")
	}
	if v, err := app.Roster.Get(ref); err == nil {
		return v, nil
	}

	var matches []model.Volunteer
	for _, v := range app.Roster.All() {
		if strings.HasPrefix(v.ID, ref) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return model.Volunteer{}, fmt.Errorf("%w: %s", roster.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Volunteer{}, fmt.Errorf("id prefix %q matches %d volunteers", ref, len(matches))
	}
}

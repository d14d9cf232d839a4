package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/internal/config"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// AvailableOn returns the volunteers whose availability option has an
// occurrence on the calendar day of date. Roster order is preserved.
func AvailableOn(volunteers []model.Volunteer, options []config.AvailabilityOption, date time.Time, logger *zap.Logger) ([]model.Volunteer, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	// Resolve each option once
	covers := make(map[string]bool, len(options))
	for _, option := range options {
		ok, err := optionCoversDay(option, day)
		if err != nil {
			return nil, err
		}
		covers[option.Label] = ok
	}
	logger.Debug("Resolved availability options",
		zap.String("date", day.Format("2006-01-02")),
		zap.Any("covers", covers))

	available := []model.Volunteer{}
	for _, v := range volunteers {
		ok, known := covers[v.Availability]
		if !known {
			logger.Warn("Volunteer has unknown availability option",
				zap.String("id", v.ID),
				zap.String("availability", v.Availability))
			continue
		}
		if ok {
			available = append(available, v)
		}
	}

	return available, nil
}

// optionCoversDay reports whether the option's rule has an occurrence on day (midnight UTC)
func optionCoversDay(option config.AvailabilityOption, day time.Time) (bool, error) {
	if option.RRule == "" {
		return false, nil
	}

	ropt, err := rrule.StrToROption(option.RRule)
	if err != nil {
		return false, fmt.Errorf("invalid rrule for availability %q: %w", option.Label, err)
	}
	ropt.Dtstart = day

	rule, err := rrule.NewRRule(*ropt)
	if err != nil {
		return false, fmt.Errorf("invalid rrule for availability %q: %w", option.Label, err)
	}

	next := rule.After(day, true)
	return !next.IsZero() && next.Before(day.AddDate(0, 0, 1)), nil
}

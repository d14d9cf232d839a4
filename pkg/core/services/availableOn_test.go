package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/internal/config"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

func TestAvailableOn(t *testing.T) {
	options := config.Default().AvailabilityOptions
	options = append(options, config.AvailabilityOption{Label: "By arrangement"})

	volunteers := []model.Volunteer{
		{ID: "wd", Name: "Weekday Wendy", Availability: "Weekdays"},
		{ID: "we", Name: "Weekend Will", Availability: "Weekends"},
		{ID: "both", Name: "Both Bo", Availability: "Both Weekends and Weekdays"},
		{ID: "flex", Name: "Flexible Flo", Availability: "Flexible"},
		{ID: "arr", Name: "Arranged Ari", Availability: "By arrangement"},
		{ID: "unknown", Name: "Legacy Lee", Availability: "Mondays only"},
	}

	tests := []struct {
		name string
		date time.Time
		want []string
	}{
		{"saturday", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), []string{"we", "both", "flex"}},
		{"sunday afternoon", time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC), []string{"we", "both", "flex"}},
		{"monday", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), []string{"wd", "both", "flex"}},
		{"friday late", time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC), []string{"wd", "both", "flex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AvailableOn(volunteers, options, tt.date, zap.NewNop())
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, v := range got {
				ids[i] = v.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestAvailableOn_InvalidRule(t *testing.T) {
	options := []config.AvailabilityOption{{Label: "Broken", RRule: "FREQ=SOMETIMES"}}
	_, err := AvailableOn(nil, options, time.Now(), zap.NewNop())
	assert.ErrorContains(t, err, "invalid rrule")
}

func TestAvailableOn_MonthlyRule(t *testing.T) {
	// First Sunday of each month
	options := []config.AvailabilityOption{{Label: "First Sunday", RRule: "FREQ=MONTHLY;BYDAY=1SU"}}
	volunteers := []model.Volunteer{{ID: "a", Availability: "First Sunday"}}

	got, err := AvailableOn(volunteers, options, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = AvailableOn(volunteers, options, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, got)
}

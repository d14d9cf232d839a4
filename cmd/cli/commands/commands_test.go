package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/internal/config"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/db"
	"github.com/jakechorley/volunteer-manager/pkg/flatfile"
	"github.com/jakechorley/volunteer-manager/pkg/render"
	"github.com/jakechorley/volunteer-manager/pkg/roster"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newTestApp opens a roster backed by a CSV file in a temp dir
func newTestApp(t *testing.T, records ...model.Volunteer) (*AppContext, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "volunteers.csv")
	fileDB, err := db.NewFileDB(path, "")
	require.NoError(t, err)
	if len(records) > 0 {
		require.NoError(t, fileDB.SaveVolunteers(context.Background(), records))
	}

	store, err := roster.Open(context.Background(), fileDB, zap.NewNop())
	require.NoError(t, err)

	return &AppContext{
		Cfg:    config.Default(),
		Roster: store,
		Logger: zap.NewNop(),
		Ctx:    context.Background(),
		Theme:  render.Dark(),
		Now:    func() time.Time { return fixedNow },
	}, path
}

func newRootCmd(app *AppContext) *cobra.Command {
	root := &cobra.Command{Use: "cli", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(
		ListVolunteersCmd(app),
		SearchVolunteersCmd(app),
		AddVolunteerCmd(app),
		EditVolunteerCmd(app),
		DeleteVolunteerCmd(app),
		ExportVolunteersCmd(app),
		AvailableOnCmd(app),
		ToggleThemeCmd(app),
		InteractiveCmd(app),
	)
	return root
}

func run(t *testing.T, app *AppContext, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func reload(t *testing.T, path string) []model.Volunteer {
	t.Helper()
	records, err := flatfile.Load(path, flatfile.CSV{})
	require.NoError(t, err)
	return records
}

func person(name, availability string, interests ...string) model.Volunteer {
	v := model.NewVolunteer(fixedNow)
	v.Name = name
	v.Availability = availability
	v.Experience = "Some experience"
	if interests != nil {
		v.Interests = interests
	}
	return v
}

func TestListVolunteers_Empty(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "listVolunteers")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 0 volunteers")
	assert.Contains(t, out, "No volunteers found.")
}

func TestListVolunteers_ShowsEveryRecord(t *testing.T) {
	app, _ := newTestApp(t, person("Jo Bloggs", "Weekdays"), person("Sam Carter", "Weekends"))

	out, err := run(t, app, "listVolunteers")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 volunteers")
	assert.Contains(t, out, "Jo Bloggs")
	assert.Contains(t, out, "Sam Carter")
}

func TestAddVolunteer_PersistsRecord(t *testing.T) {
	app, path := newTestApp(t)

	out, err := run(t, app, "addVolunteer",
		"--name", "  Jo Bloggs ",
		"--email", "jo@example.com",
		"--availability", "Weekends",
		"--interest", "kitchen",
		"--interest", "driving",
		"--interest", "kitchen",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Added Jo Bloggs")

	records := reload(t, path)
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, "Jo Bloggs", got.Name)
	assert.Equal(t, "jo@example.com", got.Email)
	assert.Equal(t, "Weekends", got.Availability)
	assert.Equal(t, "No prior experience", got.Experience)
	assert.Equal(t, "2026-03-14 09:30:00", got.Registered)
	assert.Equal(t, []string{"kitchen", "driving"}, got.Interests)
	assert.NotEmpty(t, got.ID)
}

func TestAddVolunteer_RequiresName(t *testing.T) {
	app, path := newTestApp(t)

	_, err := run(t, app, "addVolunteer", "--name", "   ", "--email", "x@example.com")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, 0, app.Roster.Len())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestAddVolunteer_RejectsUnknownOption(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := run(t, app, "addVolunteer", "--name", "Jo", "--experience", "Guru")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "experience", verr.Field)
	assert.Equal(t, 0, app.Roster.Len())
}

func TestEditVolunteer_ChangesOnlyGivenFields(t *testing.T) {
	jo := person("Jo Bloggs", "Weekdays", "kitchen", "driving")
	jo.Phone = "0123"
	app, path := newTestApp(t, jo, person("Sam Carter", "Weekends"))

	out, err := run(t, app, "editVolunteer", jo.ID[:8],
		"--email", "jo@new.example.com",
		"--remove-interest", "kitchen",
		"--interest", "first aid",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Updated Jo Bloggs")

	records := reload(t, path)
	require.Len(t, records, 2)
	got := records[0]
	assert.Equal(t, jo.ID, got.ID)
	assert.Equal(t, "Jo Bloggs", got.Name)
	assert.Equal(t, "0123", got.Phone)
	assert.Equal(t, "jo@new.example.com", got.Email)
	assert.Equal(t, []string{"driving", "first aid"}, got.Interests)
	assert.Equal(t, "Sam Carter", records[1].Name)
}

func TestEditVolunteer_UnknownID(t *testing.T) {
	app, _ := newTestApp(t, person("Jo Bloggs", "Weekdays"))

	_, err := run(t, app, "editVolunteer", "does-not-exist", "--name", "X")

	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestEditVolunteer_EmptyNameKeepsRecord(t *testing.T) {
	jo := person("Jo Bloggs", "Weekdays")
	app, _ := newTestApp(t, jo)

	_, err := run(t, app, "editVolunteer", jo.ID, "--name", "")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	got, getErr := app.Roster.Get(jo.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Jo Bloggs", got.Name)
}

func TestDeleteVolunteer(t *testing.T) {
	jo := person("Jo Bloggs", "Weekdays")
	sam := person("Sam Carter", "Weekends")
	app, path := newTestApp(t, jo, sam)

	out, err := run(t, app, "deleteVolunteer", jo.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Jo Bloggs")
	records := reload(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, sam.ID, records[0].ID)
}

func TestDeleteVolunteer_UnknownID(t *testing.T) {
	app, _ := newTestApp(t, person("Jo Bloggs", "Weekdays"))

	_, err := run(t, app, "deleteVolunteer", "nope")

	assert.ErrorIs(t, err, roster.ErrNotFound)
	assert.Equal(t, 1, app.Roster.Len())
}

func TestResolveVolunteer_AmbiguousPrefix(t *testing.T) {
	a := person("A", "Weekdays")
	b := person("B", "Weekdays")
	a.ID = "aaaa1111-0000-4000-8000-000000000001"
	b.ID = "aaaa2222-0000-4000-8000-000000000002"
	app, _ := newTestApp(t, a, b)

	_, err := resolveVolunteer(app, "aaaa")
	assert.ErrorContains(t, err, "matches 2 volunteers")

	got, err := resolveVolunteer(app, "aaaa2")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
}

func TestSearchVolunteers(t *testing.T) {
	app, _ := newTestApp(t,
		person("Jo Bloggs", "Weekdays", "Kitchen"),
		person("Sam Carter", "Weekends", "driving"),
	)

	out, err := run(t, app, "searchVolunteers", "KITCHEN")

	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 volunteers match")
	assert.Contains(t, out, "Jo Bloggs")
	assert.NotContains(t, out, "Sam Carter")
}

func TestExportVolunteers_EmptyRoster(t *testing.T) {
	app, _ := newTestApp(t)
	target := filepath.Join(t.TempDir(), "export.csv")

	_, err := run(t, app, "exportVolunteers", target)

	assert.ErrorIs(t, err, ErrNothingToExport)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportVolunteers_JSON(t *testing.T) {
	jo := person("Jo Bloggs", "Weekdays", "kitchen")
	app, _ := newTestApp(t, jo)
	target := filepath.Join(t.TempDir(), "roster.out")

	out, err := run(t, app, "exportVolunteers", target, "--format", "json")

	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 volunteers")
	records, err := flatfile.Load(target, flatfile.JSON{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, jo.ID, records[0].ID)
	assert.Equal(t, []string{"kitchen"}, records[0].Interests)
}

func TestExportVolunteers_UnknownExtension(t *testing.T) {
	app, _ := newTestApp(t, person("Jo Bloggs", "Weekdays"))

	_, err := run(t, app, "exportVolunteers", filepath.Join(t.TempDir(), "roster.xml"))

	assert.ErrorContains(t, err, "unsupported roster format")
}

func TestAvailableOn(t *testing.T) {
	app, _ := newTestApp(t,
		person("Weekday Person", "Weekdays"),
		person("Weekend Person", "Weekends"),
		person("Flexible Person", "Flexible"),
	)

	// 2026-10-17 is a Saturday
	out, err := run(t, app, "availableOn", "2026-10-17")

	require.NoError(t, err)
	assert.Contains(t, out, "2 volunteers available on Saturday 17 Oct 2026")
	assert.Contains(t, out, "Weekend Person")
	assert.Contains(t, out, "Flexible Person")
	assert.NotContains(t, out, "Weekday Person")
}

func TestAvailableOn_BadDate(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := run(t, app, "availableOn", "17/10/2026")

	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestToggleTheme(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "toggleTheme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: light\n", out)
	assert.Equal(t, "light", app.Theme.Name)

	_, err = run(t, app, "toggleTheme")
	require.NoError(t, err)
	assert.Equal(t, "dark", app.Theme.Name)
}

func TestInteractive_RunsCommandsAndResetsFlags(t *testing.T) {
	app, path := newTestApp(t)
	root := newRootCmd(app)

	script := strings.Join([]string{
		`addVolunteer --name "Jo Bloggs" --interest kitchen --email jo@example.com`,
		`addVolunteer --name 'Sam Carter'`,
		`bogus`,
		`deleteVolunteer nope`,
		`toggleTheme`,
		`help`,
		`exit`,
		`listVolunteers`,
	}, "\n")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(script))
	root.SetArgs([]string{"interactive"})

	require.NoError(t, root.Execute())

	records := reload(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "Jo Bloggs", records[0].Name)
	assert.Equal(t, []string{"kitchen"}, records[0].Interests)
	assert.Equal(t, "Sam Carter", records[1].Name)
	assert.Empty(t, records[1].Interests, "flags from the previous line must not leak")
	assert.Empty(t, records[1].Email)

	text := out.String()
	assert.Contains(t, text, "Unknown command: bogus")
	assert.Contains(t, text, "Error: volunteer not found")
	assert.Contains(t, text, "Theme: light")
	assert.Contains(t, text, "Available commands:")
	assert.Contains(t, text, "Goodbye!")
	assert.NotContains(t, text, "Found 2 volunteers", "commands after exit must not run")
}

func TestRunInSession_RejectsGlobalFlags(t *testing.T) {
	app, _ := newTestApp(t)
	root := newRootCmd(app)
	var theme string
	root.PersistentFlags().StringVar(&theme, "theme", "", "Card theme")
	root.SetOut(io.Discard)
	// Set on the command line that started the session
	require.NoError(t, root.PersistentFlags().Set("theme", "dark"))

	list, _, err := root.Find([]string{"listVolunteers"})
	require.NoError(t, err)

	require.NoError(t, runInSession(list, nil))

	err = runInSession(list, []string{"--theme", "light"})
	assert.ErrorContains(t, err, "--theme cannot be changed inside an interactive session")
	assert.Equal(t, "dark", app.Theme.Name)

	require.NoError(t, runInSession(list, nil), "a rejected global flag must not stick")
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"plain words", "searchVolunteers kitchen", []string{"searchVolunteers", "kitchen"}, false},
		{"double quotes", `addVolunteer --name "Jo Bloggs"`, []string{"addVolunteer", "--name", "Jo Bloggs"}, false},
		{"single quotes", `addVolunteer --name 'Jo Bloggs'`, []string{"addVolunteer", "--name", "Jo Bloggs"}, false},
		{"quote inside other quote", `x "it's"`, []string{"x", "it's"}, false},
		{"empty quoted argument", `editVolunteer abc --email ""`, []string{"editVolunteer", "abc", "--email", ""}, false},
		{"extra whitespace", "  a   b  ", []string{"a", "b"}, false},
		{"unclosed quote", `a "b`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResetFlags(t *testing.T) {
	app, _ := newTestApp(t)
	cmd := AddVolunteerCmd(app)

	require.NoError(t, cmd.ParseFlags([]string{"--name", "Jo", "--interest", "a", "--interest", "b"}))
	resetFlags(cmd.Flags())

	name, err := cmd.Flags().GetString("name")
	require.NoError(t, err)
	assert.Empty(t, name)
	interests, err := cmd.Flags().GetStringArray("interest")
	require.NoError(t, err)
	assert.Empty(t, interests)
	assert.False(t, cmd.Flags().Changed("name"))
}

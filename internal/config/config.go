package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// ErrNotFound is returned when no config file exists in any search location
var ErrNotFound = errors.New("config file not found in current directory or home directory")

// AvailabilityOption is one selectable availability value. RRule, when set,
// describes the days the option covers (e.g. FREQ=WEEKLY;BYDAY=SA,SU)
type AvailabilityOption struct {
	Label string `yaml:"label" validate:"required"`
	RRule string `yaml:"rrule,omitempty"`
}

// Storage selects where the roster is persisted
type Storage struct {
	Driver string `yaml:"driver" validate:"required,oneof=file sqlite postgres"`
	// Path is a file path for file/sqlite and a connection string for postgres
	Path   string `yaml:"path" validate:"required"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=csv json"`
}

// Config represents the application configuration
type Config struct {
	Storage             Storage              `yaml:"storage"`
	Theme               string               `yaml:"theme" validate:"required,oneof=dark light"`
	AvailabilityOptions []AvailabilityOption `yaml:"availabilityOptions" validate:"required,min=1,unique=Label,dive"`
	ExperienceOptions   []string             `yaml:"experienceOptions" validate:"required,min=1,unique,dive,required"`
	LogsDir             string               `yaml:"logsDir" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Storage: Storage{
			Driver: "file",
			Path:   "volunteers.csv",
		},
		Theme: "dark",
		AvailabilityOptions: []AvailabilityOption{
			{Label: "Weekdays", RRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"},
			{Label: "Weekends", RRule: "FREQ=WEEKLY;BYDAY=SA,SU"},
			{Label: "Both Weekends and Weekdays", RRule: "FREQ=DAILY"},
			{Label: "Flexible", RRule: "FREQ=DAILY"},
		},
		ExperienceOptions: []string{"No prior experience", "Some experience", "Experienced"},
		LogsDir:           "logs",
	}
}

// Options returns the closed option sets used by the edit form
func (c *Config) Options() model.Options {
	labels := make([]string, len(c.AvailabilityOptions))
	for i, o := range c.AvailabilityOptions {
		labels[i] = o.Label
	}
	experience := make([]string, len(c.ExperienceOptions))
	copy(experience, c.ExperienceOptions)
	return model.Options{Availability: labels, Experience: experience}
}

// LoadWithEnv loads volunteers_config.<env>.yaml (or volunteers_config.yaml when
// env is empty) from the current or home directory. If no file exists the
// defaults are returned.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, option := range cfg.AvailabilityOptions {
		if option.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(option.RRule); err != nil {
			return fmt.Errorf("invalid rrule in availabilityOptions[%d] (%s): %w", i, option.Label, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "volunteers_config.yaml"
	if env != "" {
		configFileName = "volunteers_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %s: %w", homeConfigPath, err)
	}

	return "", ErrNotFound
}

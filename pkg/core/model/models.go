package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisteredLayout is the format used for the default registration timestamp
const RegisteredLayout = "2006-01-02 15:04:05"

// Volunteer represents one volunteer record in the roster
type Volunteer struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Registered   string   `json:"registered"`
	Interests    []string `json:"interests" validate:"unique,dive,required"`
	Availability string   `json:"availability"`
	Experience   string   `json:"experience"`
	Message      string   `json:"message"`
	ID           string   `json:"id" validate:"required,uuid"`
}

// NewVolunteer returns a blank record with a fresh ID and the registration time set to now
func NewVolunteer(now time.Time) Volunteer {
	return Volunteer{
		ID:         NewID(),
		Registered: now.Format(RegisteredLayout),
		Interests:  []string{},
	}
}

// NewID generates a record identifier
func NewID() string {
	return uuid.New().String()
}

// Clone returns a deep copy of the record
func (v Volunteer) Clone() Volunteer {
	c := v
	c.Interests = make([]string, len(v.Interests))
	copy(c.Interests, v.Interests)
	return c
}

// HasInterest reports whether tag is one of the record's interests (case-sensitive)
func (v Volunteer) HasInterest(tag string) bool {
	return slices.Contains(v.Interests, tag)
}

// CleanInterests trims each tag and drops empty tags and later duplicates,
// keeping first-seen order
func CleanInterests(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Validate checks the structural invariants of a record: a non-blank name,
// a UUID identifier and a duplicate-free interest list without empty tags
func (v Volunteer) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if err := validate.Struct(v); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Options holds the closed option sets a record's availability and experience must come from
type Options struct {
	Availability []string
	Experience   []string
}

// CheckSelections verifies that availability and experience are members of the option sets
func (o Options) CheckSelections(v Volunteer) error {
	if !slices.Contains(o.Availability, v.Availability) {
		return &ValidationError{Field: "availability", Reason: fmt.Sprintf("%q is not an availability option", v.Availability)}
	}
	if !slices.Contains(o.Experience, v.Experience) {
		return &ValidationError{Field: "experience", Reason: fmt.Sprintf("%q is not an experience option", v.Experience)}
	}
	return nil
}

// ValidationError reports a record that cannot be committed
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("record validation failed: %w", err)
	}
	fe := fieldErrs[0]
	field, _, _ := strings.Cut(fe.Field(), "[")
	return &ValidationError{Field: field, Reason: fmt.Sprintf("failed %q check", fe.Tag())}
}

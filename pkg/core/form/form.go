// Package form stages edits to a single volunteer record. A form starts in
// Editing and ends in Committed or Discarded; nothing reaches the caller's
// save callback until Commit succeeds.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// State is the lifecycle state of a form
type State int

const (
	Editing State = iota
	Committed
	Discarded
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field names a free-text field of a record
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldRegistered Field = "registered"
	FieldMessage    Field = "message"
)

// ErrClosed is returned by any operation on a committed or discarded form
var ErrClosed = errors.New("form is closed")

// SaveFunc receives the finalized record on commit
type SaveFunc func(model.Volunteer) error

// Form is the working copy of one record
type Form struct {
	draft  model.Volunteer
	opts   model.Options
	onSave SaveFunc
	state  State
}

// New opens a form on a blank record, defaulting availability and experience
// to the first option of each set
func New(opts model.Options, onSave SaveFunc) *Form {
	return NewAt(time.Now(), opts, onSave)
}

// NewAt is New with an explicit registration time
func NewAt(now time.Time, opts model.Options, onSave SaveFunc) *Form {
	draft := model.NewVolunteer(now)
	if len(opts.Availability) > 0 {
		draft.Availability = opts.Availability[0]
	}
	if len(opts.Experience) > 0 {
		draft.Experience = opts.Experience[0]
	}
	return &Form{draft: draft, opts: opts, onSave: onSave}
}

// Edit opens a form on a copy of an existing record. Empty and repeated
// interests in the copy are dropped so they cannot block Commit
func Edit(existing model.Volunteer, opts model.Options, onSave SaveFunc) *Form {
	draft := existing.Clone()
	draft.Interests = model.CleanInterests(draft.Interests)
	return &Form{draft: draft, opts: opts, onSave: onSave}
}

// State returns the current lifecycle state
func (f *Form) State() State {
	return f.state
}

// Draft returns a copy of the staged record
func (f *Form) Draft() model.Volunteer {
	return f.draft.Clone()
}

// Tags returns a copy of the staged interests
func (f *Form) Tags() []string {
	return slices.Clone(f.draft.Interests)
}

// SetField stages a free-text field. Values are not validated until Commit
func (f *Form) SetField(field Field, value string) error {
	if f.state != Editing {
		return ErrClosed
	}
	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldEmail:
		f.draft.Email = value
	case FieldPhone:
		f.draft.Phone = value
	case FieldRegistered:
		f.draft.Registered = value
	case FieldMessage:
		f.draft.Message = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// SetAvailability selects one of the availability options
func (f *Form) SetAvailability(value string) error {
	if f.state != Editing {
		return ErrClosed
	}
	if !slices.Contains(f.opts.Availability, value) {
		return &model.ValidationError{Field: "availability", Reason: fmt.Sprintf("%q is not one of %q", value, f.opts.Availability)}
	}
	f.draft.Availability = value
	return nil
}

// SetExperience selects one of the experience options
func (f *Form) SetExperience(value string) error {
	if f.state != Editing {
		return ErrClosed
	}
	if !slices.Contains(f.opts.Experience, value) {
		return &model.ValidationError{Field: "experience", Reason: fmt.Sprintf("%q is not one of %q", value, f.opts.Experience)}
	}
	f.draft.Experience = value
	return nil
}

// AddTag appends a trimmed tag unless it is empty or already present.
// It reports whether the tag list changed.
func (f *Form) AddTag(text string) bool {
	if f.state != Editing {
		return false
	}
	tag := strings.TrimSpace(text)
	if tag == "" || f.draft.HasInterest(tag) {
		return false
	}
	f.draft.Interests = append(f.draft.Interests, tag)
	return true
}

// RemoveTag removes an exact-match tag. It reports whether the tag list changed.
func (f *Form) RemoveTag(text string) bool {
	if f.state != Editing {
		return false
	}
	i := slices.Index(f.draft.Interests, text)
	if i < 0 {
		return false
	}
	f.draft.Interests = slices.Delete(f.draft.Interests, i, i+1)
	return true
}

// Commit validates the draft and hands it to the save callback. On a
// validation or callback error the form stays in Editing.
func (f *Form) Commit() (model.Volunteer, error) {
	if f.state != Editing {
		return model.Volunteer{}, ErrClosed
	}

	final := f.draft.Clone()
	final.Name = strings.TrimSpace(final.Name)
	final.Email = strings.TrimSpace(final.Email)
	final.Phone = strings.TrimSpace(final.Phone)
	final.Registered = strings.TrimSpace(final.Registered)
	final.Message = strings.TrimSpace(final.Message)

	if final.Name == "" {
		return model.Volunteer{}, &model.ValidationError{Field: "name", Reason: "name is required"}
	}
	if err := f.opts.CheckSelections(final); err != nil {
		return model.Volunteer{}, err
	}
	if err := final.Validate(); err != nil {
		return model.Volunteer{}, err
	}

	if f.onSave != nil {
		if err := f.onSave(final.Clone()); err != nil {
			return model.Volunteer{}, err
		}
	}

	f.draft = final
	f.state = Committed
	return final, nil
}

// Discard closes the form without saving
func (f *Form) Discard() error {
	if f.state != Editing {
		return ErrClosed
	}
	f.state = Discarded
	return nil
}

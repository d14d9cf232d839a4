package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-manager/pkg/core/form"
)

// formFlags are the record fields shared by addVolunteer and editVolunteer
type formFlags struct {
	name           string
	email          string
	phone          string
	registered     string
	availability   string
	experience     string
	message        string
	interests      []string
	removeInterest []string
}

func (f *formFlags) register(cmd *cobra.Command, withRemove bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Full name")
	flags.StringVar(&f.email, "email", "", "Email address")
	flags.StringVar(&f.phone, "phone", "", "Phone number")
	flags.StringVar(&f.registered, "registered", "", "Registration timestamp (YYYY-MM-DD HH:MM:SS)")
	flags.StringVar(&f.availability, "availability", "", "Availability option")
	flags.StringVar(&f.experience, "experience", "", "Experience option")
	flags.StringVar(&f.message, "message", "", "Free-text message")
	flags.StringArrayVar(&f.interests, "interest", nil, "Interest tag to add (repeatable)")
	if withRemove {
		flags.StringArrayVar(&f.removeInterest, "remove-interest", nil, "Interest tag to remove (repeatable)")
	}
}

// apply stages every flag the user set onto the form. Unset flags leave the draft untouched
func (f *formFlags) apply(cmd *cobra.Command, fm *form.Form) error {
	flags := cmd.Flags()

	text := []struct {
		flag  string
		field form.Field
		value string
	}{
		{"name", form.FieldName, f.name},
		{"email", form.FieldEmail, f.email},
		{"phone", form.FieldPhone, f.phone},
		{"registered", form.FieldRegistered, f.registered},
		{"message", form.FieldMessage, f.message},
	}
	for _, t := range text {
		if !flags.Changed(t.flag) {
			continue
		}
		if err := fm.SetField(t.field, t.value); err != nil {
			return err
		}
	}

	if flags.Changed("availability") {
		if err := fm.SetAvailability(f.availability); err != nil {
			return err
		}
	}
	if flags.Changed("experience") {
		if err := fm.SetExperience(f.experience); err != nil {
			return err
		}
	}

	if flags.Changed("remove-interest") {
		for _, tag := range f.removeInterest {
			fm.RemoveTag(tag)
		}
	}
	if flags.Changed("interest") {
		for _, tag := range f.interests {
			fm.AddTag(tag)
		}
	}
	return nil
}

package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// Filter returns the records whose name, email, interests or message contain
// query, ignoring case. Order is preserved. A blank query returns records as is.
func Filter(records []model.Volunteer, query string) []model.Volunteer {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	matches := []model.Volunteer{}
	for _, v := range records {
		if strings.Contains(fold.String(Haystack(v)), q) {
			matches = append(matches, v)
		}
	}
	return matches
}

// Haystack is the searchable text of a record:
// name, email, interests (space separated) and message joined by single spaces
func Haystack(v model.Volunteer) string {
	return strings.Join([]string{
		v.Name,
		v.Email,
		strings.Join(v.Interests, " "),
		v.Message,
	}, " ")
}

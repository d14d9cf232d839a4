package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// csvFields is the header row. The first eight columns are required on read; id is optional
var csvFields = []string{
	"name",
	"email",
	"phone",
	"registered",
	"availability",
	"experience",
	"message",
	"interests",
	"id",
}

const (
	interestSep    = ';'
	interestEscape = '\\'
)

// CSV is the delimited-text codec
type CSV struct{}

func (CSV) Name() string { return "csv" }

// Encode writes the header row followed by one row per record
func (CSV) Encode(w io.Writer, records []model.Volunteer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvFields); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, v := range records {
		row := []string{
			v.Name,
			v.Email,
			v.Phone,
			v.Registered,
			v.Availability,
			v.Experience,
			v.Message,
			JoinInterests(v.Interests),
			v.ID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", v.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a header row and maps data rows by column name
func (CSV) Decode(r io.Reader) ([]model.Volunteer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []model.Volunteer{}, nil
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int, len(csvFields))
	for i, cell := range header {
		fieldIndexes[strings.TrimPrefix(cell, "\ufeff")] = i
	}
	for _, field := range csvFields[:len(csvFields)-1] {
		if _, ok := fieldIndexes[field]; !ok {
			return nil, &ParseError{Err: fmt.Errorf("missing required column in header: %s", field)}
		}
	}

	getField := func(field string, row []string) string {
		index, ok := fieldIndexes[field]
		if !ok || index >= len(row) {
			return ""
		}
		return row[index]
	}

	records := []model.Volunteer{}
	for n := 1; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Record: n, Err: err}
		}
		if len(row) < len(header) {
			return nil, &ParseError{Record: n, Err: fmt.Errorf("expected %d fields, found %d", len(header), len(row))}
		}

		interests, err := SplitInterests(getField("interests", row))
		if err != nil {
			return nil, &ParseError{Record: n, Err: err}
		}

		records = append(records, model.Volunteer{
			Name:         getField("name", row),
			Email:        getField("email", row),
			Phone:        getField("phone", row),
			Registered:   getField("registered", row),
			Interests:    interests,
			Availability: getField("availability", row),
			Experience:   getField("experience", row),
			Message:      getField("message", row),
			ID:           getField("id", row),
		})
	}

	return records, nil
}

// JoinInterests flattens tags into one field separated by ';'.
// Inside a tag '\' becomes "\\" and ';' becomes "\;"
func JoinInterests(tags []string) string {
	var b strings.Builder
	for i, tag := range tags {
		if i > 0 {
			b.WriteRune(interestSep)
		}
		for _, r := range tag {
			if r == interestSep || r == interestEscape {
				b.WriteRune(interestEscape)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitInterests reverses JoinInterests. An empty field is an empty list
func SplitInterests(field string) ([]string, error) {
	tags := []string{}
	if field == "" {
		return tags, nil
	}

	var cur strings.Builder
	escaped := false
	for _, r := range field {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == interestEscape:
			escaped = true
		case r == interestSep:
			tags = append(tags, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		return nil, fmt.Errorf("dangling escape in interests %q", field)
	}
	tags = append(tags, cur.String())
	return tags, nil
}

package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// JSON is the structured-text codec: a pretty-printed array of record objects
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(w io.Writer, records []model.Volunteer) error {
	out := make([]model.Volunteer, len(records))
	for i, v := range records {
		out[i] = v
		if out[i].Interests == nil {
			out[i].Interests = []string{}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

func (JSON) Decode(r io.Reader) ([]model.Volunteer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []model.Volunteer{}, nil
	}

	var records []model.Volunteer
	if err := json.Unmarshal(data, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ParseError{Err: fmt.Errorf("field %q: %w", typeErr.Field, err)}
		}
		return nil, &ParseError{Err: err}
	}

	if records == nil {
		records = []model.Volunteer{}
	}
	for i := range records {
		if records[i].Interests == nil {
			records[i].Interests = []string{}
		}
	}
	return records, nil
}

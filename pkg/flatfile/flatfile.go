// Package flatfile reads and writes the whole volunteer roster as a single
// delimited-text (CSV) or structured-text (JSON) file.
package flatfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

// Codec encodes and decodes a complete roster
type Codec interface {
	Name() string
	Encode(w io.Writer, records []model.Volunteer) error
	Decode(r io.Reader) ([]model.Volunteer, error)
}

// ParseError reports a roster file whose content could not be decoded
type ParseError struct {
	Path   string
	Record int // 1-based record number, 0 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "roster"
	}
	if e.Record > 0 {
		return fmt.Sprintf("malformed %s (record %d): %v", loc, e.Record, e.Err)
	}
	return fmt.Sprintf("malformed %s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CodecFor picks a codec by explicit format name, falling back to the file extension
func CodecFor(format, path string) (Codec, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "csv":
		return CSV{}, nil
	case "json":
		return JSON{}, nil
	case "":
		return nil, fmt.Errorf("cannot infer roster format from %q: set a format", path)
	default:
		return nil, fmt.Errorf("unsupported roster format: %s", format)
	}
}

// Load reads a roster file. A missing file is an empty roster, not an error
func Load(path string, codec Codec) ([]model.Volunteer, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Volunteer{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	records, err := codec.Decode(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return nil, perr
		}
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	normalize(records)
	return records, nil
}

// Save writes the roster to a temporary file next to path and renames it into place
func Save(path string, codec Codec, records []model.Volunteer) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := codec.Encode(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode roster as %s: %w", codec.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace roster file: %w", err)
	}
	return nil
}

// normalize repairs hand-edited or legacy content: interests are cleaned the
// same way the edit form adds tags, and a missing, malformed or repeated id
// is replaced with a fresh one so every record stays addressable
func normalize(records []model.Volunteer) {
	seen := make(map[string]bool, len(records))
	for i := range records {
		records[i].Interests = model.CleanInterests(records[i].Interests)

		id := records[i].ID
		if _, err := uuid.Parse(id); err != nil || seen[id] {
			id = model.NewID()
			records[i].ID = id
		}
		seen[id] = true
	}
}

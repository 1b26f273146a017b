package quest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// IDField is the name of the mandatory identifier field.
const IDField = "game_id"

// Record is a single quest. The raw JSON object is kept verbatim so that
// payload fields keep their order and bytes.
type Record struct {
	// ID is the canonical identifier derived from game_id.
	ID string

	raw json.RawMessage
}

// Parse decodes one quest record from a JSON object.
func Parse(data []byte) (*Record, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrParse)
	}

	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: quest record must be a JSON object", ErrParse)
	}

	id, err := identifier(obj.Get(IDField))
	if err != nil {
		return nil, fmt.Errorf("%w %s", err, abbreviate(data))
	}

	return &Record{
		ID:  id,
		raw: append(json.RawMessage(nil), data...),
	}, nil
}

// identifier normalizes a game_id value to its decimal digits.
func identifier(v gjson.Result) (string, error) {
	if !v.Exists() {
		return "", ErrMissingIdentifier
	}

	var s string
	switch v.Type {
	case gjson.Number:
		s = v.Raw
	case gjson.String:
		s = v.Str
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidIdentifier, v.Raw)
	}

	if !isDigits(s) {
		return "", fmt.Errorf("%w: %s", ErrInvalidIdentifier, v.Raw)
	}
	return s, nil
}

// Raw returns the record's JSON object exactly as it was read.
func (r *Record) Raw() json.RawMessage {
	return r.raw
}

// Get reads a field with a gjson path, e.g. "name" or "requirements.list.0".
func (r *Record) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// String returns a field as a string, or "" when the field is absent.
func (r *Record) String(field string) string {
	return r.Get(field).String()
}

// Name returns the quest's display name.
func (r *Record) Name() string {
	return r.String("name")
}

// WikiID returns the wiki quest code, e.g. "A01".
func (r *Record) WikiID() string {
	return r.String("wiki_id")
}

// Filename returns the canonical filename for this record: {id}.json
func (r *Record) Filename() string {
	return Filename(r.ID)
}

// Encode serializes the record with the given indent width.
// An indent of 0 or less produces compact output.
func (r *Record) Encode(indent int) ([]byte, error) {
	return format(r.raw, indent)
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

func format(data []byte, indent int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if indent <= 0 {
		err = json.Compact(&buf, data)
	} else {
		err = json.Indent(&buf, data, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return buf.Bytes(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// abbreviate shortens a record for error messages.
func abbreviate(data []byte) string {
	const max = 120
	runes := []rune(string(data))
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return string(runes)
}

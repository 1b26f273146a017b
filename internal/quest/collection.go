package quest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DecodeCollection parses the aggregate document, a JSON array of records.
// Decoding stops at the first invalid record.
func DecodeCollection(data []byte) ([]*Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: aggregate must be a JSON array: %v", ErrParse, err)
	}

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		r, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}

	return records, nil
}

// EncodeCollection serializes records as a JSON array in the given order.
func EncodeCollection(records []*Record, indent int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r.raw)
	}
	buf.WriteByte(']')

	return format(buf.Bytes(), indent)
}

// ReadCollection reads the aggregate file at path.
func ReadCollection(path string) ([]*Record, error) {
	// #nosec G304 - controlled path from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregate file: %w", err)
	}

	records, err := DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("aggregate file %s: %w", path, err)
	}

	return records, nil
}

// WriteCollection replaces the aggregate file at path in one atomic write.
func WriteCollection(path string, records []*Record, indent int) error {
	data, err := EncodeCollection(records, indent)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate: %w", err)
	}

	return WriteFileAtomic(path, data, 0644)
}

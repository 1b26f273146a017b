package compare

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats for WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteReport renders the report to w in the given format.
func WriteReport(w io.Writer, r *Report, format string) error {
	switch format {
	case "", FormatText:
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}

	ew.printf("Missing Quests:\n")
	for _, q := range r.Missing {
		ew.printf("%s %s %s\n", q.ID, q.Code, q.Name)
	}

	ew.printf("\nDifferent Quests:\n")
	for _, d := range r.Different {
		ew.printf("%s %s %s %s %s\n", d.ID, d.Left.Code, d.Left.Name, d.Right.Code, d.Right.Name)
	}

	ew.printf("\nTotal number %d\n", r.Total())
	return ew.err
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Package index renders the Markdown quest index (quest/README.md).
package index

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kcwiki/questtool/internal/quest"
)

// Options controls the rendered document.
type Options struct {
	// Header is the document title, rendered as "# {Header}".
	Header string
	// Host is the wiki host, e.g. zh.kcwiki.org.
	Host string
	// Category is the wiki page holding the quest anchors.
	Category string
}

// redundantZero matches a zero between a lone letter and a single trailing
// digit. The letter must start the code or follow a non-letter.
var redundantZero = regexp.MustCompile(`(^|[^A-Za-z])([A-Za-z])0([0-9])$`)

// NormalizeCode strips the padding zero from short quest codes.
//
//	A01  -> A1
//	B02  -> B2
//	MB01 -> MB01
//	A10  -> A10
func NormalizeCode(code string) string {
	return redundantZero.ReplaceAllString(code, "${1}${2}${3}")
}

// Link returns the wiki URL for a normalized quest code.
func (o Options) Link(code string) string {
	return fmt.Sprintf("https://%s/wiki/%s#%s", o.Host, o.Category, code)
}

// Render builds the index document for records in order.
func Render(records []*quest.Record, opts Options) []byte {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		code := NormalizeCode(r.WikiID())
		lines = append(lines, fmt.Sprintf("- %s [%s](%s) %s", r.ID, code, opts.Link(code), r.Name()))
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(opts.Header)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	return []byte(b.String())
}

// WriteFile renders the index and replaces the file at path.
func WriteFile(path string, records []*quest.Record, opts Options) error {
	if err := quest.WriteFileAtomic(path, Render(records, opts), 0644); err != nil {
		return fmt.Errorf("failed to write index %s: %w", path, err)
	}
	return nil
}

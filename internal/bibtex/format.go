package bibtex

import (
	"fmt"
	"strings"
)

// FormatEntry serializes a single entry. Field values are written verbatim
// inside braces, one field per line.
func FormatEntry(e Entry) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", e.Type, e.Key))
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", f.Name, f.Value))
	}
	b.WriteString("}\n")

	return b.String()
}

// Format serializes entries separated by a blank line.
func Format(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, FormatEntry(e))
	}
	return strings.Join(parts, "\n")
}

// Package bibtex parses BibTeX text into ordered entries and serializes
// entries back to BibTeX.
package bibtex

import "strings"

// Field is a single name/value pair of an entry. Names are lower-cased.
type Field struct {
	Name  string
	Value string
}

// Entry is one parsed BibTeX record.
type Entry struct {
	Type   string  // Entry type, lower-cased (article, book, ...)
	Key    string  // Citation key
	Fields []Field // Fields in source order
}

// Get returns the value of a field. Lookup is case-insensitive.
func (e Entry) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value of a field, or "" if absent.
func (e Entry) Value(name string) string {
	v, _ := e.Get(name)
	return v
}

// Without returns a copy of the entry with the named field removed.
func (e Entry) Without(name string) Entry {
	name = strings.ToLower(name)
	out := Entry{Type: e.Type, Key: e.Key, Fields: make([]Field, 0, len(e.Fields))}
	for _, f := range e.Fields {
		if f.Name != name {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

// Keys returns the citation keys of the entries in order.
func Keys(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// DuplicateKeys returns the keys that occur more than once, in order of
// first appearance.
func DuplicateKeys(keys []string) []string {
	counts := make(map[string]int, len(keys))
	var order []string
	for _, k := range keys {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	var dups []string
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}

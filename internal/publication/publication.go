// Package publication defines the canonical in-memory model of one
// bibliographic reference and its construction from parsed BibTeX.
package publication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thomashirtz/notion-scholar/internal/bibtex"
)

// MaxExcerptLen is the largest BibTeX excerpt, in characters, embedded in a
// publication.
const MaxExcerptLen = 2000

// ErrInvalidYear is returned when an entry has a year field that is not an
// integer.
var ErrInvalidYear = errors.New("invalid year")

// Publication is one bibliographic reference. Values are never modified after
// Build returns.
type Publication struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Year     *int   `json:"year"` // nil when the source has no year field
	Journal  string `json:"journal"`
	URL      string `json:"url"`
	Abstract string `json:"abstract"`
	DOI      string `json:"doi"`
	Type     string `json:"type"`
	Bibtex   string `json:"bibtex"` // "" when the excerpt is too large
	Keywords string `json:"keywords,omitempty"`
}

func (p Publication) String() string {
	return fmt.Sprintf("Publication(key=%q, title=%q)", p.Key, p.Title)
}

// Build converts a parsed entry into a Publication.
func Build(entry bibtex.Entry) (Publication, error) {
	year, err := parseYear(entry)
	if err != nil {
		return Publication{}, err
	}

	return Publication{
		Key:      entry.Key,
		Title:    entry.Value("title"),
		Authors:  strings.ReplaceAll(entry.Value("author"), "\n", " "),
		Year:     year,
		Journal:  entry.Value("journal"),
		URL:      entry.Value("url"),
		Abstract: entry.Value("abstract"),
		DOI:      entry.Value("doi"),
		Type:     strings.ToLower(entry.Type),
		Bibtex:   RenderExcerpt(entry),
		Keywords: entry.Value("keywords"),
	}, nil
}

// BuildAll converts entries in order. The first malformed entry aborts.
func BuildAll(entries []bibtex.Entry) ([]Publication, error) {
	pubs := make([]Publication, 0, len(entries))
	for _, e := range entries {
		p, err := Build(e)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, nil
}

func parseYear(entry bibtex.Entry) (*int, error) {
	raw, ok := entry.Get("year")
	if !ok {
		return nil, nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: entry %q has year %q", ErrInvalidYear, entry.Key, raw)
	}
	return &year, nil
}

// RenderExcerpt serializes a single entry for embedding in the remote record.
// The abstract is dropped if the full excerpt exceeds MaxExcerptLen; if it is
// still too long, the result is "".
func RenderExcerpt(entry bibtex.Entry) string {
	s := bibtex.FormatEntry(entry)
	if utf8.RuneCountInString(s) <= MaxExcerptLen {
		return s
	}

	s = bibtex.FormatEntry(entry.Without("abstract"))
	if utf8.RuneCountInString(s) <= MaxExcerptLen {
		return s
	}
	return ""
}

// Filter returns the publications whose key is not in exclude, in order.
func Filter(pubs []Publication, exclude []string) []Publication {
	skip := make(map[string]struct{}, len(exclude))
	for _, k := range exclude {
		skip[k] = struct{}{}
	}

	var out []Publication
	for _, p := range pubs {
		if _, ok := skip[p.Key]; !ok {
			out = append(out, p)
		}
	}
	return out
}

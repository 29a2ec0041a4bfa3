package bibtex

import (
	"errors"
	"io/fs"
	"strings"
)

// Index indexes entries by citation key and DOI.
type Index struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewIndex builds an index over entries.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		Keys: make(map[string]bool, len(entries)),
		DOIs: make(map[string]string),
	}
	for _, e := range entries {
		idx.Keys[e.Key] = true
		if doi := NormalizeDOI(e.Value("doi")); doi != "" {
			if _, seen := idx.DOIs[doi]; !seen {
				idx.DOIs[doi] = e.Key
			}
		}
	}
	return idx
}

// IndexFile parses the file at path and indexes its entries.
// Returns an empty index if the file doesn't exist.
func IndexFile(path string) (*Index, []Entry, error) {
	entries, err := ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIndex(nil), nil, nil
		}
		return nil, nil, err
	}
	return NewIndex(entries), entries, nil
}

// HasKey reports whether an entry with the citation key exists.
func (idx *Index) HasKey(key string) bool {
	return idx.Keys[key]
}

// KeyForDOI returns the citation key of the entry with the given DOI.
func (idx *Index) KeyForDOI(doi string) (string, bool) {
	key, ok := idx.DOIs[NormalizeDOI(doi)]
	return key, ok
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}

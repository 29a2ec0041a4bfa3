package pdf

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thomashirtz/notion-scholar/internal/bibtex"
)

// NoTitle is the title reported for entries without one.
const NoTitle = "No title available"

// ScholarSearchURL is the Google Scholar search endpoint used for missing
// PDFs.
const ScholarSearchURL = "https://scholar.google.com/scholar?q="

// Missing is a BibTeX entry without a <key>.pdf file.
type Missing struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	ScholarURL string `json:"scholar_url"`
}

// Extra is a PDF file without a matching BibTeX entry.
type Extra struct {
	File string `json:"file"`
	// DOI found in the PDF, if any.
	DOI string `json:"doi,omitempty"`
	// SuggestedKey is the key of the entry with the same DOI, if any.
	SuggestedKey string `json:"suggested_key,omitempty"`
}

// Report is the result of comparing a BibTeX file with a PDF folder.
type Report struct {
	Missing []Missing `json:"missing"`
	Extra   []Extra   `json:"extra"`
}

// DOIExtractor returns the DOI found in the PDF at path, or "".
type DOIExtractor func(path string) (string, error)

// Checker compares BibTeX entries with the PDFs of a folder.
type Checker struct {
	extractDOI DOIExtractor
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithDOIExtractor replaces the DOI extraction of extra PDFs; nil disables it.
func WithDOIExtractor(fn DOIExtractor) CheckerOption {
	return func(c *Checker) {
		c.extractDOI = fn
	}
}

// NewChecker creates a Checker that extracts DOIs with ExtractDOI.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{extractDOI: ExtractDOI}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckFile compares the entries of the BibTeX file at bibPath with the PDFs
// in dir.
func (c *Checker) CheckFile(bibPath, dir string) (*Report, error) {
	entries, err := bibtex.ParseFile(bibPath)
	if err != nil {
		return nil, err
	}
	return c.Check(entries, dir)
}

// Check compares entries with the PDFs in dir. PDFs are expected to be named
// <key>.pdf. Missing entries keep the BibTeX order; extra files are sorted by
// name. A PDF whose DOI cannot be read is still reported, without DOI.
func (c *Checker) Check(entries []bibtex.Entry, dir string) (*Report, error) {
	files, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[strings.TrimSuffix(f, ".pdf")] = true
	}

	report := &Report{Missing: []Missing{}, Extra: []Extra{}}
	idx := bibtex.NewIndex(entries)

	reported := make(map[string]bool)
	for _, e := range entries {
		if present[e.Key] || reported[e.Key] {
			continue
		}
		reported[e.Key] = true

		title := e.Value("title")
		if title == "" {
			title = NoTitle
		}
		report.Missing = append(report.Missing, Missing{
			Key:        e.Key,
			Title:      title,
			ScholarURL: ScholarSearchURL + url.QueryEscape(title),
		})
	}

	for _, f := range files {
		stem := strings.TrimSuffix(f, ".pdf")
		if idx.HasKey(stem) {
			continue
		}

		extra := Extra{File: f}
		if c.extractDOI != nil {
			if doi, err := c.extractDOI(filepath.Join(dir, f)); err == nil && doi != "" {
				extra.DOI = doi
				if key, ok := idx.KeyForDOI(doi); ok {
					extra.SuggestedKey = key
				}
			}
		}
		report.Extra = append(report.Extra, extra)
	}

	return report, nil
}

// listPDFs returns the names of the .pdf files directly inside dir, sorted.
func listPDFs(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading PDF folder: %w", err)
	}

	var files []string
	for _, de := range dirEntries {
		if de.Type().IsRegular() && strings.HasSuffix(de.Name(), ".pdf") {
			files = append(files, de.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

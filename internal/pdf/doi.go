// Package pdf checks a folder of PDF files against a BibTeX file and
// extracts DOIs from PDFs.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
// More specific: 10.\d{4,9}/[-._;()/:A-Z0-9]+
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// doiSearchPages is the number of leading pages searched for a DOI.
const doiSearchPages = 3

// ExtractDOI extracts a DOI from a PDF file.
// It searches the first few pages for DOI patterns.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := min(r.NumPage(), doiSearchPages)
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil // No DOI found (not an error)
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	matches := doiPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	// Clean up matches and return the first valid one
	for _, match := range matches {
		// Remove trailing punctuation
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}

	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	// Must start with 10. and have something after the /
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}

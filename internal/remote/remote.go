// Package remote defines the capability the synchronization engine needs
// from a hosted database, independent of any concrete service.
package remote

import "context"

// Field names of the remote schema. They must match the database exactly.
const (
	FieldTitle    = "Title"
	FieldAbstract = "Abstract"
	FieldBibtex   = "Bibtex"
	FieldFilename = "Filename"
	FieldJournal  = "Journal"
	FieldAuthors  = "Authors"
	FieldYear     = "Year"
	FieldURL      = "URL"
	FieldInbox    = "Inbox"
	FieldType     = "Type"
	FieldDOI      = "DOI"

	// Optional fields, written only when configured.
	FieldCategory = "Category"
	FieldKeywords = "Keywords"
)

// Row holds the plain-text value of each text field of one remote record.
// Fields that are missing or empty are absent from the map.
type Row map[string]string

// Page is one page of a paginated query.
type Page struct {
	Rows []Row
	// NextCursor continues the query; empty when there are no more pages.
	NextCursor string
}

// Record is the field set written for one publication.
type Record struct {
	Title    string
	Abstract string
	Bibtex   string
	Filename string
	Journal  string
	Authors  string
	Year     *int    // nil writes an empty number
	URL      *string // nil writes an empty URL
	Inbox    bool
	Type     string // single choice; "" writes no choice
	DOI      string

	Categories []string // related category record IDs
	Keywords   []string // multi-choice tags
}

// Database is a hosted database holding one record per publication.
type Database interface {
	// QueryPage returns the page of records starting at cursor ("" for the
	// first page).
	QueryPage(ctx context.Context, cursor string, pageSize int) (Page, error)
	// CreateRecord creates one record and returns the identifier assigned by
	// the service.
	CreateRecord(ctx context.Context, rec Record) (string, error)
}

package notion

import (
	"context"

	"github.com/thomashirtz/notion-scholar/internal/remote"
)

var _ remote.Database = (*Database)(nil)

// Database exposes one Notion database as a remote.Database.
type Database struct {
	client *Client
	id     string
}

// NewDatabase binds client to the database with the given ID.
func NewDatabase(client *Client, databaseID string) *Database {
	return &Database{client: client, id: databaseID}
}

// ID returns the database ID.
func (d *Database) ID() string {
	return d.id
}

// QueryPage implements remote.Database.
func (d *Database) QueryPage(ctx context.Context, cursor string, pageSize int) (remote.Page, error) {
	resp, err := d.client.QueryDatabase(ctx, d.id, QueryRequest{
		StartCursor: cursor,
		PageSize:    pageSize,
	})
	if err != nil {
		return remote.Page{}, err
	}

	page := remote.Page{Rows: make([]remote.Row, 0, len(resp.Results))}
	for _, result := range resp.Results {
		row := remote.Row{}
		for name, prop := range result.Properties {
			if text := prop.PlainText(); text != "" {
				row[name] = text
			}
		}
		page.Rows = append(page.Rows, row)
	}
	if resp.HasMore && resp.NextCursor != nil {
		page.NextCursor = *resp.NextCursor
	}
	return page, nil
}

// CreateRecord implements remote.Database.
func (d *Database) CreateRecord(ctx context.Context, rec remote.Record) (string, error) {
	page, err := d.client.CreatePage(ctx, d.id, RecordProperties(rec))
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// RecordProperties encodes a record with the fixed property names of the
// publication database.
func RecordProperties(rec remote.Record) Properties {
	props := Properties{
		remote.FieldTitle:    TitleValue(rec.Title),
		remote.FieldAbstract: RichTextValue(rec.Abstract),
		remote.FieldBibtex:   RichTextValue(rec.Bibtex),
		remote.FieldFilename: RichTextValue(rec.Filename),
		remote.FieldJournal:  RichTextValue(rec.Journal),
		remote.FieldAuthors:  RichTextValue(rec.Authors),
		remote.FieldYear:     NumberValue(rec.Year),
		remote.FieldURL:      URLValue(rec.URL),
		remote.FieldInbox:    CheckboxValue(rec.Inbox),
		remote.FieldType:     SelectValue(rec.Type),
		remote.FieldDOI:      RichTextValue(rec.DOI),
	}
	if len(rec.Categories) > 0 {
		props[remote.FieldCategory] = RelationValue(rec.Categories)
	}
	if len(rec.Keywords) > 0 {
		props[remote.FieldKeywords] = MultiSelectValue(rec.Keywords)
	}
	return props
}

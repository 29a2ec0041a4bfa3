package syncer

import (
	"context"
	"fmt"

	"github.com/thomashirtz/notion-scholar/internal/remote"
)

// DefaultPageSize is the page size used when listing remote records.
const DefaultPageSize = 100

// ListFieldValues returns the value of field for every remote record that
// has one, following the query cursor until the last page. Records without
// the field are skipped. Values are returned in server order.
func ListFieldValues(ctx context.Context, db remote.Database, field string) ([]string, error) {
	var values []string
	cursor := ""
	for {
		page, err := db.QueryPage(ctx, cursor, DefaultPageSize)
		if err != nil {
			return nil, fmt.Errorf("querying database: %w", err)
		}

		for _, row := range page.Rows {
			if v, ok := row[field]; ok && v != "" {
				values = append(values, v)
			}
		}

		if page.NextCursor == "" {
			return values, nil
		}
		if page.NextCursor == cursor {
			return nil, fmt.Errorf("querying database: cursor %q did not advance", cursor)
		}
		cursor = page.NextCursor
	}
}

// ListExistingKeys returns the citation keys already present remotely.
func ListExistingKeys(ctx context.Context, db remote.Database) ([]string, error) {
	return ListFieldValues(ctx, db, remote.FieldFilename)
}

package syncer

import (
	"context"
	"strings"

	"github.com/thomashirtz/notion-scholar/internal/archive"
	"github.com/thomashirtz/notion-scholar/internal/remote"
)

// Download writes the BibTeX excerpt of every remote record to path,
// replacing its contents. Returns the number of entries written.
func Download(ctx context.Context, db remote.Database, path string) (int, error) {
	excerpts, err := ListFieldValues(ctx, db, remote.FieldBibtex)
	if err != nil {
		return 0, err
	}

	for i, e := range excerpts {
		excerpts[i] = strings.TrimRight(e, "\n")
	}
	content := strings.Join(excerpts, "\n\n")
	if content != "" {
		content += "\n"
	}

	if err := archive.Overwrite(path, content); err != nil {
		return 0, err
	}
	return len(excerpts), nil
}

package syncer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/thomashirtz/notion-scholar/internal/remote"
)

var errCreateFailed = errors.New("create failed")

// memDB is an in-memory remote.Database. Created records become rows
// visible to later queries.
type memDB struct {
	rows     []remote.Row
	created  []remote.Record
	pageSize int  // rows per page served, independent of the requested size
	failAt   int  // 1-based create call that fails; 0 never fails
	stuck    bool // repeat the current cursor instead of advancing

	queries int
	creates int
}

func newMemDB(keys ...string) *memDB {
	db := &memDB{pageSize: 2}
	for _, k := range keys {
		db.rows = append(db.rows, remote.Row{remote.FieldFilename: k})
	}
	return db
}

func (m *memDB) QueryPage(ctx context.Context, cursor string, pageSize int) (remote.Page, error) {
	m.queries++
	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return remote.Page{}, fmt.Errorf("bad cursor %q", cursor)
		}
		start = n
	}
	end := min(start+m.pageSize, len(m.rows))

	page := remote.Page{Rows: append([]remote.Row(nil), m.rows[start:end]...)}
	if end < len(m.rows) {
		page.NextCursor = strconv.Itoa(end)
		if m.stuck && cursor != "" {
			page.NextCursor = cursor
		}
	}
	return page, nil
}

func (m *memDB) CreateRecord(ctx context.Context, rec remote.Record) (string, error) {
	m.creates++
	if m.creates == m.failAt {
		return "", errCreateFailed
	}
	m.created = append(m.created, rec)
	row := remote.Row{remote.FieldFilename: rec.Filename}
	if rec.Bibtex != "" {
		row[remote.FieldBibtex] = rec.Bibtex
	}
	m.rows = append(m.rows, row)
	return fmt.Sprintf("page-%d", len(m.created)), nil
}

func (m *memDB) createdKeys() []string {
	var keys []string
	for _, r := range m.created {
		keys = append(keys, r.Filename)
	}
	return keys
}

type memRecorder struct {
	uploads map[string]string
	err     error
}

func (r *memRecorder) RecordUpload(ctx context.Context, key, remoteID string) error {
	if r.err != nil {
		return r.err
	}
	if r.uploads == nil {
		r.uploads = make(map[string]string)
	}
	r.uploads[key] = remoteID
	return nil
}

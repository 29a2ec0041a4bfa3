// Package ledger keeps a local SQLite history of the records created in
// remote databases. The history is informational; it is never used to
// decide what to upload.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the history database file name inside the data directory.
const FileName = "history.db"

// Upload is one created remote record.
type Upload struct {
	Key        string    `json:"key"`
	PageID     string    `json:"page_id"`
	DatabaseID string    `json:"database_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS uploads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			page_id TEXT NOT NULL,
			database_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_uploads_database ON uploads(database_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Add records one upload.
func (d *DB) Add(ctx context.Context, u Upload) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO uploads (key, page_id, database_id, created_at)
		VALUES (?, ?, ?, ?)
	`, u.Key, u.PageID, u.DatabaseID, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording upload of %s: %w", u.Key, err)
	}
	return nil
}

// Recent returns up to limit uploads, newest first. An empty databaseID
// matches every database; limit <= 0 means no limit.
func (d *DB) Recent(ctx context.Context, databaseID string, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT key, page_id, database_id, created_at
		FROM uploads
		WHERE ? = '' OR database_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, databaseID, databaseID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		var createdAt string
		if err := rows.Scan(&u.Key, &u.PageID, &u.DatabaseID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", u.Key, err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// Count returns the number of recorded uploads.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM uploads").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

// Recorder records uploads to one remote database.
type Recorder struct {
	db         *DB
	databaseID string
	now        func() time.Time
}

// Recorder returns a Recorder bound to databaseID.
func (d *DB) Recorder(databaseID string) *Recorder {
	return &Recorder{db: d, databaseID: databaseID, now: time.Now}
}

// RecordUpload records that key was created as remoteID.
func (r *Recorder) RecordUpload(ctx context.Context, key, remoteID string) error {
	return r.db.Add(ctx, Upload{
		Key:        key,
		PageID:     remoteID,
		DatabaseID: r.databaseID,
		CreatedAt:  r.now(),
	})
}

package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Add(ctx, Upload{Key: "A1", PageID: "p1", DatabaseID: "db", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	n, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestRecent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	uploads := []Upload{
		{Key: "A1", PageID: "p1", DatabaseID: "db1", CreatedAt: base},
		{Key: "A2", PageID: "p2", DatabaseID: "db2", CreatedAt: base.Add(time.Minute)},
		{Key: "A3", PageID: "p3", DatabaseID: "db1", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, u := range uploads {
		if err := db.Add(ctx, u); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	all, err := db.Recent(ctx, "", 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(all) != 3 || all[0].Key != "A3" || all[2].Key != "A1" {
		t.Errorf("Recent() = %v, want newest first", all)
	}
	if !all[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", all[2].CreatedAt, base)
	}

	db1, err := db.Recent(ctx, "db1", 0)
	if err != nil {
		t.Fatalf("Recent(db1) error = %v", err)
	}
	if len(db1) != 2 {
		t.Errorf("Recent(db1) = %d uploads, want 2", len(db1))
	}

	limited, err := db.Recent(ctx, "", 1)
	if err != nil {
		t.Fatalf("Recent(limit) error = %v", err)
	}
	if len(limited) != 1 || limited[0].Key != "A3" {
		t.Errorf("Recent(limit 1) = %v, want [A3]", limited)
	}
}

func TestRecorder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := db.Recorder("db1")
	rec.now = func() time.Time { return fixed }

	if err := rec.RecordUpload(ctx, "A1", "page-1"); err != nil {
		t.Fatalf("RecordUpload() error = %v", err)
	}

	got, err := db.Recent(ctx, "db1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recent() = %d uploads, want 1", len(got))
	}
	u := got[0]
	if u.Key != "A1" || u.PageID != "page-1" || u.DatabaseID != "db1" || !u.CreatedAt.Equal(fixed) {
		t.Errorf("Recent() = %+v", u)
	}
}

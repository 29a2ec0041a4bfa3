// Package syncer synchronizes BibTeX entries with a remote database: it lists
// the keys already present, uploads the missing publications and archives
// the processed entries locally.
package syncer

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/thomashirtz/notion-scholar/internal/remote"
)

// ErrIllegalInput is returned when neither a BibTeX string nor a file path
// is given.
var ErrIllegalInput = errors.New("must provide a bib string or a bib file path")

// Config holds the settings of one synchronization run.
type Config struct {
	// BibString is the literal BibTeX input. When nil, BibFilePath is read.
	BibString *string
	// BibFilePath is the source file, or the archive file when BibString is
	// set.
	BibFilePath string
	// SaveToBibFile enables appending string input to BibFilePath.
	SaveToBibFile bool
	// Categories are related category record IDs attached to every upload.
	Categories []string
	// TagKeywords writes the entry keywords as multi-choice tags.
	TagKeywords bool
}

// Recorder keeps a local trace of created remote records.
type Recorder interface {
	RecordUpload(ctx context.Context, key, remoteID string) error
}

// Syncer runs synchronizations against one remote database.
type Syncer struct {
	db       remote.Database
	cfg      Config
	logger   zerolog.Logger
	progress io.Writer
	recorder Recorder
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithLogger sets the logger used for notices and warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Syncer) {
		s.logger = l
	}
}

// WithProgress sets the writer receiving one "i/total" line per upload.
func WithProgress(w io.Writer) Option {
	return func(s *Syncer) {
		s.progress = w
	}
}

// WithRecorder records every created remote record.
func WithRecorder(r Recorder) Option {
	return func(s *Syncer) {
		s.recorder = r
	}
}

// New creates a Syncer for db.
func New(db remote.Database, cfg Config, opts ...Option) *Syncer {
	s := &Syncer{
		db:       db,
		cfg:      cfg,
		logger:   zerolog.Nop(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Truncation describes a field value clipped to MaxFieldLen.
type Truncation struct {
	Key    string `json:"key"`
	Field  string `json:"field"`
	Length int    `json:"length"` // Original length in characters
}

// ArchiveReport describes the append to the local archive file.
type ArchiveReport struct {
	Path              string   `json:"path"`
	Appended          []string `json:"appended"`
	Skipped           []string `json:"skipped,omitempty"`
	DuplicatesInFile  []string `json:"duplicates_in_file,omitempty"`
	DuplicatesInInput []string `json:"duplicates_in_input,omitempty"`
}

// Report summarizes a run.
type Report struct {
	Parsed         int            `json:"parsed"`
	AlreadyPresent int            `json:"already_present"`
	Uploaded       []string       `json:"uploaded"`
	Truncated      []Truncation   `json:"truncated,omitempty"`
	Archive        *ArchiveReport `json:"archive,omitempty"`
}

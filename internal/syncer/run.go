package syncer

import (
	"context"
	"fmt"

	"github.com/thomashirtz/notion-scholar/internal/archive"
	"github.com/thomashirtz/notion-scholar/internal/bibtex"
	"github.com/thomashirtz/notion-scholar/internal/publication"
)

// Run performs one synchronization: parse the source, fetch the remote keys,
// upload the publications not yet present and, for string input, append the
// entries to the archive file.
//
// Nothing is written before the remote keys are known. If an upload fails
// the records already created stay in place and archiving is skipped; a
// rerun will not upload them again.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	entries, err := s.parseSource()
	if err != nil {
		return nil, err
	}

	pubs, err := publication.BuildAll(entries)
	if err != nil {
		return nil, err
	}

	keys, err := ListExistingKeys(ctx, s.db)
	if err != nil {
		return nil, err
	}

	filtered := publication.Filter(pubs, keys)
	pending := s.dropRepeated(filtered)
	report := &Report{
		Parsed:         len(pubs),
		AlreadyPresent: len(pubs) - len(filtered),
		Uploaded:       []string{},
	}
	if len(pending) == 0 && len(pubs) > 0 {
		s.logger.Info().Msg("All the publications are already present in the database.")
	}

	uploaded, truncated, err := s.Upload(ctx, pending)
	report.Uploaded = append(report.Uploaded, uploaded...)
	report.Truncated = truncated
	if err != nil {
		return report, err
	}

	if s.cfg.BibString != nil && s.cfg.SaveToBibFile && s.cfg.BibFilePath != "" {
		ar, err := s.archiveEntries(entries)
		report.Archive = ar
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// dropRepeated keeps the first publication of each key.
func (s *Syncer) dropRepeated(pubs []publication.Publication) []publication.Publication {
	seen := make(map[string]bool, len(pubs))
	out := pubs[:0:0]
	for _, p := range pubs {
		if seen[p.Key] {
			s.logger.Warn().Str("key", p.Key).Msg("repeated in the input, uploaded once")
			continue
		}
		seen[p.Key] = true
		out = append(out, p)
	}
	return out
}

func (s *Syncer) parseSource() ([]bibtex.Entry, error) {
	switch {
	case s.cfg.BibString != nil:
		entries, err := bibtex.ParseString(*s.cfg.BibString)
		if err != nil {
			return nil, fmt.Errorf("parsing bib string: %w", err)
		}
		return entries, nil
	case s.cfg.BibFilePath != "":
		return bibtex.ParseFile(s.cfg.BibFilePath)
	default:
		return nil, ErrIllegalInput
	}
}

// archiveEntries appends the entries whose key is not yet in the archive
// file. Existing archive content is never modified.
func (s *Syncer) archiveEntries(entries []bibtex.Entry) (*ArchiveReport, error) {
	path := s.cfg.BibFilePath
	idx, existing, err := bibtex.IndexFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	ar := &ArchiveReport{
		Path:              path,
		Appended:          []string{},
		DuplicatesInFile:  bibtex.DuplicateKeys(bibtex.Keys(existing)),
		DuplicatesInInput: bibtex.DuplicateKeys(bibtex.Keys(entries)),
	}
	if len(ar.DuplicatesInFile) > 0 {
		s.logger.Warn().Strs("keys", ar.DuplicatesInFile).Str("path", path).Msg("duplicate keys in the bib file")
	}
	if len(ar.DuplicatesInInput) > 0 {
		s.logger.Warn().Strs("keys", ar.DuplicatesInInput).Msg("duplicate keys in the input")
	}

	var pending []bibtex.Entry
	added := make(map[string]bool)
	for _, e := range entries {
		switch {
		case idx.HasKey(e.Key):
			s.logger.Info().Str("key", e.Key).Msg("already present in the bib file")
		case added[e.Key]:
			s.logger.Info().Str("key", e.Key).Msg("repeated in the input, saved once")
		default:
			added[e.Key] = true
			pending = append(pending, e)
			continue
		}
		ar.Skipped = append(ar.Skipped, e.Key)
	}

	if len(pending) == 0 {
		return ar, nil
	}

	s.logger.Info().Str("path", path).Int("entries", len(pending)).Msg("saving the entries")
	if err := archive.Append(path, bibtex.Format(pending)); err != nil {
		return ar, err
	}
	ar.Appended = bibtex.Keys(pending)
	return ar, nil
}

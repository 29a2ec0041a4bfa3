package syncer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thomashirtz/notion-scholar/internal/publication"
	"github.com/thomashirtz/notion-scholar/internal/remote"
)

// Upload creates one remote record per publication, sequentially and in
// order. It stops at the first failed create; records created before the
// failure are kept and their keys returned.
func (s *Syncer) Upload(ctx context.Context, pubs []publication.Publication) ([]string, []Truncation, error) {
	var uploaded []string
	var truncated []Truncation

	for i, p := range pubs {
		fmt.Fprintf(s.progress, "%d/%d: %s\n", i+1, len(pubs), p)

		rec, clipped := s.toRecord(p)
		for _, t := range clipped {
			s.logger.Warn().
				Str("key", t.Key).
				Str("field", t.Field).
				Int("length", t.Length).
				Msgf("%s exceeds %d characters, truncated", t.Field, MaxFieldLen)
		}
		truncated = append(truncated, clipped...)

		id, err := s.db.CreateRecord(ctx, rec)
		if err != nil {
			return uploaded, truncated, fmt.Errorf("creating record for %q: %w", p.Key, err)
		}
		uploaded = append(uploaded, p.Key)

		if s.recorder != nil {
			if err := s.recorder.RecordUpload(ctx, p.Key, id); err != nil {
				s.logger.Warn().Err(err).Str("key", p.Key).Msg("could not record upload in history")
			}
		}
	}

	return uploaded, truncated, nil
}

// toRecord maps a publication onto the remote schema, clipping the
// size-limited fields.
func (s *Syncer) toRecord(p publication.Publication) (remote.Record, []Truncation) {
	var clipped []Truncation
	bound := func(field, value string) string {
		v, cut := Bounded(value, MaxFieldLen)
		if cut {
			clipped = append(clipped, Truncation{
				Key:    p.Key,
				Field:  field,
				Length: utf8.RuneCountInString(value),
			})
		}
		return v
	}

	rec := remote.Record{
		Title:    p.Title,
		Abstract: bound(remote.FieldAbstract, p.Abstract),
		Bibtex:   bound(remote.FieldBibtex, p.Bibtex),
		Filename: p.Key,
		Journal:  p.Journal,
		Authors:  bound(remote.FieldAuthors, p.Authors),
		Year:     p.Year,
		Inbox:    true,
		Type:     p.Type,
		DOI:      p.DOI,
	}
	if p.URL != "" {
		url := p.URL
		rec.URL = &url
	}
	if len(s.cfg.Categories) > 0 {
		rec.Categories = append([]string(nil), s.cfg.Categories...)
	}
	if s.cfg.TagKeywords {
		rec.Keywords = splitKeywords(p.Keywords)
	}

	return rec, clipped
}

// splitKeywords splits a BibTeX keywords value on commas and semicolons.
func splitKeywords(raw string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' }) {
		tag := strings.Join(strings.Fields(part), " ")
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

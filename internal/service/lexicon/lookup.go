package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

// Lookup resolves a word to its lexical record. The store is consulted
// first; on a miss the source site is scraped, the result merged into the
// store, and the merged record returned. Concurrent lookups of the same
// key share one scrape. A syntactically invalid term fails before any I/O.
func (s *Service) Lookup(ctx context.Context, term string) (*LookupResult, error) {
	if !domain.IsSearchableWord(term) {
		return nil, domain.NewValidationError("word", "must contain letters, spaces, or hyphens only")
	}

	key := domain.NormalizeWord(term)
	if key == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	if cached, ok := s.cache.Get(key); ok {
		return &LookupResult{Record: cached.(*domain.LexicalRecord), Source: SourceStore}, nil
	}

	record, err := s.records.GetByKey(ctx, key)
	if err == nil {
		s.cache.Set(key, record, gocache.DefaultExpiration)
		return &LookupResult{Record: record, Source: SourceStore}, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("get record %q: %w", key, err)
	}

	merged, err, _ := s.sf.Do(key, func() (any, error) {
		return s.scrapeAndMerge(ctx, key, term)
	})
	if err != nil {
		return nil, err
	}

	record = merged.(*domain.LexicalRecord)
	s.cache.Set(key, record, gocache.DefaultExpiration)
	return &LookupResult{Record: record, Source: SourceScraped}, nil
}

// scrapeAndMerge walks the source site's pages for key and merges whatever
// it finds into the store. Zero scraped entries is a normal miss, not a
// fetch failure.
func (s *Service) scrapeAndMerge(ctx context.Context, key, term string) (*domain.LexicalRecord, error) {
	entries, err := s.scraper.FetchWord(ctx, key)
	if err != nil {
		s.log.ErrorContext(ctx, "scrape failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("scrape %q: %w", key, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("word %q: %w", key, domain.ErrNotFound)
	}

	payload := domain.IngestPayload{
		Entries:  entries,
		Variants: []string{term},
	}

	record, err := s.records.Merge(ctx, payload, term)
	if err != nil {
		return nil, fmt.Errorf("merge scraped entries for %q: %w", key, err)
	}

	s.log.InfoContext(ctx, "word scraped",
		slog.String("key", record.Key),
		slog.Int("entries", len(entries)),
	)
	return record, nil
}

package lexicon

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockRecordRepo struct {
	GetByKeyFunc                   func(ctx context.Context, key string) (*domain.LexicalRecord, error)
	MergeFunc                      func(ctx context.Context, payload domain.IngestPayload, requestedTerm string) (*domain.LexicalRecord, error)
	SearchHeadwordsFunc            func(ctx context.Context, prefix string) ([]domain.HeadwordCandidate, error)
	SearchIdiomsFunc               func(ctx context.Context, pattern string) ([]domain.IdiomCandidate, error)
	BackfillExampleTranslationFunc func(ctx context.Context, exampleID, text string) (bool, error)
	BackfillSenseTranslationFunc   func(ctx context.Context, senseID, translated, translatedShort string) (bool, error)
}

func (m *mockRecordRepo) GetByKey(ctx context.Context, key string) (*domain.LexicalRecord, error) {
	return m.GetByKeyFunc(ctx, key)
}

func (m *mockRecordRepo) Merge(ctx context.Context, payload domain.IngestPayload, requestedTerm string) (*domain.LexicalRecord, error) {
	return m.MergeFunc(ctx, payload, requestedTerm)
}

func (m *mockRecordRepo) SearchHeadwords(ctx context.Context, prefix string) ([]domain.HeadwordCandidate, error) {
	return m.SearchHeadwordsFunc(ctx, prefix)
}

func (m *mockRecordRepo) SearchIdioms(ctx context.Context, pattern string) ([]domain.IdiomCandidate, error) {
	return m.SearchIdiomsFunc(ctx, pattern)
}

func (m *mockRecordRepo) BackfillExampleTranslation(ctx context.Context, exampleID, text string) (bool, error) {
	return m.BackfillExampleTranslationFunc(ctx, exampleID, text)
}

func (m *mockRecordRepo) BackfillSenseTranslation(ctx context.Context, senseID, translated, translatedShort string) (bool, error) {
	return m.BackfillSenseTranslationFunc(ctx, senseID, translated, translatedShort)
}

type mockScraper struct {
	FetchWordFunc func(ctx context.Context, term string) ([]domain.Entry, error)
}

func (m *mockScraper) FetchWord(ctx context.Context, term string) ([]domain.Entry, error) {
	return m.FetchWordFunc(ctx, term)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(repo *mockRecordRepo, scraper *mockScraper) *Service {
	return NewService(slog.Default(), repo, scraper, gocache.New(time.Minute, 0))
}

func recordFor(key string, headwords ...string) *domain.LexicalRecord {
	rec := &domain.LexicalRecord{Key: key, Variants: []string{}, PartsOfSpeech: []string{}}
	for _, hw := range headwords {
		rec.Entries = append(rec.Entries, domain.Entry{Headword: hw})
	}
	return rec
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestLookup_InvalidTerm(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockRecordRepo{}, &mockScraper{})

	_, err := svc.Lookup(context.Background(), "abc123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLookup_FromStore(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &mockRecordRepo{
		GetByKeyFunc: func(_ context.Context, key string) (*domain.LexicalRecord, error) {
			calls++
			assert.Equal(t, "ability", key)
			return recordFor("ability", "ability"), nil
		},
	}
	svc := newTestService(repo, &mockScraper{})

	result, err := svc.Lookup(context.Background(), "-Ability-")
	require.NoError(t, err)
	assert.Equal(t, SourceStore, result.Source)
	assert.Equal(t, "ability", result.Record.Key)

	// The second lookup of the same key is served from the cache.
	_, err = svc.Lookup(context.Background(), "ability")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestLookup_ScrapesOnMiss(t *testing.T) {
	t.Parallel()

	repo := &mockRecordRepo{
		GetByKeyFunc: func(_ context.Context, _ string) (*domain.LexicalRecord, error) {
			return nil, domain.ErrNotFound
		},
		MergeFunc: func(_ context.Context, payload domain.IngestPayload, requestedTerm string) (*domain.LexicalRecord, error) {
			require.Len(t, payload.Entries, 1)
			assert.Equal(t, []string{"ability"}, payload.Variants)
			assert.Equal(t, "ability", requestedTerm)
			return recordFor("ability", "ability"), nil
		},
	}
	scraper := &mockScraper{
		FetchWordFunc: func(_ context.Context, term string) ([]domain.Entry, error) {
			assert.Equal(t, "ability", term)
			return []domain.Entry{{Headword: "ability"}}, nil
		},
	}
	svc := newTestService(repo, scraper)

	result, err := svc.Lookup(context.Background(), "ability")
	require.NoError(t, err)
	assert.Equal(t, SourceScraped, result.Source)
	assert.Equal(t, "ability", result.Record.Key)
}

func TestLookup_UnknownWord(t *testing.T) {
	t.Parallel()

	repo := &mockRecordRepo{
		GetByKeyFunc: func(_ context.Context, _ string) (*domain.LexicalRecord, error) {
			return nil, domain.ErrNotFound
		},
	}
	scraper := &mockScraper{
		FetchWordFunc: func(_ context.Context, _ string) ([]domain.Entry, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, scraper)

	_, err := svc.Lookup(context.Background(), "zzzzzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookup_ScrapeFailure(t *testing.T) {
	t.Parallel()

	repo := &mockRecordRepo{
		GetByKeyFunc: func(_ context.Context, _ string) (*domain.LexicalRecord, error) {
			return nil, domain.ErrNotFound
		},
	}
	scraper := &mockScraper{
		FetchWordFunc: func(_ context.Context, _ string) ([]domain.Entry, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(repo, scraper)

	_, err := svc.Lookup(context.Background(), "ability")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

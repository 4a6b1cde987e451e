package lexicon

import (
	"context"
	"errors"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

type recordRepo interface {
	GetByKey(ctx context.Context, key string) (*domain.LexicalRecord, error)
	Merge(ctx context.Context, payload domain.IngestPayload, requestedTerm string) (*domain.LexicalRecord, error)
	SearchHeadwords(ctx context.Context, prefix string) ([]domain.HeadwordCandidate, error)
	SearchIdioms(ctx context.Context, pattern string) ([]domain.IdiomCandidate, error)
	BackfillExampleTranslation(ctx context.Context, exampleID, text string) (bool, error)
	BackfillSenseTranslation(ctx context.Context, senseID, translated, translatedShort string) (bool, error)
}

type pageScraper interface {
	FetchWord(ctx context.Context, term string) ([]domain.Entry, error)
}

// Service implements lexicon operations: lookup with scrape-on-miss,
// prefix and idiom search, and translation backfill.
type Service struct {
	log     *slog.Logger
	records recordRepo
	scraper pageScraper
	cache   *gocache.Cache
	// sf collapses concurrent scrapes of the same key into one page walk.
	sf singleflight.Group
}

// NewService creates a new Lexicon service.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	scraper pageScraper,
	cache *gocache.Cache,
) *Service {
	return &Service{
		log:     logger.With("service", "lexicon"),
		records: records,
		scraper: scraper,
		cache:   cache,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

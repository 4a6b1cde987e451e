package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wordhabit/wordhabit-backend/internal/service/lexicon"
)

// lexiconService defines the minimal interface needed by LexiconHandler.
type lexiconService interface {
	Lookup(ctx context.Context, term string) (*lexicon.LookupResult, error)
	SearchPrefix(ctx context.Context, prefix string, page, pageSize int) (*lexicon.PrefixSearchResult, error)
	SearchIdioms(ctx context.Context, phrase string, page, pageSize int) (*lexicon.IdiomSearchResult, error)
	BackfillExamples(ctx context.Context, updates []lexicon.ExampleTranslation) (*lexicon.BackfillResult, error)
	BackfillSenses(ctx context.Context, updates []lexicon.SenseTranslation) (*lexicon.BackfillResult, error)
}

// LexiconHandler serves lookup, search, and backfill REST endpoints.
type LexiconHandler struct {
	svc lexiconService
	log *slog.Logger
}

// NewLexiconHandler creates a LexiconHandler.
func NewLexiconHandler(svc lexiconService, logger *slog.Logger) *LexiconHandler {
	return &LexiconHandler{svc: svc, log: logger.With("handler", "lexicon")}
}

// pageParams reads page/per_page query parameters; the service applies its
// own defaults and clamping.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	return page, perPage
}

package rest

import (
	"log/slog"
	"net/http"

	"github.com/wordhabit/wordhabit-backend/internal/config"
	"github.com/wordhabit/wordhabit-backend/internal/transport/middleware"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Lexicon *LexiconHandler
	Health  *HealthHandler
	Limiter *middleware.RateLimiter
	Config  *config.Config
	Logger  *slog.Logger
}

// NewRouter builds the HTTP routing table with the middleware chain
// applied. Lookup gets a tighter rate budget than search because each
// cache miss triggers a multi-page scrape of the source site.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	lookup := http.Handler(http.HandlerFunc(deps.Lexicon.Lookup))
	search := http.Handler(http.HandlerFunc(deps.Lexicon.Search))
	idioms := http.Handler(http.HandlerFunc(deps.Lexicon.SearchIdioms))

	rl := deps.Config.RateLimit
	if rl.Enabled && deps.Limiter != nil {
		lookup = deps.Limiter.Limit(rl.LookupPerMinute)(lookup)
		search = deps.Limiter.Limit(rl.SearchPerMinute)(search)
		idioms = deps.Limiter.Limit(rl.SearchPerMinute)(idioms)
	}

	mux.Handle("GET /api/v1/lookup", lookup)
	mux.Handle("GET /api/v1/search", search)
	mux.Handle("GET /api/v1/search/idioms", idioms)
	mux.HandleFunc("POST /api/v1/translations/examples", deps.Lexicon.BackfillExamples)
	mux.HandleFunc("POST /api/v1/translations/senses", deps.Lexicon.BackfillSenses)

	chain := middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.Config.CORS),
	)
	return chain(mux)
}

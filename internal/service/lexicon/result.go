package lexicon

import "github.com/wordhabit/wordhabit-backend/internal/domain"

// LookupSource tells the caller where a lookup result came from.
type LookupSource string

const (
	SourceStore   LookupSource = "store"
	SourceScraped LookupSource = "scraped"
)

// LookupResult is a resolved lexical record together with its provenance.
type LookupResult struct {
	Record *domain.LexicalRecord
	Source LookupSource
}

// PrefixSearchResult holds one page of matched spellings.
// Total counts deduplicated matches before pagination.
type PrefixSearchResult struct {
	Total int
	Words []string
}

// IdiomMatch is one ranked idiom hit.
type IdiomMatch struct {
	IdiomText    string
	PartOfSpeech string
	RecordKey    string
}

// IdiomSearchResult holds one page of ranked idiom matches.
type IdiomSearchResult struct {
	Total   int
	Matches []IdiomMatch
}

// BackfillResult counts the outcome of one backfill batch. Skipped covers
// updates with empty text, malformed identifiers, and identifiers whose
// every occurrence is already translated.
type BackfillResult struct {
	Updated int
	Skipped int
}

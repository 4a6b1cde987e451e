package domain

// HeadwordCandidate is one record whose key, variants, or entry headwords
// matched a prefix search. The search service picks out the matching strings.
type HeadwordCandidate struct {
	Key       string
	Variants  []string
	Headwords []string
}

// IdiomCandidate is one idiom matched by an idiom search, carrying the part
// of speech of its owning entry and the key of its owning record. Candidates
// arrive in stable scrape order (record creation, then entry, then idiom
// position), which the ranking pass relies on as the tie-break.
type IdiomCandidate struct {
	RecordKey    string
	PartOfSpeech string
	IdiomText    string
}

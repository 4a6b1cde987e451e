package domain

import (
	"strings"
	"time"
)

// MergeRecord combines freshly scraped entries and spellings with an existing
// record for the same canonical key. With existing == nil a new record is
// created. Entries are appended only if their trimmed headword is not already
// present (exact, case-sensitive compare), so merging the same page twice is
// a no-op. Variants are set-unioned. Symbol and PartsOfSpeech are recomputed
// from the full merged entry list.
//
// The canonical key comes from the first new headword, falling back to the
// originally requested term when the payload carries no entries.
//
// MergeRecord is pure; serialization of concurrent merges for the same key is
// the store's responsibility.
func MergeRecord(existing *LexicalRecord, payload IngestPayload, requestedTerm string, now time.Time) *LexicalRecord {
	key := NormalizeWord(requestedTerm)
	if len(payload.Entries) > 0 {
		if hw := NormalizeWord(payload.Entries[0].Headword); hw != "" {
			key = hw
		}
	}

	rec := &LexicalRecord{
		Key:       key,
		Entries:   []Entry{},
		Variants:  []string{},
		CreatedAt: now,
	}
	if existing != nil {
		rec.Key = existing.Key
		rec.Entries = append(rec.Entries, existing.Entries...)
		rec.Variants = append(rec.Variants, existing.Variants...)
		rec.CreatedAt = existing.CreatedAt
	}

	seenHeadwords := make(map[string]struct{}, len(rec.Entries))
	for _, e := range rec.Entries {
		seenHeadwords[strings.TrimSpace(e.Headword)] = struct{}{}
	}
	for _, e := range payload.Entries {
		hw := strings.TrimSpace(e.Headword)
		if _, dup := seenHeadwords[hw]; dup {
			continue
		}
		seenHeadwords[hw] = struct{}{}
		rec.Entries = append(rec.Entries, e)
	}

	seenVariants := make(map[string]struct{}, len(rec.Variants))
	for _, v := range rec.Variants {
		seenVariants[v] = struct{}{}
	}
	for _, v := range payload.Variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seenVariants[v]; dup {
			continue
		}
		seenVariants[v] = struct{}{}
		rec.Variants = append(rec.Variants, v)
	}

	rec.Symbol = DeriveSymbol(rec.Entries)
	rec.PartsOfSpeech = DerivePartsOfSpeech(rec.Entries)
	rec.UpdatedAt = now

	return rec
}

package domain

import (
	"sort"
	"strings"
)

// symbolPriority is the fixed CEFR ranking used to summarize a record.
// The first entry symbol matching the earliest value in this order wins.
var symbolPriority = []string{"a1", "a2", "b1", "b2", "c1"}

// DeriveSymbol summarizes the CEFR symbols of a record's entries.
// If any symbol matches a value in the priority order, the first such value
// in that order is returned; otherwise the first non-empty symbol found;
// otherwise the empty string.
func DeriveSymbol(entries []Entry) string {
	var found []string
	for _, e := range entries {
		if s := strings.ToLower(strings.TrimSpace(e.Symbol)); s != "" {
			found = append(found, s)
		}
	}
	if len(found) == 0 {
		return ""
	}

	for _, want := range symbolPriority {
		for _, s := range found {
			if s == want {
				return want
			}
		}
	}
	return found[0]
}

// DerivePartsOfSpeech returns the deduplicated union of non-empty
// parts of speech across entries, in sorted order.
func DerivePartsOfSpeech(entries []Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		pos := strings.TrimSpace(e.PartOfSpeech)
		if pos == "" {
			continue
		}
		seen[pos] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	sort.Strings(out)
	return out
}

package lexicon

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchPrefix finds spellings starting with prefix, case-insensitively,
// across canonical keys, entry headwords, and known variants. The matched
// spelling text is returned, deduplicated, sorted lexicographically
// descending, then paginated. Total counts matches before pagination.
func (s *Service) SearchPrefix(ctx context.Context, prefix string, page, pageSize int) (*PrefixSearchResult, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, domain.NewValidationError("q", "required")
	}
	page, pageSize = clampPage(page, pageSize)

	candidates, err := s.records.SearchHeadwords(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search headwords: %w", err)
	}

	seen := make(map[string]struct{})
	var words []string
	add := func(w string) {
		w = strings.TrimSpace(w)
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	for _, c := range candidates {
		// A key match surfaces the record's display spellings, not the key.
		if hasPrefixFold(c.Key, prefix) {
			for _, hw := range c.Headwords {
				add(hw)
			}
		}
		for _, hw := range c.Headwords {
			if hasPrefixFold(hw, prefix) {
				add(hw)
			}
		}
		for _, v := range c.Variants {
			if hasPrefixFold(v, prefix) {
				add(v)
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(words)))

	total := len(words)
	return &PrefixSearchResult{
		Total: total,
		Words: paginate(words, page, pageSize),
	}, nil
}

// SearchIdioms finds idioms containing the words of phrase in order, with
// anything allowed in between. Matches are deduplicated by idiom text
// (first occurrence wins), ranked exact-match first, then contiguous
// substring, then remaining matches in stored order, and paginated last.
func (s *Service) SearchIdioms(ctx context.Context, phrase string, page, pageSize int) (*IdiomSearchResult, error) {
	cleaned := sanitizePhrase(phrase)
	if cleaned == "" {
		return nil, domain.NewValidationError("q", "must contain letters")
	}
	page, pageSize = clampPage(page, pageSize)

	// Sanitized input is letters and single spaces, so the only regexp
	// syntax in the pattern is the wildcard inserted here.
	pattern := strings.ReplaceAll(cleaned, " ", ".*")

	candidates, err := s.records.SearchIdioms(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("search idioms: %w", err)
	}

	seen := make(map[string]struct{})
	var matches []IdiomMatch
	for _, c := range candidates {
		text := strings.TrimSpace(c.IdiomText)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		matches = append(matches, IdiomMatch{
			IdiomText:    text,
			PartOfSpeech: c.PartOfSpeech,
			RecordKey:    c.RecordKey,
		})
	}

	matches = rankIdioms(matches, cleaned)

	total := len(matches)
	return &IdiomSearchResult{
		Total:   total,
		Matches: paginate(matches, page, pageSize),
	}, nil
}

// rankIdioms reorders matches in two stable passes: exact full-phrase
// matches first, contiguous-substring matches next, everything else keeps
// its prior relative order.
func rankIdioms(matches []IdiomMatch, phrase string) []IdiomMatch {
	lower := strings.ToLower(phrase)

	ranked := make([]IdiomMatch, 0, len(matches))
	var substr, rest []IdiomMatch
	for _, m := range matches {
		text := strings.ToLower(m.IdiomText)
		switch {
		case text == lower:
			ranked = append(ranked, m)
		case strings.Contains(text, lower):
			substr = append(substr, m)
		default:
			rest = append(rest, m)
		}
	}
	ranked = append(ranked, substr...)
	return append(ranked, rest...)
}

// sanitizePhrase reduces a raw query to letters and single spaces.
func sanitizePhrase(phrase string) string {
	var b strings.Builder
	for _, r := range phrase {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// paginate slices one page out of items; out-of-range pages yield an empty,
// non-nil slice.
func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

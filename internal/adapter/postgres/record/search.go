package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/wordhabit/wordhabit-backend/internal/adapter/postgres"
	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

type headwordRow struct {
	Key       string   `db:"key"`
	Variants  []string `db:"variants"`
	Headwords []string `db:"headwords"`
}

type idiomRow struct {
	RecordKey    string `db:"record_key"`
	PartOfSpeech string `db:"part_of_speech"`
	IdiomText    string `db:"idiom_text"`
}

const searchHeadwordsSQL = `
SELECT key,
       variants,
       ARRAY(SELECT e->>'headword' FROM jsonb_array_elements(entries) AS e) AS headwords
FROM lexical_records
WHERE key ILIKE $1
   OR EXISTS (SELECT 1 FROM unnest(variants) AS v WHERE v ILIKE $1)
   OR EXISTS (SELECT 1 FROM jsonb_array_elements(entries) AS e WHERE e->>'headword' ILIKE $1)`

// SearchHeadwords returns records where the canonical key, any variant, or
// any entry headword starts with prefix (case-insensitive).
func (r *Repo) SearchHeadwords(ctx context.Context, prefix string) ([]domain.HeadwordCandidate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []headwordRow
	if err := pgxscan.Select(ctx, q, &rows, searchHeadwordsSQL, escapeLike(prefix)+"%"); err != nil {
		return nil, fmt.Errorf("search headwords %q: %w", prefix, err)
	}

	out := make([]domain.HeadwordCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.HeadwordCandidate(row))
	}
	return out, nil
}

const searchIdiomsSQL = `
SELECT r.key AS record_key,
       e.entry->>'partOfSpeech' AS part_of_speech,
       i.idiom->>'idiomText' AS idiom_text
FROM lexical_records AS r,
     jsonb_array_elements(r.entries) WITH ORDINALITY AS e(entry, entry_ord),
     jsonb_array_elements(e.entry->'idioms') WITH ORDINALITY AS i(idiom, idiom_ord)
WHERE i.idiom->>'idiomText' ~* $1
ORDER BY r.created_at, r.key, e.entry_ord, i.idiom_ord`

// SearchIdioms returns all idioms whose text matches the given
// case-insensitive regular expression, in stable scrape order.
func (r *Repo) SearchIdioms(ctx context.Context, pattern string) ([]domain.IdiomCandidate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []idiomRow
	if err := pgxscan.Select(ctx, q, &rows, searchIdiomsSQL, pattern); err != nil {
		return nil, fmt.Errorf("search idioms: %w", err)
	}

	out := make([]domain.IdiomCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.IdiomCandidate(row))
	}
	return out, nil
}

// escapeLike escapes the LIKE/ILIKE metacharacters in a user-supplied prefix.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

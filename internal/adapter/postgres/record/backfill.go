package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/wordhabit/wordhabit-backend/internal/adapter/postgres"
	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

// Documents containing the target ID anywhere in the nested entry tree are
// locked, mutated in Go, and written back. jsonb_path's ** accessor covers
// all three nesting shapes (direct senses, idiom senses, phrasal-verb senses).
const selectDocsByNestedIDSQL = `
SELECT key, entries
FROM lexical_records
WHERE jsonb_path_exists(entries, '$[*].** ? (@.id == $tid)', jsonb_build_object('tid', $1::text))
FOR UPDATE`

const updateEntriesSQL = `
UPDATE lexical_records SET entries = $2, updated_at = now() WHERE key = $1`

// BackfillExampleTranslation writes text into every stored example with the
// given ID whose translated text is still empty. Returns true when at least
// one document was modified. Examples that already carry a translation are
// left untouched, so repeating the same call is a no-op.
func (r *Repo) BackfillExampleTranslation(ctx context.Context, exampleID, text string) (bool, error) {
	return r.backfill(ctx, exampleID, func(rec *domain.LexicalRecord) bool {
		return rec.ApplyExampleTranslation(exampleID, text)
	})
}

// BackfillSenseTranslation fills the empty translated-definition fields of
// every stored sense with the given ID. Returns true when at least one
// document was modified.
func (r *Repo) BackfillSenseTranslation(ctx context.Context, senseID, translated, translatedShort string) (bool, error) {
	return r.backfill(ctx, senseID, func(rec *domain.LexicalRecord) bool {
		return rec.ApplySenseTranslation(senseID, translated, translatedShort)
	})
}

func (r *Repo) backfill(ctx context.Context, targetID string, apply func(*domain.LexicalRecord) bool) (bool, error) {
	changed := false

	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.pool)

		type docRow struct {
			Key     string `db:"key"`
			Entries []byte `db:"entries"`
		}
		var docs []docRow
		if err := pgxscan.Select(txCtx, q, &docs, selectDocsByNestedIDSQL, targetID); err != nil {
			return fmt.Errorf("select documents for %q: %w", targetID, err)
		}

		for _, doc := range docs {
			rec := domain.LexicalRecord{Key: doc.Key}
			if err := json.Unmarshal(doc.Entries, &rec.Entries); err != nil {
				return fmt.Errorf("decode entries for %q: %w", doc.Key, err)
			}

			if !apply(&rec) {
				continue
			}

			encoded, err := json.Marshal(rec.Entries)
			if err != nil {
				return fmt.Errorf("encode entries for %q: %w", doc.Key, err)
			}
			if _, err := q.Exec(txCtx, updateEntriesSQL, doc.Key, encoded); err != nil {
				return postgres.MapError(err, "lexical_record", doc.Key)
			}
			changed = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return changed, nil
}

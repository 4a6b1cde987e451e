// Package record implements the lexical record store on PostgreSQL.
// Each row of lexical_records is one whole nested document: the canonical
// key plus a JSONB array of scraped entries and the derived summaries.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/wordhabit/wordhabit-backend/internal/adapter/postgres"
	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

const table = "lexical_records"

var columns = []string{"key", "entries", "variants", "symbol", "parts_of_speech", "created_at", "updated_at"}

// psql builds queries with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides lexical record persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
	txm  *postgres.TxManager
}

// New creates a lexical record repository.
func New(pool postgres.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// recordRow mirrors one lexical_records row; entries stay raw JSONB until decoded.
type recordRow struct {
	Key           string    `db:"key"`
	Entries       []byte    `db:"entries"`
	Variants      []string  `db:"variants"`
	Symbol        string    `db:"symbol"`
	PartsOfSpeech []string  `db:"parts_of_speech"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row *recordRow) toDomain() (*domain.LexicalRecord, error) {
	rec := &domain.LexicalRecord{
		Key:           row.Key,
		Entries:       []domain.Entry{},
		Variants:      row.Variants,
		Symbol:        row.Symbol,
		PartsOfSpeech: row.PartsOfSpeech,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if len(row.Entries) > 0 {
		if err := json.Unmarshal(row.Entries, &rec.Entries); err != nil {
			return nil, fmt.Errorf("decode entries for %q: %w", row.Key, err)
		}
	}
	return rec, nil
}

// GetByKey returns the full record for a canonical key.
// Returns domain.ErrNotFound if no such record exists.
func (r *Repo) GetByKey(ctx context.Context, key string) (*domain.LexicalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var row recordRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("lexical_record %q: %w", key, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "lexical_record", key)
	}

	return row.toDomain()
}

// Merge folds freshly scraped entries and spellings into the stored record
// for their canonical key, creating the record if it does not exist yet.
//
// The whole read-merge-write runs in one transaction holding a per-key
// advisory lock, so two concurrent merges for the same key serialize
// instead of overwriting each other's appended entries.
func (r *Repo) Merge(ctx context.Context, payload domain.IngestPayload, requestedTerm string) (*domain.LexicalRecord, error) {
	key := domain.NormalizeWord(requestedTerm)
	if len(payload.Entries) > 0 {
		if hw := domain.NormalizeWord(payload.Entries[0].Headword); hw != "" {
			key = hw
		}
	}
	if key == "" {
		return nil, domain.NewValidationError("word", "empty after normalization")
	}

	var merged *domain.LexicalRecord
	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.pool)

		if _, err := q.Exec(txCtx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return fmt.Errorf("acquire merge lock for %q: %w", key, err)
		}

		existing, err := r.GetByKey(txCtx, key)
		if err != nil && !isNotFound(err) {
			return err
		}

		merged = domain.MergeRecord(existing, payload, requestedTerm, time.Now().UTC())

		entriesJSON, err := json.Marshal(merged.Entries)
		if err != nil {
			return fmt.Errorf("encode entries for %q: %w", key, err)
		}

		sql, args, err := psql.Insert(table).
			Columns(columns...).
			Values(merged.Key, entriesJSON, merged.Variants, merged.Symbol, merged.PartsOfSpeech, merged.CreatedAt, merged.UpdatedAt).
			Suffix(`ON CONFLICT (key) DO UPDATE SET
				entries = EXCLUDED.entries,
				variants = EXCLUDED.variants,
				symbol = EXCLUDED.symbol,
				parts_of_speech = EXCLUDED.parts_of_speech,
				updated_at = EXCLUDED.updated_at`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build merge query: %w", err)
		}

		if _, err := q.Exec(txCtx, sql, args...); err != nil {
			return postgres.MapError(err, "lexical_record", key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

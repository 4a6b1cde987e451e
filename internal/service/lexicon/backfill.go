package lexicon

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ExampleTranslation is one backfill update for an example sentence.
type ExampleTranslation struct {
	ExampleID      string
	TranslatedText string
}

// SenseTranslation is one backfill update for a sense definition.
type SenseTranslation struct {
	SenseID         string
	Translated      string
	TranslatedShort string
}

// BackfillExamples writes each translation into every stored example with
// the given id whose translated text is still empty. Updates with empty
// text or malformed ids are counted as skipped, never failed; repository
// errors abort the batch.
func (s *Service) BackfillExamples(ctx context.Context, updates []ExampleTranslation) (*BackfillResult, error) {
	var result BackfillResult
	for _, u := range updates {
		text := strings.TrimSpace(u.TranslatedText)
		if text == "" || !isWellFormedID(u.ExampleID) {
			result.Skipped++
			continue
		}

		updated, err := s.records.BackfillExampleTranslation(ctx, u.ExampleID, text)
		if err != nil {
			return nil, err
		}
		if updated {
			result.Updated++
		} else {
			result.Skipped++
		}
	}

	s.log.InfoContext(ctx, "example backfill complete",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
	)
	return &result, nil
}

// BackfillSenses is the sense-level counterpart of BackfillExamples,
// filling the long and short translated definitions where empty.
func (s *Service) BackfillSenses(ctx context.Context, updates []SenseTranslation) (*BackfillResult, error) {
	var result BackfillResult
	for _, u := range updates {
		translated := strings.TrimSpace(u.Translated)
		translatedShort := strings.TrimSpace(u.TranslatedShort)
		if (translated == "" && translatedShort == "") || !isWellFormedID(u.SenseID) {
			result.Skipped++
			continue
		}

		updated, err := s.records.BackfillSenseTranslation(ctx, u.SenseID, translated, translatedShort)
		if err != nil {
			return nil, err
		}
		if updated {
			result.Updated++
		} else {
			result.Skipped++
		}
	}

	s.log.InfoContext(ctx, "sense backfill complete",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
	)
	return &result, nil
}

// isWellFormedID reports whether a backfill target id parses as a UUID,
// the only id shape ever assigned at scrape time.
func isWellFormedID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package rest

import (
	"net/http"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
	"github.com/wordhabit/wordhabit-backend/internal/service/lexicon"
)

type lookupResponse struct {
	Word     string               `json:"word"`
	Quantity int                  `json:"quantity"`
	Data     []domain.Entry       `json:"data"`
	Variants []string             `json:"variants,omitempty"`
	Source   lexicon.LookupSource `json:"source"`
}

// Lookup handles GET /api/v1/lookup?word=<term>.
func (h *LexiconHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word parameter is required")
		return
	}

	result, err := h.svc.Lookup(r.Context(), word)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rec := result.Record
	writeJSON(w, http.StatusOK, lookupResponse{
		Word:     rec.Key,
		Quantity: len(rec.Entries),
		Data:     rec.Entries,
		Variants: rec.Variants,
		Source:   result.Source,
	})
}

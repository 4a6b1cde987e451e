package rest

import (
	"encoding/json"
	"net/http"

	"github.com/wordhabit/wordhabit-backend/internal/service/lexicon"
)

type exampleUpdate struct {
	ID             string `json:"id"`
	TranslatedText string `json:"translatedText"`
}

type exampleBackfillRequest struct {
	Updates []exampleUpdate `json:"updates"`
}

type senseUpdate struct {
	ID              string `json:"id"`
	Translated      string `json:"translated"`
	TranslatedShort string `json:"translatedShort"`
}

type senseBackfillRequest struct {
	Updates []senseUpdate `json:"updates"`
}

type backfillResponse struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// BackfillExamples handles POST /api/v1/translations/examples.
func (h *LexiconHandler) BackfillExamples(w http.ResponseWriter, r *http.Request) {
	var req exampleBackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := make([]lexicon.ExampleTranslation, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, lexicon.ExampleTranslation{
			ExampleID:      u.ID,
			TranslatedText: u.TranslatedText,
		})
	}

	result, err := h.svc.BackfillExamples(r.Context(), updates)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, backfillResponse{
		Updated: result.Updated,
		Skipped: result.Skipped,
	})
}

// BackfillSenses handles POST /api/v1/translations/senses.
func (h *LexiconHandler) BackfillSenses(w http.ResponseWriter, r *http.Request) {
	var req senseBackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := make([]lexicon.SenseTranslation, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, lexicon.SenseTranslation{
			SenseID:         u.ID,
			Translated:      u.Translated,
			TranslatedShort: u.TranslatedShort,
		})
	}

	result, err := h.svc.BackfillSenses(r.Context(), updates)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, backfillResponse{
		Updated: result.Updated,
		Skipped: result.Skipped,
	})
}

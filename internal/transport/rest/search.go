package rest

import (
	"net/http"
)

type searchResponse struct {
	Total int      `json:"total"`
	Words []string `json:"words"`
}

type idiomSearchResponse struct {
	Total int          `json:"total"`
	Words []idiomMatch `json:"words"`
}

type idiomMatch struct {
	IdiomText    string `json:"idiomText"`
	PartOfSpeech string `json:"partOfSpeech"`
	IsIdiom      bool   `json:"isIdiom"`
	RecordKey    string `json:"recordKey"`
}

// Search handles GET /api/v1/search?q=<prefix>&page=&per_page=.
func (h *LexiconHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)

	result, err := h.svc.SearchPrefix(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Total: result.Total,
		Words: result.Words,
	})
}

// SearchIdioms handles GET /api/v1/search/idioms?q=<phrase>&page=&per_page=.
func (h *LexiconHandler) SearchIdioms(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)

	result, err := h.svc.SearchIdioms(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	words := make([]idiomMatch, 0, len(result.Matches))
	for _, m := range result.Matches {
		words = append(words, idiomMatch{
			IdiomText:    m.IdiomText,
			PartOfSpeech: m.PartOfSpeech,
			IsIdiom:      true,
			RecordKey:    m.RecordKey,
		})
	}

	writeJSON(w, http.StatusOK, idiomSearchResponse{
		Total: result.Total,
		Words: words,
	})
}

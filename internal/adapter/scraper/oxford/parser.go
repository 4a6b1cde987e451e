package oxford

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

// Selectors for the source site's entry markup. The page structure is
// stable; optional blocks simply select nothing and yield empty containers.
const (
	selHeadword      = ".webtop .headword"
	selPartOfSpeech  = ".webtop span.pos"
	selSymbol        = ".webtop .symbols [class*='sym_']"
	selPhonBritish   = ".webtop .phons_br"
	selPhonAmerican  = ".webtop .phons_n_am"
	selGrammar       = ".webtop .grammar"
	selLabels        = ".webtop .labels"
	selSenses        = "ol.senses_multiple > li.sense, ol.sense_single > li.sense"
	selDefinition    = ".def"
	selExamples      = "ul.examples > li"
	selExampleText   = ".x"
	selCrossRefs     = ".xrefs"
	selIdioms        = ".idioms .idm-g"
	selIdiomText     = ".idm"
	selIdiomSenses   = "li.sense"
	selPhrasalLinks  = ".phrasal_verb_links a"
	selPhrasalSenses = ".phrasal_verbs_notlinks li.sense"
)

// Parse extracts one structured Entry from a page's raw markup.
// Returns (nil, nil) when the page carries no headword, which is the normal
// "this page number does not exist for this word" signal.
// Sense and example IDs are assigned here, once, and never change afterwards.
func Parse(markup io.Reader) (*domain.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return nil, err
	}

	headword := strings.TrimSpace(doc.Find(selHeadword).First().Text())
	if headword == "" {
		return nil, nil
	}

	entry := &domain.Entry{
		Headword:          headword,
		PartOfSpeech:      strings.TrimSpace(doc.Find(selPartOfSpeech).First().Text()),
		Symbol:            parseSymbol(doc.Find(selSymbol).First()),
		GrammarNote:       strings.TrimSpace(doc.Find(selGrammar).First().Text()),
		Labels:            strings.TrimSpace(doc.Find(selLabels).First().Text()),
		Phonetics:         parsePhonetics(doc),
		Senses:            []domain.Sense{},
		Idioms:            []domain.Idiom{},
		PhrasalVerbs:      []domain.PhrasalVerbRef{},
		PhrasalVerbSenses: []domain.Sense{},
	}

	doc.Find(selSenses).Each(func(_ int, sel *goquery.Selection) {
		if inIdiomBlock(sel) {
			return
		}
		if sense, ok := parseSense(sel); ok {
			entry.Senses = append(entry.Senses, sense)
		}
	})

	doc.Find(selIdioms).Each(func(_ int, sel *goquery.Selection) {
		idiom := domain.Idiom{
			IdiomText: strings.TrimSpace(sel.Find(selIdiomText).First().Text()),
			Labels:    strings.TrimSpace(sel.Find(".labels").First().Text()),
			Senses:    []domain.Sense{},
		}
		if idiom.IdiomText == "" {
			return
		}
		sel.Find(selIdiomSenses).Each(func(_ int, ss *goquery.Selection) {
			if sense, ok := parseSense(ss); ok {
				idiom.Senses = append(idiom.Senses, sense)
			}
		})
		entry.Idioms = append(entry.Idioms, idiom)
	})

	doc.Find(selPhrasalLinks).Each(func(_ int, sel *goquery.Selection) {
		word := strings.TrimSpace(sel.Find(".xh").First().Text())
		if word == "" {
			word = strings.TrimSpace(sel.Text())
		}
		if word == "" {
			return
		}
		entry.PhrasalVerbs = append(entry.PhrasalVerbs, domain.PhrasalVerbRef{
			Word: word,
			Link: sel.AttrOr("href", ""),
		})
	})

	doc.Find(selPhrasalSenses).Each(func(_ int, sel *goquery.Selection) {
		if sense, ok := parseSense(sel); ok {
			entry.PhrasalVerbSenses = append(entry.PhrasalVerbSenses, sense)
		}
	})

	return entry, nil
}

// parseSense builds one Sense from a li.sense node.
// A sense without a definition is dropped (ok == false).
func parseSense(sel *goquery.Selection) (domain.Sense, bool) {
	def := strings.TrimSpace(sel.Find(selDefinition).First().Text())
	if def == "" {
		return domain.Sense{}, false
	}

	sense := domain.Sense{
		ID:         uuid.New().String(),
		Definition: def,
		Synonyms:   []string{},
		Opposites:  []string{},
		SeeAlsos:   []string{},
		Examples:   []domain.Example{},
	}

	sel.Find(selExamples).Each(func(_ int, ex *goquery.Selection) {
		text := strings.TrimSpace(ex.Find(selExampleText).First().Text())
		if text == "" {
			text = strings.TrimSpace(ex.Text())
		}
		if text == "" {
			return
		}
		sense.Examples = append(sense.Examples, domain.Example{
			ID:         uuid.New().String(),
			SourceText: text,
		})
	})

	sel.Find(selCrossRefs).Each(func(_ int, xr *goquery.Selection) {
		terms := crossRefTerms(xr)
		if len(terms) == 0 {
			return
		}
		prefix := strings.ToLower(strings.TrimSpace(xr.Find(".prefix").First().Text()))
		switch {
		case strings.HasPrefix(prefix, "synonym"):
			sense.Synonyms = append(sense.Synonyms, terms...)
		case strings.HasPrefix(prefix, "opposite"):
			sense.Opposites = append(sense.Opposites, terms...)
		case strings.HasPrefix(prefix, "see also"):
			sense.SeeAlsos = append(sense.SeeAlsos, terms...)
		}
	})

	return sense, true
}

// crossRefTerms collects the linked terms of one cross-reference group verbatim.
func crossRefTerms(xr *goquery.Selection) []string {
	var terms []string
	xr.Find("a").Each(func(_ int, a *goquery.Selection) {
		term := strings.TrimSpace(a.Find(".xh").First().Text())
		if term == "" {
			term = strings.TrimSpace(a.Text())
		}
		if term != "" {
			terms = append(terms, term)
		}
	})
	return terms
}

// parseSymbol extracts the CEFR level from a symbol node's class attribute,
// e.g. "ox3ksym_a2" -> "a2".
func parseSymbol(sel *goquery.Selection) string {
	class := sel.AttrOr("class", "")
	idx := strings.LastIndex(class, "sym_")
	if idx < 0 {
		return ""
	}
	symbol := class[idx+len("sym_"):]
	if cut := strings.IndexByte(symbol, ' '); cut >= 0 {
		symbol = symbol[:cut]
	}
	return strings.ToLower(symbol)
}

func parsePhonetics(doc *goquery.Document) domain.Phonetics {
	return domain.Phonetics{
		British:  parsePronunciation(doc.Find(selPhonBritish).First()),
		American: parsePronunciation(doc.Find(selPhonAmerican).First()),
	}
}

func parsePronunciation(sel *goquery.Selection) domain.Pronunciation {
	return domain.Pronunciation{
		Transcription: strings.TrimSpace(sel.Find(".phon").First().Text()),
		AudioURL:      sel.Find("[data-src-mp3]").First().AttrOr("data-src-mp3", ""),
	}
}

// inIdiomBlock reports whether a sense node lives under the idioms section;
// those senses belong to their idiom, not to the entry's direct sense list.
func inIdiomBlock(sel *goquery.Selection) bool {
	return sel.ParentsFiltered(".idioms").Length() > 0
}

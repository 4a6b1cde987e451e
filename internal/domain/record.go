package domain

import (
	"time"
)

// LexicalRecord is the persisted document for one canonical word key.
// Entries preserve scrape order; Variants carry every raw spelling known
// to resolve to Key. Symbol and PartsOfSpeech are derived summaries and
// are recomputed on every merge.
type LexicalRecord struct {
	Key           string    `json:"key"`
	Entries       []Entry   `json:"entries"`
	Variants      []string  `json:"variants"`
	Symbol        string    `json:"symbol"`
	PartsOfSpeech []string  `json:"partsOfSpeech"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Entry is the structured content extracted from one scraped page for one
// headword rendering. Collections are never nil: an absent section is an
// empty slice so the stored document keeps a stable shape.
type Entry struct {
	Headword          string           `json:"headword"`
	PartOfSpeech      string           `json:"partOfSpeech"`
	Symbol            string           `json:"symbol"`
	Phonetics         Phonetics        `json:"phonetics"`
	GrammarNote       string           `json:"grammarNote"`
	Labels            string           `json:"labels"`
	Senses            []Sense          `json:"senses"`
	Idioms            []Idiom          `json:"idioms"`
	PhrasalVerbs      []PhrasalVerbRef `json:"phrasalVerbs"`
	PhrasalVerbSenses []Sense          `json:"phrasalVerbSenses"`
}

// Phonetics holds the British and American pronunciations of an entry.
type Phonetics struct {
	British  Pronunciation `json:"british"`
	American Pronunciation `json:"american"`
}

// Pronunciation is one transcription with an optional audio reference.
type Pronunciation struct {
	Transcription string `json:"transcription"`
	AudioURL      string `json:"audioUrl"`
}

// Sense is one definition with its examples and cross-references.
// ID is assigned once at scrape time and is the sole join key used by
// out-of-band translation backfill; it must survive merges verbatim.
type Sense struct {
	ID                        string    `json:"id"`
	Definition                string    `json:"definition"`
	DefinitionTranslated      string    `json:"definitionTranslated"`
	DefinitionTranslatedShort string    `json:"definitionTranslatedShort"`
	Synonyms                  []string  `json:"synonyms"`
	Opposites                 []string  `json:"opposites"`
	SeeAlsos                  []string  `json:"seeAlsos"`
	Examples                  []Example `json:"examples"`
}

// Example is one usage sentence within a sense. TranslatedText starts
// empty and is filled by backfill, never overwritten once set.
type Example struct {
	ID             string `json:"id"`
	SourceText     string `json:"sourceText"`
	TranslatedText string `json:"translatedText"`
}

// Idiom is an idiomatic expression nested under an entry, with its own senses.
type Idiom struct {
	IdiomText string  `json:"idiomText"`
	Labels    string  `json:"labels"`
	Senses    []Sense `json:"senses"`
}

// PhrasalVerbRef is a link to a related phrasal verb; the target is not expanded.
type PhrasalVerbRef struct {
	Word string `json:"word"`
	Link string `json:"link"`
}

// IngestPayload is the single explicit shape accepted by the merge boundary:
// the entries scraped for a word plus the raw spellings that produced them.
type IngestPayload struct {
	Entries  []Entry
	Variants []string
}

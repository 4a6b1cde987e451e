package domain

// ApplyExampleTranslation writes text into every example whose ID equals
// exampleID and whose translated text is currently empty, across all three
// nested locations: direct senses, idiom senses, and phrasal-verb senses.
// Already-translated examples are left untouched. Returns true when at least
// one example was modified.
func (r *LexicalRecord) ApplyExampleTranslation(exampleID, text string) bool {
	if text == "" {
		return false
	}

	changed := false
	for i := range r.Entries {
		e := &r.Entries[i]
		changed = fillExamples(e.Senses, exampleID, text) || changed
		for j := range e.Idioms {
			changed = fillExamples(e.Idioms[j].Senses, exampleID, text) || changed
		}
		changed = fillExamples(e.PhrasalVerbSenses, exampleID, text) || changed
	}
	return changed
}

// ApplySenseTranslation writes the long and/or short translated definition
// into every sense whose ID equals senseID, filling only fields that are
// currently empty. Returns true when at least one field was written.
func (r *LexicalRecord) ApplySenseTranslation(senseID, translated, translatedShort string) bool {
	changed := false
	for i := range r.Entries {
		e := &r.Entries[i]
		changed = fillSenses(e.Senses, senseID, translated, translatedShort) || changed
		for j := range e.Idioms {
			changed = fillSenses(e.Idioms[j].Senses, senseID, translated, translatedShort) || changed
		}
		changed = fillSenses(e.PhrasalVerbSenses, senseID, translated, translatedShort) || changed
	}
	return changed
}

func fillExamples(senses []Sense, exampleID, text string) bool {
	changed := false
	for i := range senses {
		for j := range senses[i].Examples {
			ex := &senses[i].Examples[j]
			if ex.ID == exampleID && ex.TranslatedText == "" {
				ex.TranslatedText = text
				changed = true
			}
		}
	}
	return changed
}

func fillSenses(senses []Sense, senseID, translated, translatedShort string) bool {
	changed := false
	for i := range senses {
		s := &senses[i]
		if s.ID != senseID {
			continue
		}
		if translated != "" && s.DefinitionTranslated == "" {
			s.DefinitionTranslated = translated
			changed = true
		}
		if translatedShort != "" && s.DefinitionTranslatedShort == "" {
			s.DefinitionTranslatedShort = translatedShort
			changed = true
		}
	}
	return changed
}

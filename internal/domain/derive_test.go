package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesWithSymbols(symbols ...string) []Entry {
	out := make([]Entry, len(symbols))
	for i, s := range symbols {
		out[i] = Entry{Headword: "w", Symbol: s}
	}
	return out
}

func TestDeriveSymbol(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		want    string
	}{
		{"priority beats first seen", []string{"c1", "a2"}, "a2"},
		{"full ladder", []string{"c1", "b2", "a1"}, "a1"},
		{"single", []string{"b1"}, "b1"},
		{"unknown symbol falls back to first non-empty", []string{"", "c2", "x9"}, "c2"},
		{"empty entries", nil, ""},
		{"all blank", []string{"", "  "}, ""},
		{"case insensitive", []string{"C1", "A2"}, "a2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSymbol(entriesWithSymbols(tt.symbols...)))
		})
	}
}

func TestDerivePartsOfSpeech(t *testing.T) {
	entries := []Entry{
		{PartOfSpeech: "verb"},
		{PartOfSpeech: "noun"},
		{PartOfSpeech: "verb"},
		{PartOfSpeech: ""},
		{PartOfSpeech: "  "},
	}

	assert.Equal(t, []string{"noun", "verb"}, DerivePartsOfSpeech(entries))
	assert.Equal(t, []string{}, DerivePartsOfSpeech(nil))
}

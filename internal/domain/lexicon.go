package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Syllabification is a pronunciation grouped into syllables. Each group is
// a non-empty run of stressless phonemes; concatenating the groups gives
// back the pronunciation.
type Syllabification [][]string

// Units renders every group as a space-joined phonetic unit ("K AA N").
func (s Syllabification) Units() []string {
	units := make([]string, len(s))
	for i, group := range s {
		units[i] = strings.Join(group, " ")
	}
	return units
}

// Flatten concatenates the groups back into a single phoneme sequence.
func (s Syllabification) Flatten() []string {
	var out []string
	for _, group := range s {
		out = append(out, group...)
	}
	return out
}

// SplitUnit breaks a space-joined phonetic unit into its phonemes.
func SplitUnit(unit string) []string {
	return strings.Fields(unit)
}

// Hyphenation is a spelling split into spans, one per syllable.
type Hyphenation []string

// Join concatenates the spans back into the spelled word.
func (h Hyphenation) Join() string {
	return strings.Join(h, "")
}

// String renders the spans separated by a middle dot.
func (h Hyphenation) String() string {
	return strings.Join(h, "·")
}

// WordRow is one aligned corpus row: pronunciation units and hyphenation
// spans are expected to pair up positionally.
type WordRow struct {
	Word          string
	Pronunciation []string
	Syllables     []string
	Frequency     int64
}

// Aligned reports whether units and spans pair up one to one.
func (r WordRow) Aligned() bool {
	return len(r.Pronunciation) == len(r.Syllables) && len(r.Syllables) > 0
}

// DifficultyScore holds corpus-normalized difficulties in [0,1].
type DifficultyScore struct {
	Reading  float64
	Spelling float64
}

// WordEntry is a fully analysed lexicon word.
type WordEntry struct {
	Word        string
	Phonemes    []string
	IPA         string
	Units       []string
	Hyphenation Hyphenation
	Components  []string
	Frequency   int64
	Difficulty  *DifficultyScore
	BuildID     uuid.UUID
	CreatedAt   time.Time
}

// IsCompound reports whether the word decomposes into smaller words.
// Compounds carry no hyphenation and no difficulty score.
func (e WordEntry) IsCompound() bool {
	return len(e.Components) > 1
}

// Row projects the entry onto the corpus row shape.
func (e WordEntry) Row() WordRow {
	return WordRow{
		Word:          e.Word,
		Pronunciation: e.Units,
		Syllables:     e.Hyphenation,
		Frequency:     e.Frequency,
	}
}

// UsageSeries is the yearly relative frequency of a word or phrase in a
// historical book corpus, starting at StartYear.
type UsageSeries struct {
	Ngram      string
	StartYear  int
	Timeseries []float64
}

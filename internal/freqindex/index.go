// Package freqindex indexes corpus frequency by aligned syllable pairs, for
// ambiguity and similar-word queries.
package freqindex

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Nested maps unit -> counterpart unit -> word -> aggregated frequency.
type Nested map[string]map[string]map[string]int64

func (n Nested) add(outer, inner, word string, freq int64) {
	mid, ok := n[outer]
	if !ok {
		mid = make(map[string]map[string]int64)
		n[outer] = mid
	}
	words, ok := mid[inner]
	if !ok {
		words = make(map[string]int64)
		mid[inner] = words
	}
	words[word] += freq
}

// Index is immutable after Build and safe for concurrent readers.
type Index struct {
	byPron      Nested
	bySpell     Nested
	pronTotals  map[string]int64
	spellTotals map[string]int64
	pairTotals  map[pair]int64
	wordFreq    map[string]int64
	skipped     int
}

type pair struct {
	pron, spell string
}

// Build indexes every aligned row. Rows whose units and spans do not pair
// up are skipped and counted.
func Build(rows []domain.WordRow) *Index {
	x := &Index{
		byPron:      make(Nested),
		bySpell:     make(Nested),
		pronTotals:  make(map[string]int64),
		spellTotals: make(map[string]int64),
		pairTotals:  make(map[pair]int64),
		wordFreq:    make(map[string]int64, len(rows)),
	}
	for _, row := range rows {
		if !row.Aligned() {
			x.skipped++
			continue
		}
		x.wordFreq[row.Word] = row.Frequency
		for i, pron := range row.Pronunciation {
			spell := row.Syllables[i]
			x.byPron.add(pron, spell, row.Word, row.Frequency)
			x.bySpell.add(spell, pron, row.Word, row.Frequency)
			x.pronTotals[pron] += row.Frequency
			x.spellTotals[spell] += row.Frequency
			x.pairTotals[pair{pron, spell}] += row.Frequency
		}
	}
	return x
}

// ByPronunciation returns pronunciation unit -> spelling -> word -> frequency.
// The maps are shared and must not be modified.
func (x *Index) ByPronunciation() Nested { return x.byPron }

// BySpelling returns spelling -> pronunciation unit -> word -> frequency.
// The maps are shared and must not be modified.
func (x *Index) BySpelling() Nested { return x.bySpell }

// PronunciationTotal returns the frequency mass of a pronunciation unit.
func (x *Index) PronunciationTotal(unit string) int64 { return x.pronTotals[unit] }

// SpellingTotal returns the frequency mass of a spelling unit.
func (x *Index) SpellingTotal(unit string) int64 { return x.spellTotals[unit] }

// PairTotal returns the frequency mass of one pronunciation/spelling pair.
func (x *Index) PairTotal(pron, spell string) int64 { return x.pairTotals[pair{pron, spell}] }

// Skipped returns the number of rows left out of the index.
func (x *Index) Skipped() int { return x.skipped }

// Share is one counterpart of a unit with its share of the unit's mass.
type Share struct {
	Unit      string
	Frequency int64
	Ratio     float64
}

// Spellings lists how a pronunciation unit is spelled, most frequent first.
func (x *Index) Spellings(pronUnit string) []Share {
	return shares(x.byPron[pronUnit], x.pronTotals[pronUnit])
}

// Pronunciations lists how a spelling unit is pronounced, most frequent first.
func (x *Index) Pronunciations(spellUnit string) []Share {
	return shares(x.bySpell[spellUnit], x.spellTotals[spellUnit])
}

func shares(counterparts map[string]map[string]int64, total int64) []Share {
	out := make([]Share, 0, len(counterparts))
	for unit, words := range counterparts {
		var f int64
		for _, v := range words {
			f += v
		}
		s := Share{Unit: unit, Frequency: f}
		if total > 0 {
			s.Ratio = float64(f) / float64(total)
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Share) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Unit, b.Unit)
	})
	return out
}

// WordFrequency is a word with its corpus frequency.
type WordFrequency struct {
	Word      string
	Frequency int64
}

func sortWords(out []WordFrequency) {
	slices.SortFunc(out, func(a, b WordFrequency) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
}

// Words lists the words containing the pair, most frequent first.
func (x *Index) Words(pronUnit, spellUnit string) []WordFrequency {
	words := x.byPron[pronUnit][spellUnit]
	out := make([]WordFrequency, 0, len(words))
	for w := range words {
		out = append(out, WordFrequency{Word: w, Frequency: x.wordFreq[w]})
	}
	sortWords(out)
	return out
}

// SimilarWords lists words sharing at least one pronunciation/spelling pair
// with row, excluding row itself, most frequent first. A non-positive limit
// returns all of them.
func (x *Index) SimilarWords(row domain.WordRow, limit int) []WordFrequency {
	if !row.Aligned() {
		return nil
	}
	seen := make(map[string]struct{})
	var out []WordFrequency
	for i, pron := range row.Pronunciation {
		for w := range x.byPron[pron][row.Syllables[i]] {
			if w == row.Word {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, WordFrequency{Word: w, Frequency: x.wordFreq[w]})
		}
	}
	sortWords(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Ratio compares another word's frequency with the queried word's.
type Ratio struct {
	Word          string
	Pronunciation string
	Spelling      string
	Ratio         float64
}

// FrequencyRatios returns, per shared pair, every other word's frequency
// divided by row's. Ratios are 0 when row has no positive frequency.
func (x *Index) FrequencyRatios(row domain.WordRow) []Ratio {
	if !row.Aligned() {
		return nil
	}
	var out []Ratio
	for i, pron := range row.Pronunciation {
		spell := row.Syllables[i]
		for _, wf := range x.Words(pron, spell) {
			if wf.Word == row.Word {
				continue
			}
			r := Ratio{Word: wf.Word, Pronunciation: pron, Spelling: spell}
			if row.Frequency > 0 {
				r.Ratio = float64(wf.Frequency) / float64(row.Frequency)
			}
			out = append(out, r)
		}
	}
	return out
}

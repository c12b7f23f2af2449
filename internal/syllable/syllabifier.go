// Package syllable groups a pronunciation into syllables with the sonority
// sequencing principle and maximal onset.
package syllable

import (
	"fmt"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// Syllabifier is safe for concurrent use.
type Syllabifier struct {
	table *phonetics.Table
}

// New creates a Syllabifier over the given phoneme table.
func New(table *phonetics.Table) *Syllabifier {
	return &Syllabifier{table: table}
}

// Syllabify splits a pronunciation into syllable groups. Stress markers are
// stripped first. It returns domain.ErrUnknownPhoneme for a phoneme missing
// from the table and domain.ErrNoVowel when nothing is in the vowel
// category; both exclude the word.
//
// The pronunciation is cut after every vowel. Inside each section the last
// sonority drop separates a coda, which joins the previous syllable; the
// first syllable has no predecessor and keeps it as onset. Sections without
// a vowel or semivowel are a pure coda. Finally a syllable ending in a vowel
// takes over an "R" that opens the next one.
func (s *Syllabifier) Syllabify(pron []string) (domain.Syllabification, error) {
	phonemes := make([]string, len(pron))
	hasVowel := false
	for i, p := range pron {
		p = phonetics.StripStress(p)
		if !s.table.Has(p) {
			return nil, fmt.Errorf("syllabify: %q: %w", p, domain.ErrUnknownPhoneme)
		}
		if s.table.IsVowel(p) {
			hasVowel = true
		}
		phonemes[i] = p
	}
	if !hasVowel {
		return nil, fmt.Errorf("syllabify: %v: %w", phonemes, domain.ErrNoVowel)
	}

	var syllables domain.Syllabification
	for _, section := range s.sections(phonemes) {
		coda, onset := s.splitCoda(section)
		if len(coda) > 0 {
			if len(syllables) == 0 {
				onset = append(clone(coda), onset...)
			} else {
				last := len(syllables) - 1
				syllables[last] = append(syllables[last], coda...)
			}
		}
		if len(onset) > 0 {
			syllables = append(syllables, onset)
		}
	}

	return s.attachR(syllables), nil
}

// sections cuts phonemes right after every vowel. The trailing section may
// be empty.
func (s *Syllabifier) sections(phonemes []string) [][]string {
	var out [][]string
	start := 0
	for i, p := range phonemes {
		if s.table.IsVowel(p) {
			out = append(out, clone(phonemes[start:i+1]))
			start = i + 1
		}
	}
	return append(out, clone(phonemes[start:]))
}

// splitCoda separates the low-sonority run before the last sonority drop.
func (s *Syllabifier) splitCoda(section []string) (coda, onset []string) {
	peak := false
	for _, p := range section {
		if r := s.table.Sonority(p); r >= phonetics.Semivowel.Sonority() {
			peak = true
			break
		}
	}
	if !peak {
		return section, nil
	}

	split := 0
	for i := 0; i+1 < len(section); i++ {
		if s.table.Sonority(section[i]) > s.table.Sonority(section[i+1]) {
			split = i + 1
		}
	}
	return section[:split], section[split:]
}

// attachR moves a leading R into a preceding syllable that ends in a vowel.
func (s *Syllabifier) attachR(syllables domain.Syllabification) domain.Syllabification {
	for i := 0; i+1 < len(syllables); i++ {
		cur, next := syllables[i], syllables[i+1]
		if len(cur) == 0 || len(next) == 0 {
			continue
		}
		if next[0] == "R" && s.table.IsVowel(cur[len(cur)-1]) {
			syllables[i] = append(cur, "R")
			syllables[i+1] = next[1:]
		}
	}

	out := syllables[:0]
	for _, group := range syllables {
		if len(group) > 0 {
			out = append(out, group)
		}
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

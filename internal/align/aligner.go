// Package align maps syllable boundaries of a pronunciation onto split
// points of the spelled word.
package align

import (
	"strings"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// Aligner is a pure function over its grapheme table and safe for
// concurrent use.
type Aligner struct {
	graphemes  *phonetics.GraphemeTable
	strategies []Strategy
}

// New creates an Aligner using the default strategy order.
func New(graphemes *phonetics.GraphemeTable) *Aligner {
	return &Aligner{graphemes: graphemes, strategies: DefaultStrategies()}
}

// NewWithStrategies creates an Aligner with an explicit strategy order.
func NewWithStrategies(graphemes *phonetics.GraphemeTable, strategies []Strategy) *Aligner {
	return &Aligner{graphemes: graphemes, strategies: strategies}
}

// Align splits an upper-case word into one span per pronunciation unit.
// Units are space-joined phoneme groups ("V EH N").
//
// When some boundary cannot be placed, splitting stops and the rest of the
// word becomes the last span, so the result is shorter than units. Callers
// must check Complete.
func (a *Aligner) Align(word string, units []string) domain.Hyphenation {
	if len(units) <= 1 || word == "" {
		return domain.Hyphenation{word}
	}

	spans := make(domain.Hyphenation, 0, len(units))
	remaining := word
	skip := 0
	for i := 0; i+1 < len(units); i++ {
		cur, next := domain.SplitUnit(units[i]), domain.SplitUnit(units[i+1])
		if len(cur) == 0 || len(next) == 0 {
			break
		}

		s, ok := a.boundary(remaining, skip, cur, next)
		if !ok {
			break
		}
		spans = append(spans, remaining[:s.split])
		remaining = remaining[s.split:]
		skip = s.skip
	}
	return append(spans, remaining)
}

// Complete reports whether the hyphenation has one span per unit.
func Complete(h domain.Hyphenation, units []string) bool {
	return len(h) == len(units)
}

type split struct {
	split int // split position in the remaining spelling
	skip  int // letters of the next span already accounted for
}

// boundary tries the strategies in order and returns the first placement.
// Only the first strategy honours the skip offset, fallbacks search the
// whole remaining spelling.
func (a *Aligner) boundary(remaining string, skip int, cur, next []string) (split, bool) {
	for i, st := range a.strategies {
		p, ok := st.Probe(cur, next)
		if !ok {
			continue
		}

		offset := 0
		if i == 0 {
			offset = min(skip, len(remaining))
		}
		m, ok := a.bestMatch(remaining[offset:], p)
		if !ok {
			continue
		}

		s := split{split: offset + m.index}
		if p.Unit < len(next)-1 {
			s.skip = m.length
		}
		return s, true
	}
	return split{}, false
}

type match struct {
	index  int
	length int
}

// bestMatch finds the leftmost position where a grapheme of p.End ends and
// a grapheme of p.Start begins. Ties go to the shortest start grapheme.
func (a *Aligner) bestMatch(text string, p Probe) (match, bool) {
	ends := make(map[int]bool)
	for _, g := range a.graphemes.Candidates(p.End) {
		for _, idx := range occurrences(text, g) {
			ends[idx+len(g)] = true
		}
	}
	if len(ends) == 0 {
		return match{}, false
	}

	best := match{index: -1}
	for _, g := range a.graphemes.Candidates(p.Start) {
		for _, idx := range occurrences(text, g) {
			if !ends[idx] {
				continue
			}
			if best.index < 0 || idx < best.index || (idx == best.index && len(g) < best.length) {
				best = match{index: idx, length: len(g)}
			}
		}
	}
	return best, best.index >= 0
}

// occurrences returns every (possibly overlapping) start index of sub in s.
func occurrences(s, sub string) []int {
	var out []int
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.HasPrefix(s[i:], sub) {
			out = append(out, i)
		}
	}
	return out
}

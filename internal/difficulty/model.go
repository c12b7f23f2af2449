// Package difficulty scores how hard a word is to read and to spell from
// corpus-wide spelling/sound transition statistics.
package difficulty

import (
	"math"
	"slices"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Direction selects which side of an aligned row is the source unit.
type Direction int

const (
	// Reading maps a spelled syllable to its pronunciation unit.
	Reading Direction = iota
	// Spelling maps a pronunciation unit to its spelled syllable.
	Spelling
)

func (d Direction) String() string {
	if d == Spelling {
		return "spelling"
	}
	return "reading"
}

// units returns the source and target sequences of a row.
func (d Direction) units(row domain.WordRow) (src, tgt []string) {
	if d == Spelling {
		return row.Pronunciation, row.Syllables
	}
	return row.Syllables, row.Pronunciation
}

// TransitionModel counts how often each source unit maps to each target
// unit. Immutable after Train returns.
type TransitionModel struct {
	dir     Direction
	counts  map[string]map[string]int
	totals  map[string]int
	entropy map[string]float64
	skipped int
}

// Train builds a model over rows. Rows whose syllables and pronunciation
// units do not pair up are skipped and counted.
func Train(rows []domain.WordRow, dir Direction) *TransitionModel {
	m := &TransitionModel{
		dir:     dir,
		counts:  make(map[string]map[string]int),
		totals:  make(map[string]int),
		entropy: make(map[string]float64),
	}

	for _, row := range rows {
		if !row.Aligned() {
			m.skipped++
			continue
		}
		src, tgt := dir.units(row)
		for i := range src {
			targets, ok := m.counts[src[i]]
			if !ok {
				targets = make(map[string]int)
				m.counts[src[i]] = targets
			}
			targets[tgt[i]]++
			m.totals[src[i]]++
		}
	}

	for src, total := range m.totals {
		var h float64
		for _, c := range m.counts[src] {
			p := float64(c) / float64(total)
			h -= p * math.Log2(p)
		}
		m.entropy[src] = h
	}
	return m
}

// Direction returns the direction the model was trained in.
func (m *TransitionModel) Direction() Direction { return m.dir }

// Count returns how often src mapped to tgt.
func (m *TransitionModel) Count(src, tgt string) int {
	return m.counts[src][tgt]
}

// Total returns how often src was observed.
func (m *TransitionModel) Total(src string) int {
	return m.totals[src]
}

// Entropy returns the Shannon entropy (bits) of the target distribution of
// src, and false when src was never observed.
func (m *TransitionModel) Entropy(src string) (float64, bool) {
	h, ok := m.entropy[src]
	return h, ok
}

// Sources returns every observed source unit, sorted.
func (m *TransitionModel) Sources() []string {
	out := make([]string, 0, len(m.totals))
	for src := range m.totals {
		out = append(out, src)
	}
	slices.Sort(out)
	return out
}

// Skipped returns the number of rows left out of training.
func (m *TransitionModel) Skipped() int { return m.skipped }

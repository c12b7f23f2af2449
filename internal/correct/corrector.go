// Package correct repairs systematic errors of the grapheme aligner with a
// fixed sequence of letter-moving rules.
package correct

import (
	"strings"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// pureConsonants are letters that never act as a vowel. R and Y are left
// out on purpose.
const pureConsonants = "BCDFGHJKLMNPQSTVWXZ"

func isPureConsonant(c byte) bool {
	return strings.IndexByte(pureConsonants, c) >= 0
}

// Pass rewrites a hyphenation given the pronunciation units it was aligned
// against. A pass receives its own copy and may modify it.
type Pass struct {
	Name  string
	Apply func(h domain.Hyphenation, units []string) domain.Hyphenation
}

// Corrector runs every pass once, in order. Safe for concurrent use.
type Corrector struct {
	passes []Pass
}

// New creates a Corrector with the standard pass order.
func New(table *phonetics.Table) *Corrector {
	return &Corrector{passes: []Pass{
		{Name: "suffix", Apply: multiSyllable(reattachSuffix)},
		{Name: "double-consonant", Apply: multiSyllable(groupDoubleConsonants)},
		{Name: "r-coloring", Apply: multiSyllable(repairR)},
		{Name: "ng-digraph", Apply: multiSyllable(repairNG)},
		{Name: "single-vowel", Apply: multiSyllable(donateFromSingleVowel(table))},
	}}
}

// Passes returns the passes in application order.
func (c *Corrector) Passes() []Pass {
	return c.passes
}

// Correct applies every pass once. The input is not modified.
func (c *Corrector) Correct(h domain.Hyphenation, units []string) domain.Hyphenation {
	out := append(domain.Hyphenation(nil), h...)
	for _, p := range c.passes {
		out = p.Apply(out, units)
	}
	return out
}

// multiSyllable drops empty spans and leaves hyphenations with fewer than
// two spans alone.
func multiSyllable(fn func(domain.Hyphenation, []string) domain.Hyphenation) func(domain.Hyphenation, []string) domain.Hyphenation {
	return func(h domain.Hyphenation, units []string) domain.Hyphenation {
		h = dropEmpty(h)
		if len(h) <= 1 {
			return h
		}
		return fn(h, units)
	}
}

func dropEmpty(h domain.Hyphenation) domain.Hyphenation {
	out := make(domain.Hyphenation, 0, len(h))
	for _, span := range h {
		if span != "" {
			out = append(out, span)
		}
	}
	return out
}

func hasEmpty(h domain.Hyphenation) bool {
	for _, span := range h {
		if span == "" {
			return true
		}
	}
	return false
}

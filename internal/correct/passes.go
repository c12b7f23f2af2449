package correct

import (
	"strings"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// Vowel-initial suffixes by part of speech. No adverb suffix starts with a
// vowel.
var (
	nounSuffixes = []string{
		"AGE", "AL", "ANCE", "ENCE", "ERY", "ITY", "ORY", "OUS",
		"EE", "ER", "OR", "ISM", "IST", "ENT", "Y", "ION", "EST",
	}
	adjectiveSuffixes = []string{
		"ABLE", "IBLE", "AL", "UL", "EN", "ESE", "I", "IC", "ISH", "IVE", "IAN", "OUS", "IOUS",
	}
	verbSuffixes = []string{"ATE", "EN", "IFY", "ISE", "IZE", "ED", "ING"}
)

var suffixes = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range [][]string{nounSuffixes, adjectiveSuffixes, verbSuffixes} {
		for _, s := range group {
			set[s] = struct{}{}
		}
	}
	return set
}()

// IsSuffix reports whether span is one of the pooled vowel-initial suffixes.
func IsSuffix(span string) bool {
	_, ok := suffixes[span]
	return ok
}

// reattachSuffix moves the consonant before a final suffix span into it
// (JUMP|ING -> JUM|PING). A trailing GH moves as a pair. The preceding
// span is never emptied.
func reattachSuffix(h domain.Hyphenation, _ []string) domain.Hyphenation {
	n := len(h)
	last, prev := h[n-1], h[n-2]
	if !IsSuffix(last) || !isPureConsonant(prev[len(prev)-1]) {
		return h
	}

	take := 1
	if strings.HasSuffix(prev, "GH") {
		take = 2
	}
	if take >= len(prev) {
		return h
	}
	h[n-2] = prev[:len(prev)-take]
	h[n-1] = prev[len(prev)-take:] + last
	return h
}

// groupDoubleConsonants handles a letter shared across a boundary. A pure
// consonant moves to the next span (BUT|TER -> BU|TTER); an R pulls the
// next span's first letter back (CAR|RY -> CARR|Y). A boundary is revisited
// while the move keeps it shared.
func groupDoubleConsonants(h domain.Hyphenation, _ []string) domain.Hyphenation {
	i := 0
	for i < len(h)-1 {
		cur, next := h[i], h[i+1]
		moved := false
		if cur[len(cur)-1] == next[0] {
			c := cur[len(cur)-1]
			switch {
			case isPureConsonant(c):
				h[i], h[i+1] = cur[:len(cur)-1], string(c)+next
				moved = true
			case c == 'R':
				h[i], h[i+1] = cur+next[:1], next[1:]
				moved = true
			}
		}

		if hasEmpty(h) {
			h = dropEmpty(h)
			continue
		}
		if !moved || h[i][len(h[i])-1] != h[i+1][0] {
			i++
		}
	}
	return h
}

// repairR fixes an R on the wrong side of a boundary. When the unit ends in
// R but the span does not, a leading R of the next span moves back; when
// the span ends in R that the unit lacks, it moves forward.
func repairR(h domain.Hyphenation, units []string) domain.Hyphenation {
	for i := 0; i+1 < len(h) && i < len(units); i++ {
		unit, cur, next := units[i], h[i], h[i+1]
		if unit == "" || cur == "" || next == "" {
			continue
		}

		unitR := strings.HasSuffix(unit, "R")
		spanR := strings.HasSuffix(cur, "R")
		switch {
		case unitR && !spanR && strings.HasPrefix(next, "R"):
			h[i], h[i+1] = cur+"R", next[1:]
		case !unitR && spanR && !strings.HasPrefix(next, "R"):
			h[i], h[i+1] = cur[:len(cur)-1], "R"+next
		}
	}
	return dropEmpty(h)
}

// repairNG keeps the letters of an NG phoneme on the side of the boundary
// where the pronunciation puts it.
func repairNG(h domain.Hyphenation, units []string) domain.Hyphenation {
	n := len(h)
	for i := 0; i < n && i < len(units); i++ {
		unit := units[i]

		if strings.HasSuffix(unit, "NG") && i+1 < n {
			cur, next := h[i], h[i+1]
			switch {
			case strings.HasSuffix(cur, "N") && strings.HasPrefix(next, "G"):
				h[i], h[i+1] = cur+"G", next[1:]
			case !strings.HasSuffix(cur, "NG") && strings.HasPrefix(next, "NG"):
				h[i], h[i+1] = cur+"NG", next[2:]
			}
		}

		if strings.HasPrefix(unit, "NG") && i > 0 {
			prev, cur := h[i-1], h[i]
			switch {
			case strings.HasPrefix(cur, "G") && strings.HasSuffix(prev, "N"):
				h[i-1], h[i] = prev[:len(prev)-1], "N"+cur
			case !strings.HasPrefix(cur, "N") && strings.HasSuffix(prev, "NG"):
				h[i-1], h[i] = prev[:len(prev)-2], "NG"+cur
			}
		}
	}
	return dropEmpty(h)
}

// donateFromSingleVowel handles syllables spoken as a lone phoneme: the
// trailing pure consonants of their span belong to the next syllable
// (AB|OUT -> A|BOUT). The donor keeps at least one letter.
func donateFromSingleVowel(table *phonetics.Table) func(domain.Hyphenation, []string) domain.Hyphenation {
	return func(h domain.Hyphenation, units []string) domain.Hyphenation {
		for i := 0; i+1 < len(h) && i < len(units); i++ {
			if !table.Has(units[i]) {
				continue
			}
			span := h[i]
			for len(span) > 1 && isPureConsonant(span[len(span)-1]) {
				h[i+1] = span[len(span)-1:] + h[i+1]
				span = span[:len(span)-1]
			}
			h[i] = span
		}
		return h
	}
}

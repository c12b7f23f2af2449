package lexicon

import (
	"cmp"
	"slices"

	"github.com/antzucaro/matchr"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

const (
	minSuggestionScore = 0.8
	metaphoneBonus     = 0.05
)

// Suggestion is a lexicon word close to a missed lookup.
type Suggestion struct {
	Word  string
	Score float64
}

type suggestKey struct {
	word string
	n    int
}

// soundCode is the Double Metaphone encoding of a lexicon word.
type soundCode struct {
	word                string
	primary, secondary string
}

// encodeWords computes the Double Metaphone codes of the snapshot once, so
// a lookup miss only encodes the missed word.
func encodeWords(words []string) []soundCode {
	out := make([]soundCode, len(words))
	for i, w := range words {
		p, s := matchr.DoubleMetaphone(w)
		out[i] = soundCode{word: w, primary: p, secondary: s}
	}
	return out
}

func (c soundCode) soundsLike(primary, secondary string) bool {
	return primary != "" && (primary == c.primary || (secondary != "" && secondary == c.secondary))
}

// Suggest returns up to n lexicon words closest to word by Jaro-Winkler
// similarity, with a small bonus for words that sound alike. Results are
// cached per (word, n).
func (s *Service) Suggest(word string, n int) []Suggestion {
	w := domain.NormalizeWord(word)
	if w == "" || n <= 0 {
		return []Suggestion{}
	}

	key := suggestKey{word: w, n: n}
	if cached, ok := s.suggestions.Get(key); ok {
		return slices.Clone(cached)
	}

	out := s.rankSuggestions(w, n)
	s.suggestions.Add(key, out)
	return slices.Clone(out)
}

func (s *Service) rankSuggestions(w string, n int) []Suggestion {
	p1, s1 := matchr.DoubleMetaphone(w)

	out := make([]Suggestion, 0, n)
	for _, c := range s.codes {
		if c.word == w {
			continue
		}
		score := matchr.JaroWinkler(w, c.word, false)
		if score < minSuggestionScore-metaphoneBonus {
			continue
		}
		if c.soundsLike(p1, s1) {
			score = min(score+metaphoneBonus, 1)
		}
		if score < minSuggestionScore {
			continue
		}
		out = append(out, Suggestion{Word: c.word, Score: score})
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

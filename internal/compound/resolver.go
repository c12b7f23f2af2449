// Package compound detects closed compound words ("HOMEOWNER") and expands
// them into their component words.
package compound

// Thresholds gate which splits are accepted.
type Thresholds struct {
	// MinPartLen is the minimum length of each part.
	MinPartLen int
	// Floor is the frequency the rarer part must exceed.
	Floor int64
	// Ceiling is the frequency the more common part must exceed.
	Ceiling int64
}

// DefaultThresholds returns the thresholds used for the English corpus.
func DefaultThresholds() Thresholds {
	return Thresholds{MinPartLen: 3, Floor: 1_000_000, Ceiling: 15_000_000}
}

// BoundSuffixes are suffixes that also appear as words in the frequency
// list; a split whose trailing part is one of them is rejected.
var BoundSuffixes = []string{
	"ING", "NESS", "MENT", "TION", "ITY",
	"FUL", "LESS", "ABLE", "IBLE", "IZE", "ISE", "HER",
}

// Resolver splits words over a vocabulary with known frequencies.
// Read-only after construction.
type Resolver struct {
	freq  map[string]int64
	th    Thresholds
	bound map[string]struct{}
}

// New creates a Resolver. The keys of freq are the vocabulary.
func New(freq map[string]int64, th Thresholds) *Resolver {
	bound := make(map[string]struct{}, len(BoundSuffixes))
	for _, s := range BoundSuffixes {
		bound[s] = struct{}{}
	}
	return &Resolver{freq: freq, th: th, bound: bound}
}

// Split returns the leftmost accepted two-part split of word, or [word].
func (r *Resolver) Split(word string) []string {
	for i := 1; i < len(word); i++ {
		start, end := word[:i], word[i:]
		if len(start) < r.th.MinPartLen || len(end) < r.th.MinPartLen {
			continue
		}
		if _, ok := r.bound[end]; ok {
			continue
		}

		fs, okStart := r.freq[start]
		fe, okEnd := r.freq[end]
		if !okStart || !okEnd {
			continue
		}
		if max(fs, fe) > r.th.Ceiling && min(fs, fe) > r.th.Floor {
			return []string{start, end}
		}
	}
	return []string{word}
}

// Resolve splits and fully expands every word.
func (r *Resolver) Resolve(words []string) Decomposition {
	return Expand(words, r.Split)
}

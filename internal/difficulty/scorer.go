package difficulty

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Params tunes the scorer.
type Params struct {
	WeightMatch      float64
	WeightAmbiguity  float64
	WeightComplexity float64
	WeightLength     float64

	// SmoothingK is the additive smoothing of the match probability.
	SmoothingK float64
	// MaxLogFrequency is the log10 frequency that earns the full discount.
	MaxLogFrequency float64
	// MaxSyllables is the syllable count that earns the full length score.
	MaxSyllables float64
	// Discount is the largest share of the reading score a frequent word
	// can lose. SpellingDiscountRatio scales it for spelling.
	Discount              float64
	SpellingDiscountRatio float64
	// UnseenEntropy stands in for units absent from the model.
	UnseenEntropy float64
	// EntropyScale maps entropy onto [0,1].
	EntropyScale float64
}

// DefaultParams returns the standard weights and constants.
func DefaultParams() Params {
	return Params{
		WeightMatch:           0.35,
		WeightAmbiguity:       0.25,
		WeightComplexity:      0.20,
		WeightLength:          0.20,
		SmoothingK:            5,
		MaxLogFrequency:       7,
		MaxSyllables:          6,
		Discount:              0.4,
		SpellingDiscountRatio: 0.7,
		UnseenEntropy:         1.5,
		EntropyScale:          3,
	}
}

// ParamsFromConfig converts the configuration section into Params.
func ParamsFromConfig(cfg config.DifficultyConfig) Params {
	return Params{
		WeightMatch:           cfg.WeightMatch,
		WeightAmbiguity:       cfg.WeightAmbiguity,
		WeightComplexity:      cfg.WeightComplexity,
		WeightLength:          cfg.WeightLength,
		SmoothingK:            cfg.SmoothingK,
		MaxLogFrequency:       cfg.MaxLogFrequency,
		MaxSyllables:          cfg.MaxSyllables,
		Discount:              cfg.Discount,
		SpellingDiscountRatio: cfg.SpellingDiscountRatio,
		UnseenEntropy:         cfg.UnseenEntropy,
		EntropyScale:          cfg.EntropyScale,
	}
}

var vowelCluster = regexp.MustCompile(`(?i)[AEIOUY]{2,}`)

// Scorer holds both trained models. Safe for concurrent use.
type Scorer struct {
	reading  *TransitionModel
	spelling *TransitionModel
	p        Params
}

// NewScorer trains the reading and spelling models concurrently. Each
// goroutine owns the model it builds.
func NewScorer(ctx context.Context, rows []domain.WordRow, p Params) (*Scorer, error) {
	s := &Scorer{p: p}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.reading = Train(rows, Reading)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.spelling = Train(rows, Spelling)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("difficulty: train: %w", err)
	}
	return s, nil
}

// Model returns the model trained for dir.
func (s *Scorer) Model(dir Direction) *TransitionModel {
	if dir == Spelling {
		return s.spelling
	}
	return s.reading
}

type metrics struct {
	match      float64
	ambiguity  float64
	complexity float64
}

func (s *Scorer) metrics(m *TransitionModel, src, tgt []string) metrics {
	var (
		worstMatch, sumMatch float64
		sumAmbiguity         float64
		worstComplexity      float64
	)
	for i := range src {
		c := float64(m.Count(src[i], tgt[i]))
		tot := float64(m.Total(src[i]))
		surprise := 1 - (c+1)/(tot+s.p.SmoothingK)
		worstMatch = max(worstMatch, surprise)
		sumMatch += surprise

		h, ok := m.Entropy(src[i])
		if !ok {
			h = s.p.UnseenEntropy
		}
		sumAmbiguity += min(h/s.p.EntropyScale, 1)

		clusters := len(vowelCluster.FindAllStringIndex(src[i], -1))
		excess := max(0, len(src[i])-len(tgt[i]))
		worstComplexity = max(worstComplexity, min(0.2*float64(clusters)+0.1*float64(excess), 1))
	}

	n := float64(len(src))
	return metrics{
		match:      0.6*worstMatch + 0.4*sumMatch/n,
		ambiguity:  sumAmbiguity / n,
		complexity: worstComplexity,
	}
}

// lengthScore curves the syllable count so medium words already count.
func (s *Scorer) lengthScore(syllables int) float64 {
	v := float64(syllables-1) / (s.p.MaxSyllables - 1)
	v = min(max(v, 0), 1)
	return math.Pow(v, 0.7)
}

// FrequencyFactor maps a raw corpus frequency onto [0,1].
func (s *Scorer) FrequencyFactor(freq int64) float64 {
	if freq <= 0 {
		return 0
	}
	return min(max(math.Log10(float64(freq))/s.p.MaxLogFrequency, 0), 1)
}

// Raw returns the unnormalized reading and spelling scores of row, and
// false when its units do not pair up.
func (s *Scorer) Raw(row domain.WordRow) (reading, spelling float64, ok bool) {
	if !row.Aligned() {
		return 0, 0, false
	}

	length := s.lengthScore(len(row.Syllables))
	ff := s.FrequencyFactor(row.Frequency)

	combine := func(m metrics, discount float64) float64 {
		base := m.match*s.p.WeightMatch +
			m.ambiguity*s.p.WeightAmbiguity +
			m.complexity*s.p.WeightComplexity +
			length*s.p.WeightLength
		return base * (1 - ff*discount)
	}

	rsrc, rtgt := Reading.units(row)
	ssrc, stgt := Spelling.units(row)
	reading = combine(s.metrics(s.reading, rsrc, rtgt), s.p.Discount)
	spelling = combine(s.metrics(s.spelling, ssrc, stgt), s.p.Discount*s.p.SpellingDiscountRatio)
	return reading, spelling, true
}

// Result is the outcome of scoring a corpus.
type Result struct {
	Scores   map[string]domain.DifficultyScore
	Excluded int
}

// ScoreCorpus scores every row and min-max normalizes each direction over
// the whole corpus. When a direction has a single distinct raw value every
// word scores 0 in it.
func (s *Scorer) ScoreCorpus(rows []domain.WordRow) Result {
	type raw struct {
		word              string
		reading, spelling float64
	}

	res := Result{Scores: make(map[string]domain.DifficultyScore, len(rows))}
	scored := make([]raw, 0, len(rows))
	for _, row := range rows {
		r, sp, ok := s.Raw(row)
		if !ok {
			res.Excluded++
			continue
		}
		scored = append(scored, raw{word: row.Word, reading: r, spelling: sp})
	}
	if len(scored) == 0 {
		return res
	}

	rMin, rMax := scored[0].reading, scored[0].reading
	sMin, sMax := scored[0].spelling, scored[0].spelling
	for _, r := range scored[1:] {
		rMin, rMax = min(rMin, r.reading), max(rMax, r.reading)
		sMin, sMax = min(sMin, r.spelling), max(sMax, r.spelling)
	}

	for _, r := range scored {
		res.Scores[r.word] = domain.DifficultyScore{
			Reading:  normalize(r.reading, rMin, rMax),
			Spelling: normalize(r.spelling, sMin, sMax),
		}
	}
	return res
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

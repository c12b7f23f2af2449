// Package lexicon serves read-only queries over a frozen lexicon snapshot.
package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/freqindex"
	"github.com/heartmarshall/lexarch-backend/internal/lexicon"
)

type historyFetcher interface {
	Fetch(ctx context.Context, query string) []domain.UsageSeries
}

// Service answers lookups, similarity and ambiguity queries. It never
// mutates the snapshot and is safe for concurrent use.
type Service struct {
	log             *slog.Logger
	snap            *lexicon.Snapshot
	history         historyFetcher
	similar         *lru.Cache[string, []freqindex.WordFrequency]
	suggestions     *lru.Cache[suggestKey, []Suggestion]
	codes           []soundCode
	similarLimit    int
	suggestionLimit int
}

// NewService creates a query service. history may be nil, in which case
// History always returns an empty result.
func NewService(logger *slog.Logger, snap *lexicon.Snapshot, history historyFetcher, cfg config.QueryConfig) (*Service, error) {
	cache, err := lru.New[string, []freqindex.WordFrequency](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create similar-words cache: %w", err)
	}
	suggestions, err := lru.New[suggestKey, []Suggestion](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create suggestions cache: %w", err)
	}
	return &Service{
		log:             logger.With("service", "lexicon"),
		snap:            snap,
		history:         history,
		similar:         cache,
		suggestions:     suggestions,
		codes:           encodeWords(snap.Words()),
		similarLimit:    cfg.SimilarLimit,
		suggestionLimit: cfg.SuggestionLimit,
	}, nil
}

// SuggestionLimit is the default number of suggestions returned on a miss.
func (s *Service) SuggestionLimit() int { return s.suggestionLimit }

// GetWord returns the analysed entry for word. A word absent from the
// lexicon yields an error wrapping domain.ErrNotFound.
func (s *Service) GetWord(ctx context.Context, word string) (domain.WordEntry, error) {
	w, err := normalizeInput(word)
	if err != nil {
		return domain.WordEntry{}, err
	}

	e, ok := s.snap.Lookup(w)
	if !ok {
		s.log.DebugContext(ctx, "lookup miss", slog.String("word", w))
		return domain.WordEntry{}, fmt.Errorf("word %s: %w", w, domain.ErrNotFound)
	}
	return e, nil
}

// Similar returns words sharing at least one syllable signature with word,
// most frequent first. Compounds have no signatures and yield nothing.
func (s *Service) Similar(ctx context.Context, word string) ([]freqindex.WordFrequency, error) {
	e, err := s.GetWord(ctx, word)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.similar.Get(e.Word); ok {
		return cached, nil
	}

	out := s.snap.Index().SimilarWords(e.Row(), s.similarLimit)
	if out == nil {
		out = []freqindex.WordFrequency{}
	}
	s.similar.Add(e.Word, out)
	return out, nil
}

// Ratios returns, for every word sharing a syllable signature with word,
// its frequency relative to word's.
func (s *Service) Ratios(ctx context.Context, word string) ([]freqindex.Ratio, error) {
	e, err := s.GetWord(ctx, word)
	if err != nil {
		return nil, err
	}

	out := s.snap.Index().FrequencyRatios(e.Row())
	if out == nil {
		out = []freqindex.Ratio{}
	}
	return out, nil
}

// History returns the historical usage of word, queried in lower case.
// Provider failures are absorbed and reported as an empty result.
func (s *Service) History(ctx context.Context, word string) ([]domain.UsageSeries, error) {
	w, err := normalizeInput(word)
	if err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.UsageSeries{}, nil
	}

	series := s.history.Fetch(ctx, strings.ToLower(w))
	if series == nil {
		return []domain.UsageSeries{}, nil
	}
	return series, nil
}

func normalizeInput(word string) (string, error) {
	w := domain.NormalizeWord(word)
	if w == "" {
		return "", domain.NewValidationError("word", "required")
	}
	return w, nil
}

package builder

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/seeder/cmu"
	"github.com/heartmarshall/lexarch-backend/internal/seeder/unigram"
)

// Corpus is the raw input of a build.
type Corpus struct {
	// Pronunciations maps a word to its primary ARPAbet pronunciation.
	Pronunciations map[string][]string
	Frequency      map[string]int64
	Acronyms       map[string]struct{}
}

// Source supplies the corpus.
type Source interface {
	Load(ctx context.Context) (Corpus, error)
}

// FileSource reads the corpus files named in the configuration.
type FileSource struct {
	cfg config.CorpusConfig
	log *slog.Logger
}

// NewFileSource creates a FileSource.
func NewFileSource(cfg config.CorpusConfig, log *slog.Logger) *FileSource {
	return &FileSource{cfg: cfg, log: log}
}

// Load parses the three files concurrently. The acronym list is optional.
func (s *FileSource) Load(ctx context.Context) (Corpus, error) {
	if s.cfg.CMUDictPath == "" || s.cfg.FrequencyPath == "" {
		return Corpus{}, fmt.Errorf("corpus paths not configured")
	}

	var c Corpus
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		parsed, err := cmu.ParseFile(s.cfg.CMUDictPath)
		if err != nil {
			return fmt.Errorf("parse cmu: %w", err)
		}
		s.log.InfoContext(ctx, "cmu parsed",
			slog.Int("unique_words", parsed.Stats.UniqueWords),
			slog.Int("non_alpha", parsed.Stats.NonAlphaWords),
		)
		c.Pronunciations = parsed.Primary()
		return nil
	})

	g.Go(func() error {
		freq, stats, err := unigram.ParseFile(s.cfg.FrequencyPath)
		if err != nil {
			return fmt.Errorf("parse frequency list: %w", err)
		}
		s.log.InfoContext(ctx, "frequency list parsed",
			slog.Int("unique_words", stats.UniqueWords),
			slog.Int("skipped_rows", stats.SkippedRows),
		)
		c.Frequency = freq
		return nil
	})

	g.Go(func() error {
		if s.cfg.AcronymsPath == "" {
			c.Acronyms = map[string]struct{}{}
			return nil
		}
		acr, err := cmu.ParseAcronymsFile(s.cfg.AcronymsPath)
		if err != nil {
			return fmt.Errorf("parse acronyms: %w", err)
		}
		c.Acronyms = acr
		return nil
	})

	if err := g.Wait(); err != nil {
		return Corpus{}, err
	}
	return c, nil
}

package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexarch-backend/internal/align"
	"github.com/heartmarshall/lexarch-backend/internal/compound"
	"github.com/heartmarshall/lexarch-backend/internal/correct"
	"github.com/heartmarshall/lexarch-backend/internal/difficulty"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/lexicon"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
	"github.com/heartmarshall/lexarch-backend/internal/seeder/cmu"
	"github.com/heartmarshall/lexarch-backend/internal/syllable"
)

// Phase names in canonical execution order.
const (
	PhaseLoad      = "load"
	PhaseSyllabify = "syllabify"
	PhaseCompound  = "compound"
	PhaseAlign     = "align"
	PhaseScore     = "score"
	PhasePersist   = "persist"
)

var allPhases = []string{PhaseLoad, PhaseSyllabify, PhaseCompound, PhaseAlign, PhaseScore, PhasePersist}

// Phases returns the phase names in execution order.
func Phases() []string {
	return slices.Clone(allPhases)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Processed int
	Excluded  int
	Skipped   int
	Duration  time.Duration
	Err       error
}

// Deps are the collaborators of a Pipeline.
type Deps struct {
	Source     Source
	Repo       WordRepo
	Tx         TxRunner
	Table      *phonetics.Table
	Graphemes  *phonetics.GraphemeTable
	Thresholds compound.Thresholds
	Params     difficulty.Params
}

// Pipeline orchestrates the build. A Pipeline runs once; its intermediate
// state is owned by the running goroutine and the resulting Snapshot is
// frozen.
type Pipeline struct {
	log     *slog.Logger
	cfg     Config
	deps    Deps
	buildID uuid.UUID
	results map[string]PhaseResult

	syllabifier *syllable.Syllabifier
	aligner     *align.Aligner
	corrector   *correct.Corrector

	// build state, filled phase by phase
	startedAt  time.Time
	corpus     Corpus
	words      []string
	units      map[string]domain.Syllabification
	decomposed compound.Decomposition
	entries    []domain.WordEntry
	compounds  []domain.WordEntry
	snapshot   *lexicon.Snapshot
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg Config, deps Deps) *Pipeline {
	buildID := uuid.New()
	return &Pipeline{
		log:         log.With(slog.String("build_id", buildID.String())),
		cfg:         cfg,
		deps:        deps,
		buildID:     buildID,
		results:     make(map[string]PhaseResult),
		syllabifier: syllable.New(deps.Table),
		aligner:     align.New(deps.Graphemes),
		corrector:   correct.New(deps.Table),
	}
}

// BuildID identifies the entries written by this pipeline.
func (p *Pipeline) BuildID() uuid.UUID {
	return p.buildID
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Snapshot returns the frozen lexicon, or nil when the score phase has not
// run.
func (p *Pipeline) Snapshot() *lexicon.Snapshot {
	return p.snapshot
}

// Run executes the phases in order up to and including until (all phases
// when until is empty). The first failing phase aborts the run; nothing is
// persisted unless every earlier phase succeeded.
func (p *Pipeline) Run(ctx context.Context, until string) error {
	toRun := allPhases
	if until != "" {
		i := slices.Index(allPhases, until)
		if i < 0 {
			return fmt.Errorf("unknown phase %q", until)
		}
		toRun = allPhases[:i+1]
	}

	p.startedAt = time.Now()
	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseLoad:
			result = p.runLoad(ctx)
		case PhaseSyllabify:
			result = p.runSyllabify()
		case PhaseCompound:
			result = p.runCompound()
		case PhaseAlign:
			result = p.runAlign()
		case PhaseScore:
			result = p.runScore(ctx)
		case PhasePersist:
			result = p.runPersist(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Error("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("processed", result.Processed),
			slog.Int("excluded", result.Excluded),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// runLoad keeps the words that have both a pronunciation and a frequency,
// minus acronyms.
func (p *Pipeline) runLoad(ctx context.Context) PhaseResult {
	c, err := p.deps.Source.Load(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load corpus: %w", err)}
	}
	p.corpus = c

	p.words = p.words[:0]
	for w := range c.Pronunciations {
		if _, ok := c.Frequency[w]; !ok {
			continue
		}
		if _, ok := c.Acronyms[w]; ok {
			continue
		}
		p.words = append(p.words, w)
	}
	slices.Sort(p.words)

	return PhaseResult{Processed: len(p.words), Excluded: len(c.Pronunciations) - len(p.words)}
}

// runSyllabify groups every loaded pronunciation. Words the syllabifier
// rejects are excluded and counted by cause.
func (p *Pipeline) runSyllabify() PhaseResult {
	p.units = make(map[string]domain.Syllabification, len(p.words))
	excl := make(exclusions)
	for _, w := range p.words {
		s, err := p.syllabifier.Syllabify(p.corpus.Pronunciations[w])
		if err != nil {
			if !domain.IsExclusion(err) {
				return PhaseResult{Err: fmt.Errorf("syllabify %s: %w", w, err)}
			}
			excl.add(err)
			p.log.Debug("word excluded", slog.String("word", w), slog.String("reason", err.Error()))
			continue
		}
		p.units[w] = s
	}
	excl.log(p.log, PhaseSyllabify)
	return PhaseResult{Processed: len(p.units), Excluded: excl.total()}
}

// runCompound resolves closed compounds over the loaded vocabulary. They
// leave the hyphenation corpus and keep their components and units only.
func (p *Pipeline) runCompound() PhaseResult {
	vocab := make(map[string]int64, len(p.words))
	for _, w := range p.words {
		vocab[w] = p.corpus.Frequency[w]
	}
	p.decomposed = compound.New(vocab, p.deps.Thresholds).Resolve(p.words)

	p.compounds = p.compounds[:0]
	for _, w := range p.words {
		parts := p.decomposed.Components(w)
		if len(parts) < 2 {
			continue
		}
		phonemes := p.corpus.Pronunciations[w]
		e := domain.WordEntry{
			Word:       w,
			Phonemes:   phonemes,
			IPA:        cmu.PhonemesToIPA(phonemes),
			Components: parts,
			Frequency:  p.corpus.Frequency[w],
		}
		if s, ok := p.units[w]; ok {
			e.Units = s.Units()
		}
		p.compounds = append(p.compounds, e)
	}
	return PhaseResult{Processed: len(p.words), Excluded: len(p.compounds)}
}

// runAlign aligns and corrects every syllabified non-compound word. Words
// whose hyphenation does not pair up with their units, before or after
// correction, are excluded.
func (p *Pipeline) runAlign() PhaseResult {
	p.entries = p.entries[:0]
	excl := make(exclusions)
	for _, w := range p.words {
		s, ok := p.units[w]
		components := p.decomposed.Components(w)
		if !ok || len(components) > 1 {
			continue
		}
		units := s.Units()

		h := p.aligner.Align(w, units)
		if align.Complete(h, units) {
			h = p.corrector.Correct(h, units)
		}
		if !align.Complete(h, units) {
			excl.add(domain.ErrAlignmentIncomplete)
			p.log.Debug("word excluded", slog.String("word", w), slog.String("hyphenation", h.String()))
			continue
		}

		phonemes := p.corpus.Pronunciations[w]
		p.entries = append(p.entries, domain.WordEntry{
			Word:        w,
			Phonemes:    phonemes,
			IPA:         cmu.PhonemesToIPA(phonemes),
			Units:       units,
			Hyphenation: h,
			Components:  components,
			Frequency:   p.corpus.Frequency[w],
		})
	}
	excl.log(p.log, PhaseAlign)
	return PhaseResult{Processed: len(p.entries), Excluded: excl.total()}
}

// runScore trains the difficulty models on the aligned corpus, attaches
// normalized scores and freezes the snapshot.
func (p *Pipeline) runScore(ctx context.Context) PhaseResult {
	rows := make([]domain.WordRow, len(p.entries))
	for i, e := range p.entries {
		rows[i] = e.Row()
	}

	scorer, err := difficulty.NewScorer(ctx, rows, p.deps.Params)
	if err != nil {
		return PhaseResult{Err: err}
	}
	res := scorer.ScoreCorpus(rows)
	for i := range p.entries {
		if s, ok := res.Scores[p.entries[i].Word]; ok {
			p.entries[i].Difficulty = &s
		}
	}

	p.snapshot = lexicon.NewSnapshot(p.all())
	return PhaseResult{Processed: len(res.Scores), Excluded: res.Excluded}
}

// runPersist replaces the stored lexicon with this build in one
// transaction.
func (p *Pipeline) runPersist(ctx context.Context) PhaseResult {
	all := p.all()
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(all)}
	}

	for i := range all {
		all[i].BuildID = p.buildID
		all[i].CreatedAt = p.startedAt
	}

	var inserted int
	err := p.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		removed, err := p.deps.Repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete previous build: %w", err)
		}
		p.log.Info("previous build removed", slog.Int("words", removed))

		inserted, err = batchProcess(all, p.cfg.BatchSize, func(batch []domain.WordEntry) (int, error) {
			return p.deps.Repo.BulkInsert(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert words: %w", err)
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return PhaseResult{Processed: inserted}
}

// all returns aligned entries and compounds ordered by word.
func (p *Pipeline) all() []domain.WordEntry {
	out := make([]domain.WordEntry, 0, len(p.entries)+len(p.compounds))
	out = append(out, p.entries...)
	out = append(out, p.compounds...)
	slices.SortFunc(out, func(a, b domain.WordEntry) int {
		return strings.Compare(a.Word, b.Word)
	})
	return out
}

// exclusions counts excluded words by cause.
type exclusions map[error]int

var exclusionCauses = []error{
	domain.ErrNoVowel,
	domain.ErrUnknownPhoneme,
	domain.ErrLengthMismatch,
	domain.ErrAlignmentIncomplete,
}

func (e exclusions) add(err error) {
	for _, cause := range exclusionCauses {
		if errors.Is(err, cause) {
			e[cause]++
			return
		}
	}
	e[err]++
}

func (e exclusions) total() int {
	n := 0
	for _, c := range e {
		n += c
	}
	return n
}

func (e exclusions) log(log *slog.Logger, phase string) {
	for cause, n := range e {
		log.Info("words excluded",
			slog.String("phase", phase),
			slog.String("reason", cause.Error()),
			slog.Int("count", n),
		)
	}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/heartmarshall/lexarch-backend/internal/compound"
	"github.com/heartmarshall/lexarch-backend/internal/difficulty"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// mockRepo records calls to verify pipeline behavior.
type mockRepo struct {
	mu sync.Mutex

	inserted []domain.WordEntry
	batches  int
	deleted  bool

	deleteErr error
	insertErr error

	callLog []string
}

func (m *mockRepo) logCall(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, name)
}

func (m *mockRepo) DeleteAll(_ context.Context) (int, error) {
	m.logCall("DeleteAll")
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.mu.Lock()
	m.deleted = true
	m.mu.Unlock()
	return 3, nil
}

func (m *mockRepo) BulkInsert(_ context.Context, entries []domain.WordEntry) (int, error) {
	m.logCall("BulkInsert")
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.mu.Lock()
	m.inserted = append(m.inserted, entries...)
	m.batches++
	m.mu.Unlock()
	return len(entries), nil
}

// mockTx runs fn directly and records whether it was used.
type mockTx struct {
	calls int
}

func (m *mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type staticSource struct {
	corpus Corpus
	err    error
}

func (s staticSource) Load(context.Context) (Corpus, error) {
	return s.corpus, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCorpus() Corpus {
	pron := map[string]string{
		"EVENTUALLY": "IH0 V EH1 N CH AH0 W AH0 L IY0",
		"HELLO":      "HH AH0 L OW1",
		"BUTTER":     "B AH1 T ER0",
		"SINGER":     "S IH1 NG ER0",
		"HOME":       "HH OW1 M",
		"WORK":       "W ER1 K",
		"HOMEWORK":   "HH OW1 M W ER2 K",
		"HMM":        "HH M",
		"QUX":        "K W UX1",
		"XYZ":        "K AA1 B IY0",
		"NASA":       "N AE1 S AH0",
		"ZZZ":        "Z IY1",
	}
	c := Corpus{
		Pronunciations: make(map[string][]string, len(pron)),
		Frequency: map[string]int64{
			"EVENTUALLY": 3_000_000,
			"HELLO":      20_000_000,
			"BUTTER":     5_000_000,
			"SINGER":     4_000_000,
			"HOME":       5_000,
			"WORK":       2_000,
			"HOMEWORK":   100,
			"HMM":        1_000,
			"QUX":        10,
			"XYZ":        10,
			"NASA":       900_000,
			"ONLYFREQ":   50,
		},
		Acronyms: map[string]struct{}{"NASA": {}},
	}
	for w, p := range pron {
		c.Pronunciations[w] = strings.Fields(p)
	}
	return c
}

func newTestPipeline(t *testing.T, cfg Config, src Source, repo *mockRepo, tx *mockTx) *Pipeline {
	t.Helper()
	table, err := phonetics.DefaultTable()
	if err != nil {
		t.Fatal(err)
	}
	graphemes, err := phonetics.DefaultGraphemeTable()
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(testLogger(), cfg, Deps{
		Source:     src,
		Repo:       repo,
		Tx:         tx,
		Table:      table,
		Graphemes:  graphemes,
		Thresholds: compound.Thresholds{MinPartLen: 3, Floor: 10, Ceiling: 1_000},
		Params:     difficulty.DefaultParams(),
	})
}

func TestPipeline_FullRun(t *testing.T) {
	repo := &mockRepo{}
	tx := &mockTx{}
	p := newTestPipeline(t, Config{BatchSize: 3}, staticSource{corpus: testCorpus()}, repo, tx)

	if err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]PhaseResult{
		PhaseLoad:      {Processed: 10, Excluded: 2},
		PhaseSyllabify: {Processed: 8, Excluded: 2},
		PhaseCompound:  {Processed: 10, Excluded: 1},
		PhaseAlign:     {Processed: 6, Excluded: 1},
		PhaseScore:     {Processed: 6},
		PhasePersist:   {Processed: 7},
	}
	results := p.Results()
	for phase, w := range want {
		got, ok := results[phase]
		if !ok {
			t.Errorf("phase %s did not run", phase)
			continue
		}
		if got.Processed != w.Processed || got.Excluded != w.Excluded || got.Err != nil {
			t.Errorf("phase %s = %+v, want processed %d excluded %d", phase, got, w.Processed, w.Excluded)
		}
	}

	if tx.calls != 1 {
		t.Errorf("expected one transaction, got %d", tx.calls)
	}
	if len(repo.callLog) == 0 || repo.callLog[0] != "DeleteAll" {
		t.Errorf("expected DeleteAll first, got %v", repo.callLog)
	}
	if repo.batches != 3 {
		t.Errorf("expected 3 insert batches, got %d", repo.batches)
	}

	var words []string
	for _, e := range repo.inserted {
		words = append(words, e.Word)
		if e.BuildID != p.BuildID() {
			t.Errorf("%s: build id = %s, want %s", e.Word, e.BuildID, p.BuildID())
		}
		if e.CreatedAt.IsZero() {
			t.Errorf("%s: created_at not set", e.Word)
		}
	}
	wantWords := []string{"BUTTER", "EVENTUALLY", "HELLO", "HOME", "HOMEWORK", "SINGER", "WORK"}
	if !slices.Equal(words, wantWords) {
		t.Errorf("inserted words = %v, want %v", words, wantWords)
	}
}

func TestPipeline_Entries(t *testing.T) {
	p := newTestPipeline(t, Config{DryRun: true}, staticSource{corpus: testCorpus()}, &mockRepo{}, &mockTx{})
	if err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := p.Snapshot()
	if snap == nil {
		t.Fatal("expected snapshot after score phase")
	}
	if snap.Len() != 7 {
		t.Errorf("snapshot len = %d, want 7", snap.Len())
	}

	tests := []struct {
		word  string
		units []string
		hyph  domain.Hyphenation
	}{
		{"EVENTUALLY", []string{"IH", "V EH N", "CH AH", "W AH", "L IY"}, domain.Hyphenation{"E", "VEN", "TU", "A", "LLY"}},
		{"HELLO", []string{"HH AH", "L OW"}, domain.Hyphenation{"HE", "LLO"}},
		{"BUTTER", []string{"B AH", "T ER"}, domain.Hyphenation{"BU", "TTER"}},
		{"SINGER", []string{"S IH", "NG ER"}, domain.Hyphenation{"SI", "NGER"}},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			e, ok := snap.Lookup(tt.word)
			if !ok {
				t.Fatalf("%s missing from snapshot", tt.word)
			}
			if !slices.Equal(e.Units, tt.units) {
				t.Errorf("units = %v, want %v", e.Units, tt.units)
			}
			if !slices.Equal(e.Hyphenation, tt.hyph) {
				t.Errorf("hyphenation = %v, want %v", e.Hyphenation, tt.hyph)
			}
			if e.Difficulty == nil {
				t.Fatal("expected difficulty")
			}
			for _, v := range []float64{e.Difficulty.Reading, e.Difficulty.Spelling} {
				if v < 0 || v > 1 {
					t.Errorf("difficulty %v out of [0,1]", v)
				}
			}
			if e.IPA == "" || e.IPA == "//" {
				t.Errorf("expected IPA, got %q", e.IPA)
			}
		})
	}

	hw, ok := snap.Lookup("HOMEWORK")
	if !ok {
		t.Fatal("compound missing from snapshot")
	}
	if !slices.Equal(hw.Components, []string{"HOME", "WORK"}) {
		t.Errorf("components = %v", hw.Components)
	}
	if hw.Difficulty != nil || len(hw.Hyphenation) != 0 {
		t.Error("compound should carry no hyphenation and no difficulty")
	}

	for _, excluded := range []string{"HMM", "QUX", "XYZ", "NASA", "ZZZ", "ONLYFREQ"} {
		if _, ok := snap.Lookup(excluded); ok {
			t.Errorf("%s should be excluded", excluded)
		}
	}
}

func TestPipeline_EveryEntryHasComponents(t *testing.T) {
	repo := &mockRepo{}
	p := newTestPipeline(t, Config{BatchSize: 10}, staticSource{corpus: testCorpus()}, repo, &mockTx{})
	if err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range repo.inserted {
		if len(e.Components) == 0 {
			t.Errorf("%s: no components", e.Word)
		}
		if e.IsCompound() != (e.Word == "HOMEWORK") {
			t.Errorf("%s: IsCompound = %v", e.Word, e.IsCompound())
		}
	}

	hello, ok := p.Snapshot().Lookup("HELLO")
	if !ok {
		t.Fatal("HELLO missing from snapshot")
	}
	if !slices.Equal(hello.Components, []string{"HELLO"}) {
		t.Errorf("HELLO components = %v, want [HELLO]", hello.Components)
	}

	hw, _ := p.Snapshot().Lookup("HOMEWORK")
	if !slices.Equal(hw.Units, []string{"HH OW", "M W ER K"}) {
		t.Errorf("HOMEWORK units = %v, want its syllabification", hw.Units)
	}
	if len(hw.Hyphenation) != 0 {
		t.Errorf("HOMEWORK hyphenation = %v, want none", hw.Hyphenation)
	}
}

func TestPipeline_DryRunNoRepoWrites(t *testing.T) {
	repo := &mockRepo{}
	tx := &mockTx{}
	p := newTestPipeline(t, Config{DryRun: true}, staticSource{corpus: testCorpus()}, repo, tx)

	if err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tx.calls != 0 || len(repo.callLog) != 0 {
		t.Errorf("expected no repo calls in dry run, got %v", repo.callLog)
	}
	if got := p.Results()[PhasePersist].Skipped; got != 7 {
		t.Errorf("persist skipped = %d, want 7", got)
	}
}

func TestPipeline_UntilPhase(t *testing.T) {
	repo := &mockRepo{}
	p := newTestPipeline(t, Config{}, staticSource{corpus: testCorpus()}, repo, &mockTx{})

	if err := p.Run(context.Background(), PhaseCompound); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := p.Results()
	for _, phase := range []string{PhaseLoad, PhaseSyllabify, PhaseCompound} {
		if _, ok := results[phase]; !ok {
			t.Errorf("expected %s to run", phase)
		}
	}
	for _, phase := range []string{PhaseAlign, PhaseScore, PhasePersist} {
		if _, ok := results[phase]; ok {
			t.Errorf("%s should not run", phase)
		}
	}
	if p.Snapshot() != nil {
		t.Error("snapshot should be nil before the score phase")
	}
	if len(repo.callLog) != 0 {
		t.Errorf("unexpected repo calls: %v", repo.callLog)
	}
}

func TestPipeline_UnknownPhase(t *testing.T) {
	p := newTestPipeline(t, Config{}, staticSource{corpus: testCorpus()}, &mockRepo{}, &mockTx{})

	if err := p.Run(context.Background(), "wiktionary"); err == nil {
		t.Fatal("expected error for unknown phase")
	}
	if len(p.Results()) != 0 {
		t.Error("no phase should run")
	}
}

func TestPipeline_SourceErrorAborts(t *testing.T) {
	repo := &mockRepo{}
	p := newTestPipeline(t, Config{}, staticSource{err: errors.New("disk gone")}, repo, &mockTx{})

	err := p.Run(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(p.Results()) != 1 {
		t.Errorf("expected only the load phase to run, got %d results", len(p.Results()))
	}
	if len(repo.callLog) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestPipeline_PersistErrorAborts(t *testing.T) {
	repo := &mockRepo{insertErr: errors.New("db error")}
	p := newTestPipeline(t, Config{}, staticSource{corpus: testCorpus()}, repo, &mockTx{})

	err := p.Run(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, repo.insertErr) {
		t.Errorf("expected wrapped repo error, got %v", err)
	}
	if p.Results()[PhasePersist].Err == nil {
		t.Error("expected persist phase error")
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(t, Config{}, staticSource{corpus: testCorpus()}, &mockRepo{}, &mockTx{})
	if err := p.Run(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExclusions(t *testing.T) {
	e := make(exclusions)
	e.add(fmt.Errorf("syllabify: %w", domain.ErrNoVowel))
	e.add(domain.ErrNoVowel)
	e.add(domain.ErrAlignmentIncomplete)

	if e[domain.ErrNoVowel] != 2 {
		t.Errorf("no vowel = %d, want 2", e[domain.ErrNoVowel])
	}
	if e.total() != 3 {
		t.Errorf("total = %d, want 3", e.total())
	}
}

func TestBatchProcess(t *testing.T) {
	items := make([]int, 7)
	for i := range items {
		items[i] = i
	}

	var batches [][]int
	total, err := batchProcess(items, 3, func(batch []int) (int, error) {
		batches = append(batches, batch)
		return len(batch), nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 3 {
		t.Errorf("expected first batch size 3, got %d", len(batches[0]))
	}
	if len(batches[2]) != 1 {
		t.Errorf("expected last batch size 1, got %d", len(batches[2]))
	}
}

func TestBatchProcess_EmptySlice(t *testing.T) {
	total, err := batchProcess([]int{}, 10, func(batch []int) (int, error) {
		t.Fatal("should not be called for empty input")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0, got %d", total)
	}
}

func TestBatchProcess_ErrorStops(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	callCount := 0
	_, err := batchProcess(items, 2, func(batch []int) (int, error) {
		callCount++
		if callCount == 2 {
			return 0, fmt.Errorf("batch error")
		}
		return len(batch), nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls before error, got %d", callCount)
	}
}

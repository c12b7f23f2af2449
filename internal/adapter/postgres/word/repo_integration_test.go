package word_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

func sampleEntries(buildID uuid.UUID) []domain.WordEntry {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return []domain.WordEntry{
		{
			Word:        "HELLO",
			Phonemes:    []string{"HH", "AH0", "L", "OW1"},
			IPA:         "/hʌloʊ/",
			Units:       []string{"HH AH", "L OW"},
			Hyphenation: domain.Hyphenation{"HE", "LLO"},
			Components:  []string{"HELLO"},
			Frequency:   2000,
			Difficulty:  &domain.DifficultyScore{Reading: 0.1, Spelling: 0.3},
			BuildID:     buildID,
			CreatedAt:   now,
		},
		{
			Word:       "HOMEWORK",
			Phonemes:   []string{"HH", "OW1", "M", "W", "ER2", "K"},
			IPA:        "/hoʊmwɝk/",
			Units:      []string{"HH OW M", "W ER K"},
			Components: []string{"HOME", "WORK"},
			Frequency:  500,
			BuildID:    buildID,
			CreatedAt:  now,
		},
	}
}

// The tests below share one table and rebuild it wholesale, so they are not parallel.

func TestRepo_ReplaceInTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	testhelper.SeedWord(t, pool)

	buildID := uuid.New()
	entries := sampleEntries(buildID)

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		n, err := repo.BulkInsert(ctx, entries)
		if err != nil {
			return err
		}
		if n != len(entries) {
			t.Errorf("BulkInsert inserted %d, want %d", n, len(entries))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListAll returned %d words, want 2", len(got))
	}
	if got[0].Word != "HELLO" || got[1].Word != "HOMEWORK" {
		t.Fatalf("unexpected order: %s, %s", got[0].Word, got[1].Word)
	}
	if got[0].Difficulty == nil || got[0].Difficulty.Spelling != 0.3 {
		t.Errorf("HELLO difficulty = %+v", got[0].Difficulty)
	}
	if !got[1].IsCompound() || got[1].Difficulty != nil {
		t.Errorf("HOMEWORK should be an unscored compound: %+v", got[1])
	}
	if !slices.Equal(got[0].Components, []string{"HELLO"}) {
		t.Errorf("HELLO components = %v, want [HELLO]", got[0].Components)
	}
	if len(got[1].Units) != 2 || len(got[1].Hyphenation) != 0 {
		t.Errorf("HOMEWORK should keep its units without hyphenation: %+v", got[1])
	}
	if got[0].BuildID != buildID {
		t.Errorf("build id = %s, want %s", got[0].BuildID, buildID)
	}
}

func TestRepo_ReplaceInTx_RollbackKeepsPreviousBuild(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool)
	sentinel := errors.New("persist failed")

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if _, err := repo.GetByWord(ctx, seeded.Word); err != nil {
		t.Fatalf("seeded word lost after rollback: %v", err)
	}
}

func TestRepo_BulkInsert_CheckViolation(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)

	bad := sampleEntries(uuid.New())[0]
	bad.Word = "MISMATCH"
	bad.Hyphenation = domain.Hyphenation{"MISMATCH"}

	_, err := repo.BulkInsert(context.Background(), []domain.WordEntry{bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRepo_GetByWord_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)

	_, err := repo.GetByWord(context.Background(), "DEFINITELYMISSING")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

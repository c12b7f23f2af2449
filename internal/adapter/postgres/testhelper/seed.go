package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// uniqueSuffix returns a short unique uppercase string for generating
// non-conflicting words.
func uniqueSuffix() string {
	id := uuid.New()
	b := make([]byte, 8)
	for i := range b {
		b[i] = 'A' + id[i]%26
	}
	return string(b)
}

// SeedWord inserts one aligned word with a difficulty score and returns it.
func SeedWord(t *testing.T, pool *pgxpool.Pool) domain.WordEntry {
	t.Helper()
	ctx := context.Background()

	word := "BU" + uniqueSuffix()
	e := domain.WordEntry{
		Word:        word,
		Phonemes:    []string{"B", "AH1", "T", "ER0"},
		IPA:         "/bʌtɝ/",
		Units:       []string{"B AH", "T ER"},
		Hyphenation: domain.Hyphenation{"BU", word[2:]},
		Frequency:   1000,
		Difficulty:  &domain.DifficultyScore{Reading: 0.25, Spelling: 0.5},
		BuildID:     uuid.New(),
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO lexicon_words (word, phonemes, ipa, units, hyphenation, components, frequency,
		                            reading_difficulty, spelling_difficulty, build_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.Word, e.Phonemes, e.IPA, e.Units, []string(e.Hyphenation), []string{}, e.Frequency,
		e.Difficulty.Reading, e.Difficulty.Spelling, e.BuildID, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord: %v", err)
	}

	return e
}

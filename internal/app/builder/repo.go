// Package builder runs the offline lexicon build: corpus loading,
// syllabification, compound detection, alignment, scoring and persistence.
package builder

import (
	"context"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// WordRepo is the write contract consumed by the persist phase.
// Implemented by word.Repo.
type WordRepo interface {
	// DeleteAll removes every stored word and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)
	// BulkInsert stores a batch of entries and returns how many were written.
	BulkInsert(ctx context.Context, entries []domain.WordEntry) (int, error)
}

// TxRunner runs fn in one transaction. Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

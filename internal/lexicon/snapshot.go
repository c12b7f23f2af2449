// Package lexicon holds the frozen, in-memory result of a lexicon build.
package lexicon

import (
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/freqindex"
)

// Snapshot is immutable once built. Any number of goroutines may read it
// concurrently without locking.
type Snapshot struct {
	entries map[string]domain.WordEntry
	words   []string
	index   *freqindex.Index
	buildID uuid.UUID
}

// NewSnapshot freezes entries. Later duplicates of a word replace earlier
// ones. Compounds are looked up like any word but stay out of the
// frequency index.
func NewSnapshot(entries []domain.WordEntry) *Snapshot {
	s := &Snapshot{entries: make(map[string]domain.WordEntry, len(entries))}
	for _, e := range entries {
		s.entries[e.Word] = e
		if s.buildID == uuid.Nil {
			s.buildID = e.BuildID
		}
	}

	s.words = make([]string, 0, len(s.entries))
	rows := make([]domain.WordRow, 0, len(s.entries))
	for w, e := range s.entries {
		s.words = append(s.words, w)
		if !e.IsCompound() {
			rows = append(rows, e.Row())
		}
	}
	slices.Sort(s.words)
	s.index = freqindex.Build(rows)
	return s
}

// Lookup returns the entry for an already normalized word.
func (s *Snapshot) Lookup(word string) (domain.WordEntry, bool) {
	e, ok := s.entries[word]
	return e, ok
}

// Words returns all words in ascending order. The slice is shared.
func (s *Snapshot) Words() []string { return s.words }

// Index returns the frequency index over the non-compound entries.
func (s *Snapshot) Index() *freqindex.Index { return s.index }

// BuildID returns the build the entries came from, or uuid.Nil for a
// snapshot assembled outside a persisted build.
func (s *Snapshot) BuildID() uuid.UUID { return s.buildID }

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }

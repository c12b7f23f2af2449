package lexicon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

func entries() []domain.WordEntry {
	return []domain.WordEntry{
		{Word: "BUTTER", Units: []string{"B AH", "T ER"}, Hyphenation: domain.Hyphenation{"BU", "TTER"}, Frequency: 200},
		{Word: "BUTTON", Units: []string{"B AH", "T AH N"}, Hyphenation: domain.Hyphenation{"BU", "TTON"}, Frequency: 100},
		{Word: "HOMEWORK", Components: []string{"HOME", "WORK"}, Frequency: 50},
		{Word: "BUTTER", Units: []string{"B AH", "T ER"}, Hyphenation: domain.Hyphenation{"BU", "TTER"}, Frequency: 300},
	}
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()
	s := NewSnapshot(entries())

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"BUTTER", "BUTTON", "HOMEWORK"}, s.Words())

	e, ok := s.Lookup("BUTTER")
	require.True(t, ok)
	assert.Equal(t, int64(300), e.Frequency)

	_, ok = s.Lookup("butter")
	assert.False(t, ok)
}

func TestNewSnapshot_IndexExcludesCompounds(t *testing.T) {
	t.Parallel()
	s := NewSnapshot(entries())

	assert.Equal(t, int64(400), s.Index().PronunciationTotal("B AH"))
	assert.Zero(t, s.Index().Skipped())

	c, ok := s.Lookup("HOMEWORK")
	require.True(t, ok)
	assert.True(t, c.IsCompound())
}

func TestNewSnapshot_Empty(t *testing.T) {
	t.Parallel()
	s := NewSnapshot(nil)

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Words())
	assert.NotNil(t, s.Index())
}

func TestNewSnapshot_BuildID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uuid.Nil, NewSnapshot(entries()).BuildID())

	id := uuid.New()
	in := entries()
	for i := range in {
		in[i].BuildID = id
	}
	assert.Equal(t, id, NewSnapshot(in).BuildID())
	assert.Equal(t, uuid.Nil, NewSnapshot(nil).BuildID())
}

package word

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func ptr(f float64) *float64 { return &f }

func TestRepo_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	buildID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows(columns).
		AddRow("BUTTER", []string{"B", "AH1", "T", "ER0"}, "/bʌtɝ/", []string{"B AH", "T ER"},
			[]string{"BU", "TTER"}, []string{}, int64(1000), ptr(0.25), ptr(0.5), buildID, now).
		AddRow("HOMEWORK", []string{"HH", "OW1", "M", "W", "ER2", "K"}, "/hoʊmwɝk/", []string{},
			[]string{}, []string{"HOME", "WORK"}, int64(500), (*float64)(nil), (*float64)(nil), buildID, now)

	mock.ExpectQuery(`SELECT word, phonemes, .* FROM lexicon_words ORDER BY word`).WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "BUTTER", got[0].Word)
	assert.Equal(t, domain.Hyphenation{"BU", "TTER"}, got[0].Hyphenation)
	assert.Equal(t, []string{"BUTTER"}, got[0].Components, "rows stored without components read back as [word]")
	require.NotNil(t, got[0].Difficulty)
	assert.Equal(t, 0.25, got[0].Difficulty.Reading)
	assert.Equal(t, 0.5, got[0].Difficulty.Spelling)
	assert.Equal(t, buildID, got[0].BuildID)

	assert.True(t, got[1].IsCompound())
	assert.Equal(t, []string{"HOME", "WORK"}, got[1].Components)
	assert.Nil(t, got[1].Hyphenation)
	assert.Nil(t, got[1].Difficulty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListAll_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListAll(context.Background())
	assert.ErrorContains(t, err, "list words")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByWord(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := pgxmock.NewRows(columns).
		AddRow("HELLO", []string{"HH", "AH0", "L", "OW1"}, "/hʌloʊ/", []string{"HH AH", "L OW"},
			[]string{"HE", "LLO"}, []string{}, int64(2000), ptr(0.1), ptr(0.2), uuid.New(), time.Now())

	mock.ExpectQuery(`SELECT .* FROM lexicon_words WHERE word = \$1`).
		WithArgs("HELLO").
		WillReturnRows(rows)

	got, err := repo.GetByWord(context.Background(), "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got.Word)
	assert.Equal(t, []string{"HH AH", "L OW"}, got.Units)
	assert.Equal(t, int64(2000), got.Frequency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByWord_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM lexicon_words WHERE word = \$1`).
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows(columns))

	_, err := repo.GetByWord(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "word NOPE")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM lexicon_words`).
		WillReturnResult(pgxmock.NewResult("DELETE", 42))

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteAll_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM lexicon_words`).WillReturnError(errors.New("boom"))

	_, err := repo.DeleteAll(context.Background())
	assert.ErrorContains(t, err, "delete words")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToRowArgs(t *testing.T) {
	e := domain.WordEntry{
		Word:       "HOMEWORK",
		Phonemes:   []string{"HH", "OW1", "M", "W", "ER2", "K"},
		Components: []string{"HOME", "WORK"},
	}

	args := toRowArgs(e)
	require.Len(t, args, len(columns))
	assert.Equal(t, []string{}, args[3])
	assert.Equal(t, []string{}, args[4])
	assert.Equal(t, []string{"HOME", "WORK"}, args[5])
	assert.Nil(t, args[7])
	assert.Nil(t, args[8])
}

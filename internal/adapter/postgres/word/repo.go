// Package word implements the lexicon word repository using PostgreSQL.
package word

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

const table = "lexicon_words"

var columns = []string{
	"word", "phonemes", "ipa", "units", "hyphenation", "components", "frequency",
	"reading_difficulty", "spelling_difficulty", "build_id", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides lexicon word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type wordRow struct {
	Word               string    `db:"word"`
	Phonemes           []string  `db:"phonemes"`
	IPA                string    `db:"ipa"`
	Units              []string  `db:"units"`
	Hyphenation        []string  `db:"hyphenation"`
	Components         []string  `db:"components"`
	Frequency          int64     `db:"frequency"`
	ReadingDifficulty  *float64  `db:"reading_difficulty"`
	SpellingDifficulty *float64  `db:"spelling_difficulty"`
	BuildID            uuid.UUID `db:"build_id"`
	CreatedAt          time.Time `db:"created_at"`
}

// ListAll returns every stored word ordered by word.
func (r *Repo) ListAll(ctx context.Context) ([]domain.WordEntry, error) {
	query, args, err := psql.Select(columns...).From(table).OrderBy("word").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	out := make([]domain.WordEntry, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// GetByWord returns a single word by its normalized spelling.
func (r *Repo) GetByWord(ctx context.Context, word string) (domain.WordEntry, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"word": word}).ToSql()
	if err != nil {
		return domain.WordEntry{}, fmt.Errorf("build query: %w", err)
	}

	var row wordRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return domain.WordEntry{}, postgres.MapError(err, "word", word)
	}

	return toDomain(row), nil
}

// DeleteAll removes every stored word and returns the number of deleted rows.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	query, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete words: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts entries in a single batch round trip. Existing words are
// left untouched (ON CONFLICT DO NOTHING), so the returned count may be lower
// than len(entries).
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.WordEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		query, args, err := psql.Insert(table).
			Columns(columns...).
			Values(toRowArgs(e)...).
			Suffix("ON CONFLICT (word) DO NOTHING").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert %s: %w", e.Word, err)
		}
		batch.Queue(query, args...)
	}

	return r.sendBatchExec(ctx, batch)
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "word", "batch")
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func toRowArgs(e domain.WordEntry) []any {
	var reading, spelling *float64
	if e.Difficulty != nil {
		reading, spelling = &e.Difficulty.Reading, &e.Difficulty.Spelling
	}
	return []any{
		e.Word, nonNil(e.Phonemes), e.IPA,
		nonNil(e.Units), nonNil(e.Hyphenation), nonNil(e.Components),
		e.Frequency, reading, spelling, e.BuildID, e.CreatedAt,
	}
}

func toDomain(row wordRow) domain.WordEntry {
	e := domain.WordEntry{
		Word:      row.Word,
		Phonemes:  row.Phonemes,
		IPA:       row.IPA,
		Units:     row.Units,
		Frequency: row.Frequency,
		BuildID:   row.BuildID,
		CreatedAt: row.CreatedAt,
	}
	if len(row.Hyphenation) > 0 {
		e.Hyphenation = domain.Hyphenation(row.Hyphenation)
	}
	e.Components = row.Components
	if len(e.Components) == 0 {
		e.Components = []string{row.Word}
	}
	if row.ReadingDifficulty != nil && row.SpellingDifficulty != nil {
		e.Difficulty = &domain.DifficultyScore{
			Reading:  *row.ReadingDifficulty,
			Spelling: *row.SpellingDifficulty,
		}
	}
	return e
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

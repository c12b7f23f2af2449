// Package unigram parses word frequency lists (word,count CSV).
// Pure function: reader in, frequency map out. No database dependencies.
package unigram

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows   int
	SkippedRows int
	Duplicates  int
	UniqueWords int
}

// Parse reads `word,count` rows and returns normalized word → count.
// Rows that do not have exactly two fields, whose word is not alphabetic or
// whose count is not a non-negative integer are skipped; this also drops a
// header row. A repeated word keeps the last count seen.
func Parse(r io.Reader) (map[string]int64, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.ReuseRecord = true

	var stats Stats
	out := make(map[string]int64)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Stats{}, fmt.Errorf("read row %d: %w", stats.TotalRows+1, err)
		}
		stats.TotalRows++

		if len(record) != 2 {
			stats.SkippedRows++
			continue
		}

		word := domain.NormalizeWord(record[0])
		count, err := strconv.ParseUint(record[1], 10, 63)
		if !domain.IsAlphaWord(word) || err != nil {
			stats.SkippedRows++
			continue
		}

		if _, ok := out[word]; ok {
			stats.Duplicates++
		}
		out[word] = int64(count)
	}

	stats.UniqueWords = len(out)
	return out, stats, nil
}

// ParseFile opens filePath and parses it with Parse.
func ParseFile(filePath string) (map[string]int64, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

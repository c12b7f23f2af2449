package phonetics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/heartmarshall/lexarch-backend/data"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// GraphemeTable maps a phoneme to the letter sequences that can spell it.
// Immutable after loading.
type GraphemeTable struct {
	candidates map[string][]string
}

// LoadGraphemeTable decodes a JSON object of phoneme -> list of graphemes.
// Graphemes are upper-cased; an empty table, an empty candidate list or an
// empty grapheme is a reference data error.
func LoadGraphemeTable(r io.Reader) (*GraphemeTable, error) {
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("grapheme table: decode: %w: %w", domain.ErrReferenceData, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("grapheme table is empty: %w", domain.ErrReferenceData)
	}

	g := &GraphemeTable{candidates: make(map[string][]string, len(raw))}
	for phoneme, list := range raw {
		if len(list) == 0 {
			return nil, fmt.Errorf("grapheme table: %s has no graphemes: %w", phoneme, domain.ErrReferenceData)
		}
		graphemes := make([]string, 0, len(list))
		for _, gr := range list {
			gr = strings.ToUpper(strings.TrimSpace(gr))
			if gr == "" {
				return nil, fmt.Errorf("grapheme table: %s has an empty grapheme: %w", phoneme, domain.ErrReferenceData)
			}
			graphemes = append(graphemes, gr)
		}
		g.candidates[strings.ToUpper(phoneme)] = graphemes
	}
	return g, nil
}

// LoadGraphemeTableFile loads the table from path, or the embedded default
// when path is empty.
func LoadGraphemeTableFile(path string) (*GraphemeTable, error) {
	if path == "" {
		return LoadGraphemeTable(bytes.NewReader(data.PhonemeGraphemes))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grapheme table %s: %w: %w", path, domain.ErrReferenceData, err)
	}
	defer f.Close()
	return LoadGraphemeTable(f)
}

// DefaultGraphemeTable loads the embedded phoneme to grapheme table.
func DefaultGraphemeTable() (*GraphemeTable, error) {
	return LoadGraphemeTableFile("")
}

// Candidates returns the graphemes for a phoneme. The slice is shared and
// must not be modified.
func (g *GraphemeTable) Candidates(phoneme string) []string {
	return g.candidates[phoneme]
}

// Missing lists, sorted, the phonemes of t that have no grapheme candidates.
func (g *GraphemeTable) Missing(t *Table) []string {
	var missing []string
	for p := range t.categories {
		if len(g.candidates[p]) == 0 {
			missing = append(missing, p)
		}
	}
	slices.Sort(missing)
	return missing
}

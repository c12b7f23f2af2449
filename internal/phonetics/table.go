// Package phonetics holds the static phoneme reference tables: the sonority
// category of every phoneme and the graphemes that can spell it.
package phonetics

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/lexarch-backend/data"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Category is a sonority class of a phoneme.
type Category string

const (
	Vowel     Category = "vowel"
	Semivowel Category = "semivowel"
	Liquid    Category = "liquid"
	Nasal     Category = "nasal"
	Fricative Category = "fricative"
	Aspirate  Category = "aspirate"
	Affricate Category = "affricate"
	Stop      Category = "stop"
)

var sonority = map[Category]int{
	Vowel:     6,
	Semivowel: 5,
	Liquid:    4,
	Nasal:     3,
	Fricative: 2,
	Aspirate:  2,
	Affricate: 1,
	Stop:      0,
}

// Sonority returns the rank of the category, vowels highest.
// Unknown categories rank -1.
func (c Category) Sonority() int {
	if r, ok := sonority[c]; ok {
		return r
	}
	return -1
}

// IsValid checks whether the category is one of the known values.
func (c Category) IsValid() bool {
	_, ok := sonority[c]
	return ok
}

// Table classifies phonemes into sonority categories. It is immutable
// once loaded and safe for concurrent use.
type Table struct {
	categories map[string]Category
}

// LoadTable reads a phoneme classification table: one "PHONEME CATEGORY"
// pair per line, separated by a tab or spaces. Blank lines are skipped.
func LoadTable(r io.Reader) (*Table, error) {
	t := &Table{categories: make(map[string]Category)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("phoneme table line %d: expected 2 fields, got %d: %w",
				lineNum, len(fields), domain.ErrReferenceData)
		}

		cat := Category(strings.ToLower(fields[1]))
		if !cat.IsValid() {
			return nil, fmt.Errorf("phoneme table line %d: unknown category %q: %w",
				lineNum, fields[1], domain.ErrReferenceData)
		}
		t.categories[strings.ToUpper(fields[0])] = cat
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("phoneme table: %w: %w", domain.ErrReferenceData, err)
	}

	if len(t.categories) == 0 {
		return nil, fmt.Errorf("phoneme table is empty: %w", domain.ErrReferenceData)
	}
	return t, nil
}

// LoadTableFile loads the table from path, or the embedded default when
// path is empty.
func LoadTableFile(path string) (*Table, error) {
	if path == "" {
		return LoadTable(bytes.NewReader(data.PhonemeClasses))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phoneme table %s: %w: %w", path, domain.ErrReferenceData, err)
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable loads the embedded CMU phoneme classes.
func DefaultTable() (*Table, error) {
	return LoadTableFile("")
}

// Category returns the category of a stressless phoneme.
func (t *Table) Category(phoneme string) (Category, bool) {
	c, ok := t.categories[phoneme]
	return c, ok
}

// Has reports whether the phoneme is known.
func (t *Table) Has(phoneme string) bool {
	_, ok := t.categories[phoneme]
	return ok
}

// IsVowel reports whether the phoneme is in the vowel category.
func (t *Table) IsVowel(phoneme string) bool {
	return t.categories[phoneme] == Vowel
}

// Sonority returns the sonority rank of the phoneme, -1 if unknown.
func (t *Table) Sonority(phoneme string) int {
	c, ok := t.categories[phoneme]
	if !ok {
		return -1
	}
	return c.Sonority()
}

// Len returns the number of classified phonemes.
func (t *Table) Len() int {
	return len(t.categories)
}

// StripStress removes the trailing stress digit (0, 1 or 2) of an ARPAbet
// vowel, together with surrounding spaces.
func StripStress(phoneme string) string {
	return strings.TrimRight(strings.TrimSpace(phoneme), "0123456789")
}

// Package cmu parses CMU Pronouncing Dictionary files.
// Pure functions: reader in, phoneme sequences out. No database dependencies.
package cmu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// arpabetMap maps ARPAbet phonemes (without stress markers) to IPA symbols.
var arpabetMap = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"IH": "ɪ",
	"IY": "i",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"UH": "ʊ",
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}

// Variant is one pronunciation of a word.
type Variant struct {
	Phonemes     []string // ARPAbet with stress markers, as in the source
	VariantIndex int      // 0 for primary, 1 for (2), 2 for (3), etc.
}

// ParseResult holds the parsed CMU dictionary data.
type ParseResult struct {
	Pronunciations map[string][]Variant // normalizedWord → variants in file order
	Stats          Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines    int
	CommentLines  int
	ParsedLines   int
	NonAlphaWords int
	UniqueWords   int
}

// Primary returns word → phonemes of the primary pronunciation. Words whose
// only entries are numbered variants fall back to the lowest variant.
func (r ParseResult) Primary() map[string][]string {
	out := make(map[string][]string, len(r.Pronunciations))
	for word, variants := range r.Pronunciations {
		best := variants[0]
		for _, v := range variants[1:] {
			if v.VariantIndex < best.VariantIndex {
				best = v
			}
		}
		out[word] = best.Phonemes
	}
	return out
}

// Parse reads CMU dictionary lines and returns parsed pronunciations.
// Words that are not purely alphabetic (apostrophes, digits, punctuation
// entries) are skipped and counted.
func Parse(r io.Reader) (ParseResult, error) {
	result := ParseResult{
		Pronunciations: make(map[string][]Variant),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		word, v, err := parseLine(line)
		if err == errSkipLine {
			if strings.HasPrefix(line, ";;;") {
				result.Stats.CommentLines++
			}
			continue
		}
		if !domain.IsAlphaWord(word) {
			result.Stats.NonAlphaWords++
			continue
		}

		result.Stats.ParsedLines++
		result.Pronunciations[word] = append(result.Pronunciations[word], v)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.UniqueWords = len(result.Pronunciations)
	return result, nil
}

// ParseFile opens filePath and parses it with Parse.
func ParseFile(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseAcronyms reads a file in CMU format listing acronyms and returns the
// set of their normalized words. Pronunciations are ignored.
func ParseAcronyms(r io.Reader) (map[string]struct{}, error) {
	res, err := Parse(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(res.Pronunciations))
	for w := range res.Pronunciations {
		out[w] = struct{}{}
	}
	return out, nil
}

// ParseAcronymsFile opens filePath and parses it with ParseAcronyms.
func ParseAcronymsFile(filePath string) (map[string]struct{}, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ParseAcronyms(f)
}

// PhonemesToIPA converts a slice of ARPAbet phonemes to an IPA transcription string.
// Stress markers are stripped before lookup. Result is wrapped in slashes.
func PhonemesToIPA(phonemes []string) string {
	var b strings.Builder
	b.WriteByte('/')
	for _, p := range phonemes {
		if ipa, ok := arpabetMap[phonetics.StripStress(p)]; ok {
			b.WriteString(ipa)
		}
	}
	b.WriteByte('/')
	return b.String()
}

// parseLine parses a single line from a CMU dict file.
// Returns the normalized word and its variant, or errSkipLine for comments/empty lines.
func parseLine(line string) (string, Variant, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", Variant{}, errSkipLine
	}

	// CMU format: WORD  PHONEME1 PHONEME2 ... (two spaces between word and phonemes).
	parts := strings.SplitN(line, "  ", 2)
	if len(parts) != 2 {
		return "", Variant{}, errSkipLine
	}

	rawWord := strings.TrimSpace(parts[0])
	phonemes := strings.Fields(strings.ToUpper(parts[1]))
	if rawWord == "" || len(phonemes) == 0 {
		return "", Variant{}, errSkipLine
	}

	word, variantIdx := parseWordAndVariant(rawWord)
	return word, Variant{Phonemes: phonemes, VariantIndex: variantIdx}, nil
}

// parseWordAndVariant splits a raw CMU word like "HOUSE(2)" into
// the normalized word and variant index.
// Primary pronunciation has variant index 0, "(2)" maps to 1, "(3)" to 2, etc.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return domain.NormalizeWord(raw), 0
	}

	end := strings.IndexByte(raw[idx:], ')')
	if end == -1 {
		return domain.NormalizeWord(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : idx+end])
	if err != nil {
		return domain.NormalizeWord(raw), 0
	}

	return domain.NormalizeWord(raw[:idx]), n - 1
}

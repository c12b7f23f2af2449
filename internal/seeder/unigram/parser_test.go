package unigram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `word,count
the,23135851162
of,13151942776
butter,2051211
don't,1000
2000,999
mp3,500
,12
bad,count
one,two,three
Butter,2100000
`

func TestParse(t *testing.T) {
	got, stats, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if stats.TotalRows != 11 {
		t.Errorf("TotalRows = %d, want 11", stats.TotalRows)
	}
	// header, don't, 2000, mp3, empty word, bad count, three fields
	if stats.SkippedRows != 7 {
		t.Errorf("SkippedRows = %d, want 7", stats.SkippedRows)
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	if stats.UniqueWords != 3 {
		t.Errorf("UniqueWords = %d, want 3", stats.UniqueWords)
	}

	if got["THE"] != 23135851162 {
		t.Errorf("THE = %d, want 23135851162", got["THE"])
	}
	if got["BUTTER"] != 2100000 {
		t.Errorf("BUTTER = %d, want last count 2100000", got["BUTTER"])
	}
	if _, ok := got["DON'T"]; ok {
		t.Error("non-alphabetic word should be skipped")
	}
}

func TestParse_Empty(t *testing.T) {
	got, stats, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 0 || stats.TotalRows != 0 {
		t.Errorf("expected empty result, got %d words, %d rows", len(got), stats.TotalRows)
	}
}

func TestParse_NegativeCountSkipped(t *testing.T) {
	got, stats, err := Parse(strings.NewReader("cat,-5\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 0 || stats.SkippedRows != 1 {
		t.Errorf("negative count should be skipped, got %v", got)
	}
}

func TestParse_MalformedQuoting(t *testing.T) {
	if _, _, err := Parse(strings.NewReader("cat,\"12\n")); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unigram_freq.csv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	if _, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

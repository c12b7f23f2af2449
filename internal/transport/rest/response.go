package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/freqindex"
	svc "github.com/heartmarshall/lexarch-backend/internal/service/lexicon"
)

type errorResponse struct {
	Error       string       `json:"error"`
	Fields      []fieldError `json:"fields,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type difficultyResponse struct {
	Reading  float64 `json:"reading"`
	Spelling float64 `json:"spelling"`
}

type wordResponse struct {
	Word        string              `json:"word"`
	Phonemes    []string            `json:"phonemes"`
	IPA         string              `json:"ipa,omitempty"`
	Units       []string            `json:"units"`
	Hyphenation []string            `json:"hyphenation"`
	Display     string              `json:"display,omitempty"`
	Components  []string            `json:"components"`
	Frequency   int64               `json:"frequency"`
	Difficulty  *difficultyResponse `json:"difficulty,omitempty"`
	BuildID     *uuid.UUID          `json:"buildId,omitempty"`
	CreatedAt   *time.Time          `json:"createdAt,omitempty"`
}

type similarResponse struct {
	Word  string             `json:"word"`
	Words []wordFrequencyDTO `json:"words"`
}

type wordFrequencyDTO struct {
	Word      string `json:"word"`
	Frequency int64  `json:"frequency"`
}

type ratiosResponse struct {
	Word   string     `json:"word"`
	Ratios []ratioDTO `json:"ratios"`
}

type ratioDTO struct {
	Word          string  `json:"word"`
	Pronunciation string  `json:"pronunciation"`
	Spelling      string  `json:"spelling"`
	Ratio         float64 `json:"ratio"`
}

type historyResponse struct {
	Word   string      `json:"word"`
	Series []seriesDTO `json:"series"`
}

type seriesDTO struct {
	Ngram      string    `json:"ngram"`
	StartYear  int       `json:"startYear"`
	Timeseries []float64 `json:"timeseries"`
}

type ambiguityResponse struct {
	Unit   string     `json:"unit"`
	Mode   svc.Mode   `json:"mode"`
	Shares []shareDTO `json:"shares"`
}

type shareDTO struct {
	Unit      string  `json:"unit"`
	Frequency int64   `json:"frequency"`
	Ratio     float64 `json:"ratio"`
}

// components is never empty: a word that does not split is its own
// single component.
func components(e domain.WordEntry) []string {
	if len(e.Components) == 0 {
		return []string{e.Word}
	}
	return e.Components
}

func toWordResponse(e domain.WordEntry) wordResponse {
	resp := wordResponse{
		Word:        e.Word,
		Phonemes:    orEmpty(e.Phonemes),
		IPA:         e.IPA,
		Units:       orEmpty(e.Units),
		Hyphenation: orEmpty(e.Hyphenation),
		Components:  components(e),
		Frequency:   e.Frequency,
	}
	if len(e.Hyphenation) > 0 {
		resp.Display = e.Hyphenation.String()
	}
	if e.Difficulty != nil {
		resp.Difficulty = &difficultyResponse{Reading: e.Difficulty.Reading, Spelling: e.Difficulty.Spelling}
	}
	if e.BuildID != uuid.Nil {
		id := e.BuildID
		resp.BuildID = &id
	}
	if !e.CreatedAt.IsZero() {
		t := e.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}

func toWordFrequencies(in []freqindex.WordFrequency) []wordFrequencyDTO {
	out := make([]wordFrequencyDTO, len(in))
	for i, wf := range in {
		out[i] = wordFrequencyDTO{Word: wf.Word, Frequency: wf.Frequency}
	}
	return out
}

func toRatios(in []freqindex.Ratio) []ratioDTO {
	out := make([]ratioDTO, len(in))
	for i, r := range in {
		out[i] = ratioDTO{Word: r.Word, Pronunciation: r.Pronunciation, Spelling: r.Spelling, Ratio: r.Ratio}
	}
	return out
}

func toSeries(in []domain.UsageSeries) []seriesDTO {
	out := make([]seriesDTO, len(in))
	for i, s := range in {
		out[i] = seriesDTO{Ngram: s.Ngram, StartYear: s.StartYear, Timeseries: s.Timeseries}
	}
	return out
}

func toShares(in []freqindex.Share) []shareDTO {
	out := make([]shareDTO, len(in))
	for i, s := range in {
		out[i] = shareDTO{Unit: s.Unit, Frequency: s.Frequency, Ratio: s.Ratio}
	}
	return out
}

func orEmpty[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/freqindex"
	svc "github.com/heartmarshall/lexarch-backend/internal/service/lexicon"
)

// lexiconService defines the query operations needed by WordHandler.
type lexiconService interface {
	GetWord(ctx context.Context, word string) (domain.WordEntry, error)
	Suggest(word string, n int) []svc.Suggestion
	SuggestionLimit() int
	Similar(ctx context.Context, word string) ([]freqindex.WordFrequency, error)
	Ratios(ctx context.Context, word string) ([]freqindex.Ratio, error)
	History(ctx context.Context, word string) ([]domain.UsageSeries, error)
	Ambiguity(ctx context.Context, unit string, mode svc.Mode) ([]freqindex.Share, error)
}

// WordHandler serves lexicon query endpoints.
type WordHandler struct {
	svc lexiconService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc lexiconService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "words")}
}

// Register mounts the word and ambiguity routes on mux.
func (h *WordHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/words/{word}", h.Get)
	mux.HandleFunc("GET /api/words/{word}/similar", h.Similar)
	mux.HandleFunc("GET /api/words/{word}/ratios", h.Ratios)
	mux.HandleFunc("GET /api/words/{word}/history", h.History)
	mux.HandleFunc("GET /api/ambiguity", h.Ambiguity)
}

// Get handles GET /api/words/{word}. A miss answers 404 with suggestions.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")

	entry, err := h.svc.GetWord(r.Context(), word)
	if errors.Is(err, domain.ErrNotFound) {
		resp := errorResponse{Error: "word not found", Suggestions: []string{}}
		for _, s := range h.svc.Suggest(word, h.svc.SuggestionLimit()) {
			resp.Suggestions = append(resp.Suggestions, s.Word)
		}
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(entry))
}

// Similar handles GET /api/words/{word}/similar.
func (h *WordHandler) Similar(w http.ResponseWriter, r *http.Request) {
	word := domain.NormalizeWord(r.PathValue("word"))

	words, err := h.svc.Similar(r.Context(), word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, similarResponse{Word: word, Words: toWordFrequencies(words)})
}

// Ratios handles GET /api/words/{word}/ratios.
func (h *WordHandler) Ratios(w http.ResponseWriter, r *http.Request) {
	word := domain.NormalizeWord(r.PathValue("word"))

	ratios, err := h.svc.Ratios(r.Context(), word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ratiosResponse{Word: word, Ratios: toRatios(ratios)})
}

// History handles GET /api/words/{word}/history. Provider outages answer
// 200 with an empty series list.
func (h *WordHandler) History(w http.ResponseWriter, r *http.Request) {
	word := domain.NormalizeWord(r.PathValue("word"))

	series, err := h.svc.History(r.Context(), word)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Word: word, Series: toSeries(series)})
}

// Ambiguity handles GET /api/ambiguity?unit=..&mode=spelling|reading.
// mode defaults to spelling.
func (h *WordHandler) Ambiguity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := svc.Mode(q.Get("mode"))
	if mode == "" {
		mode = svc.ModeSpelling
	}
	unit := q.Get("unit")

	shares, err := h.svc.Ambiguity(r.Context(), unit, mode)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ambiguityResponse{Unit: unit, Mode: mode, Shares: toShares(shares)})
}

func (h *WordHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		resp := errorResponse{Error: "validation error"}
		for _, fe := range vErr.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "word not found")
	case errors.Is(err, context.Canceled):
		h.log.DebugContext(r.Context(), "request cancelled", slog.String("path", r.URL.Path))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

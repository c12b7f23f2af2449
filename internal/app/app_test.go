package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/transport/middleware"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubLister struct {
	entries []domain.WordEntry
	err     error
}

func (s stubLister) ListAll(context.Context) ([]domain.WordEntry, error) {
	return s.entries, s.err
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		CORS:  config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,OPTIONS"},
		Ngram: config.NgramConfig{Enabled: false},
		Query: config.QueryConfig{SimilarLimit: 10, SuggestionLimit: 3, CacheSize: 8},
	}
}

func TestLoadSnapshot(t *testing.T) {
	buildID := uuid.New()
	lister := stubLister{entries: []domain.WordEntry{
		{Word: "HELLO", Units: []string{"HH AH", "L OW"}, Hyphenation: domain.Hyphenation{"HE", "LLO"}, Frequency: 10, BuildID: buildID},
	}}

	snap, err := loadSnapshot(context.Background(), lister, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, buildID, snap.BuildID())
}

func TestLoadSnapshot_Error(t *testing.T) {
	_, err := loadSnapshot(context.Background(), stubLister{err: errors.New("db down")}, discardLogger())
	assert.ErrorContains(t, err, "load lexicon")
}

func TestNewHandler_Routes(t *testing.T) {
	buildID := uuid.New()
	snap, err := loadSnapshot(context.Background(), stubLister{entries: []domain.WordEntry{
		{Word: "HELLO", Units: []string{"HH AH", "L OW"}, Hyphenation: domain.Hyphenation{"HE", "LLO"}, Frequency: 10, BuildID: buildID},
	}}, discardLogger())
	require.NoError(t, err)

	cfg := testConfig()
	service, err := newQueryService(discardLogger(), snap, cfg)
	require.NoError(t, err)

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	h := newHandler(discardLogger(), cfg, stubPinger{}, snap, service, rl)

	tests := []struct {
		target string
		want   int
	}{
		{"/live", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/health", http.StatusOK},
		{"/api/words/hello", http.StatusOK},
		{"/api/words/hello/history", http.StatusOK},
		{"/api/words/nope", http.StatusNotFound},
		{"/api/ambiguity?unit=L+OW&mode=bogus", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
			assert.Equal(t, buildID.String(), rec.Header().Get(middleware.BuildIDHeader))
		})
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, discardLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	srv := &http.Server{Addr: "256.0.0.1:bad", Handler: http.NotFoundHandler()}

	err := serve(context.Background(), srv, time.Second, discardLogger())
	assert.ErrorContains(t, err, "http server")
}

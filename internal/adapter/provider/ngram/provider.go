// Package ngram fetches historical usage series from the Google Books Ngram
// Viewer JSON endpoint. Fetching is best effort: failures are logged and
// reported as an empty result.
package ngram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
)

// Provider fetches usage series from the Ngram Viewer.
type Provider struct {
	baseURL    string
	corpus     int
	smoothing  int
	yearStart  int
	yearEnd    int
	retryDelay time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from NgramConfig.
func NewProvider(cfg config.NgramConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		corpus:     cfg.Corpus,
		smoothing:  cfg.Smoothing,
		yearStart:  cfg.YearStart,
		yearEnd:    cfg.YearEnd,
		retryDelay: 500 * time.Millisecond,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "ngram"),
	}
}

// Fetch returns the usage series for query. Any failure (network, status,
// decoding) is logged and yields nil.
func (p *Provider) Fetch(ctx context.Context, query string) []domain.UsageSeries {
	series, err := p.fetch(ctx, query)
	if err != nil {
		p.log.WarnContext(ctx, "ngram fetch failed", slog.String("query", query), slog.String("error", err.Error()))
		return nil
	}

	p.log.DebugContext(ctx, "ngram response", slog.String("query", query), slog.Int("series", len(series)))
	return series
}

func (p *Provider) fetch(ctx context.Context, query string) ([]domain.UsageSeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.requestURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("ngram: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, query)
	if err != nil {
		return nil, fmt.Errorf("ngram: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ngram: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ngram: read body: %w", err)
	}

	var raw []apiSeries
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("ngram: decode json: %w", err)
	}

	out := make([]domain.UsageSeries, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.UsageSeries{
			Ngram:      s.Ngram,
			StartYear:  p.yearStart,
			Timeseries: s.Timeseries,
		})
	}
	return out, nil
}

func (p *Provider) requestURL(query string) string {
	v := url.Values{}
	v.Set("content", query)
	v.Set("year_start", strconv.Itoa(p.yearStart))
	v.Set("year_end", strconv.Itoa(p.yearEnd))
	v.Set("corpus", strconv.Itoa(p.corpus))
	v.Set("smoothing", strconv.Itoa(p.smoothing))
	return p.baseURL + "?" + v.Encode()
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, query string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "ngram retry", slog.String("query", query), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

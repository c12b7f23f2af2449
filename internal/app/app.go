package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexarch-backend/internal/adapter/provider/ngram"
	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/domain"
	"github.com/heartmarshall/lexarch-backend/internal/lexicon"
	lexsvc "github.com/heartmarshall/lexarch-backend/internal/service/lexicon"
	"github.com/heartmarshall/lexarch-backend/internal/transport/middleware"
	"github.com/heartmarshall/lexarch-backend/internal/transport/rest"
)

// Run is the query server entry point. It loads configuration, reads the
// persisted lexicon into an in-memory snapshot, and serves HTTP until ctx
// is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting lexarch server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	snap, err := loadSnapshot(ctx, word.New(pool), logger)
	if err != nil {
		return err
	}

	service, err := newQueryService(logger, snap, cfg)
	if err != nil {
		return err
	}

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := newHandler(logger, cfg, pool, snap, service, rl)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

type wordLister interface {
	ListAll(ctx context.Context) ([]domain.WordEntry, error)
}

func loadSnapshot(ctx context.Context, repo wordLister, logger *slog.Logger) (*lexicon.Snapshot, error) {
	start := time.Now()

	entries, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	snap := lexicon.NewSnapshot(entries)
	if snap.Len() == 0 {
		logger.Warn("lexicon is empty; run lexarch-build first")
	}

	logger.Info("lexicon loaded",
		slog.Int("words", snap.Len()),
		slog.String("build_id", snap.BuildID().String()),
		slog.Duration("duration", time.Since(start)),
	)
	return snap, nil
}

func newQueryService(logger *slog.Logger, snap *lexicon.Snapshot, cfg *config.Config) (*lexsvc.Service, error) {
	if !cfg.Ngram.Enabled {
		return lexsvc.NewService(logger, snap, nil, cfg.Query)
	}
	return lexsvc.NewService(logger, snap, ngram.NewProvider(cfg.Ngram, logger), cfg.Query)
}

func newHandler(
	logger *slog.Logger,
	cfg *config.Config,
	pool interface{ Ping(context.Context) error },
	snap *lexicon.Snapshot,
	service *lexsvc.Service,
	rl *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	health := rest.NewHealthHandler(pool, snap, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	rest.NewWordHandler(service, logger).Register(mux)

	var limit middleware.Middleware
	if cfg.Query.RateLimit > 0 {
		limit = rl.Limit(cfg.Query.RateLimit)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.BuildID(snap.BuildID()),
		middleware.Logger(logger, "/live", "/ready"),
		middleware.CORS(cfg.CORS),
		limit,
	)(mux)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

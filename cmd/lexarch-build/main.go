// Command lexarch-build runs the offline lexicon build: it reads the
// pronunciation and frequency corpora, syllabifies, splits compounds,
// aligns spelling to sound, scores difficulty and replaces the stored
// lexicon. It is intended to be run offline, not as part of the server.
//
// Flags:
//
//	--phase         run phases up to and including this one (default: all)
//	--dry-run       run every phase without touching the DB schema or data
//	--build-config  path to build YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexarch-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexarch-backend/internal/app"
	"github.com/heartmarshall/lexarch-backend/internal/app/builder"
	"github.com/heartmarshall/lexarch-backend/internal/compound"
	"github.com/heartmarshall/lexarch-backend/internal/config"
	"github.com/heartmarshall/lexarch-backend/internal/difficulty"
	"github.com/heartmarshall/lexarch-backend/internal/phonetics"
)

// Compile-time interface assertions.
var (
	_ builder.WordRepo = (*word.Repo)(nil)
	_ builder.TxRunner = (*postgres.TxManager)(nil)
)

func main() {
	phaseFlag := flag.String("phase", "", "last phase to run: "+strings.Join(builder.Phases(), ","))
	dryRunFlag := flag.Bool("dry-run", false, "run the build without writing to DB")
	buildConfigFlag := flag.String("build-config", "", "path to build YAML config file")
	flag.Parse()

	// App config carries the DB connection and corpus paths.
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)
	appCfg.Database.ApplicationName += "-build"

	buildCfg, err := builder.LoadConfig(*buildConfigFlag)
	if err != nil {
		logger.Error("load build config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *dryRunFlag {
		buildCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := run(ctx, logger, appCfg, *buildCfg, strings.TrimSpace(*phaseFlag)); err != nil {
		logger.Error("build failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("build completed successfully")
}

func run(ctx context.Context, logger *slog.Logger, appCfg *config.Config, buildCfg builder.Config, until string) error {
	table, graphemes, err := loadTables(appCfg.Corpus)
	if err != nil {
		return err
	}
	if missing := graphemes.Missing(table); len(missing) > 0 {
		logger.Warn("phonemes without grapheme candidates", slog.Any("phonemes", missing))
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	err = migrateUnlessDryRun(ctx, buildCfg.DryRun, logger, func(ctx context.Context) error {
		return postgres.Migrate(ctx, pool, logger)
	})
	if err != nil {
		return err
	}

	pipeline := builder.NewPipeline(logger, buildCfg, builder.Deps{
		Source:    builder.NewFileSource(appCfg.Corpus, logger),
		Repo:      word.New(pool),
		Tx:        postgres.NewTxManager(pool, postgres.WithIsoLevel(pgx.Serializable)),
		Table:     table,
		Graphemes: graphemes,
		Thresholds: compound.Thresholds{
			MinPartLen: appCfg.Compound.MinPartLen,
			Floor:      appCfg.Compound.Floor,
			Ceiling:    appCfg.Compound.Ceiling,
		},
		Params: difficulty.ParamsFromConfig(appCfg.Difficulty),
	})

	return pipeline.Run(ctx, until)
}

// migrateUnlessDryRun applies schema migrations. A dry run leaves the
// database untouched, schema included.
func migrateUnlessDryRun(ctx context.Context, dryRun bool, logger *slog.Logger, migrate func(context.Context) error) error {
	if dryRun {
		logger.Info("dry run: skipping schema migrations")
		return nil
	}
	return migrate(ctx)
}

// loadTables reads the phoneme and grapheme tables from the configured
// paths. Empty paths select the embedded tables.
func loadTables(cfg config.CorpusConfig) (*phonetics.Table, *phonetics.GraphemeTable, error) {
	table, err := phonetics.LoadTableFile(cfg.PhonemeTablePath)
	if err != nil {
		return nil, nil, fmt.Errorf("phoneme table: %w", err)
	}

	graphemes, err := phonetics.LoadGraphemeTableFile(cfg.GraphemePath)
	if err != nil {
		return nil, nil, fmt.Errorf("grapheme table: %w", err)
	}

	return table, graphemes, nil
}

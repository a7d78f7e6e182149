package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/internal/config"
	"github.com/okian/paragon/internal/seed"
	"github.com/okian/paragon/pkg/logger"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var (
		baseURL  = flag.String("url", cfg.APIBaseURL, "Base URL of the company API")
		count    = flag.Int("count", cfg.SeedCount, "Number of companies to create")
		workers  = flag.Int("workers", cfg.SeedWorkers, "Number of concurrent workers")
		rps      = flag.Float64("rate", cfg.SeedRate, "Maximum create requests per second (0 = unlimited)")
		pageSize = flag.Int("page-size", cfg.DefaultPageSize, "Page size used when verifying")
		timeout  = flag.Duration("timeout", cfg.RequestTimeout(), "HTTP request timeout")
		output   = flag.String("output", cfg.SeedOutput, "Write created companies to this JSON file")
		fakeSeed = flag.Int64("seed", 0, "Fake data seed (0 = random)")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log level, keeping default", logger.String("level", level))
	}
	log := logger.Named("seed")

	c, err := client.New(*baseURL,
		client.WithTimeout(*timeout),
		client.WithLogger(logger.Named("client")),
	)
	if err != nil {
		log.Error(ctx, "invalid api url", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	stats, err := seed.Run(ctx, client.NewCompanyService(c), seed.Config{
		Count:    *count,
		Workers:  *workers,
		Rate:     *rps,
		PageSize: *pageSize,
		Output:   *output,
		FakeSeed: *fakeSeed,
	}, log)
	if err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err), logger.Int("verified", stats.Verified))
		cancel()
		os.Exit(1) //nolint:gocritic // deferred cancel already called
	}
}

func showHelp() {
	os.Stdout.WriteString(`Paragon Company Seeder
======================

Creates fake companies through the company API and verifies they can be
listed back page by page.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the company API (default from PARAGON_API_BASE_URL)
  -count int
        Number of companies to create (default from PARAGON_SEED_COUNT)
  -workers int
        Number of concurrent workers (default from PARAGON_SEED_WORKERS)
  -rate float
        Maximum create requests per second, 0 for unlimited
  -page-size int
        Page size used when verifying
  -timeout duration
        HTTP request timeout
  -output string
        Write created companies to this JSON file
  -seed int
        Fake data seed, 0 for random
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Seed a local server with defaults
  go run ./cmd/seed

  # Seed 5000 companies at 200 req/s
  go run ./cmd/seed -count 5000 -workers 16 -rate 200 -url http://localhost:8080
`)
}

package seed

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/logger"
)

const defaultPageSize = 50

// Run generates cfg.Count companies, creates them through svc and verifies
// they can all be listed back.
func Run(ctx context.Context, svc Companies, cfg Config, log logger.Logger) (Stats, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Count < 0 || cfg.Workers <= 0 || cfg.Rate < 0 {
		return Stats{}, fmt.Errorf("%w: count=%d workers=%d rate=%g", ErrInvalidConfig, cfg.Count, cfg.Workers, cfg.Rate)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	stats := Stats{StartTime: time.Now()}
	log.Info(ctx, "starting company seeding",
		logger.Int("count", cfg.Count),
		logger.Int("workers", cfg.Workers),
		logger.Float64("rate", cfg.Rate),
		logger.String("output", cfg.Output))

	// Step 1: make sure the API answers
	if _, err := svc.QueryPage(ctx, client.PageOf(0, 1)); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	// Step 2: generate
	companies := NewGenerator(cfg.FakeSeed).Companies(cfg.Count)
	stats.Generated = len(companies)

	// Step 3: submit concurrently
	created := submit(ctx, svc, cfg, companies, &stats, log)
	if err := ctx.Err(); err != nil {
		return finish(stats), fmt.Errorf("seeding interrupted: %w", err)
	}
	if stats.Submitted > 0 && stats.Successful == 0 {
		return finish(stats), ErrAllCreatesFailed
	}
	slices.SortFunc(created, func(a, b model.Company) int { return compareIDs(a.ID, b.ID) })

	// Step 4: verify by listing everything back
	if err := verify(ctx, svc, cfg.PageSize, created, &stats); err != nil {
		return finish(stats), fmt.Errorf("verification failed: %w", err)
	}

	// Step 5: save
	if cfg.Output != "" {
		if err := save(cfg.Output, created); err != nil {
			log.Warn(ctx, "failed to save companies to file", logger.Error(err))
		} else {
			log.Info(ctx, "companies saved to file", logger.String("filename", cfg.Output))
		}
	}

	stats = finish(stats)
	log.Info(ctx, "seeding finished",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("perSecond", perSecond(stats)))
	return stats, nil
}

func finish(s Stats) Stats {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
	return s
}

func perSecond(s Stats) float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Submitted) / s.Duration.Seconds()
}

func compareIDs(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

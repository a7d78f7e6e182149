package seed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/logger"
	"github.com/okian/paragon/pkg/metrics"
)

const (
	seededEntity   = "company"
	reportInterval = time.Second
)

// submit creates companies with cfg.Workers workers, throttled to cfg.Rate
// requests per second. It returns the stored companies in completion order.
func submit(ctx context.Context, svc Companies, cfg Config, companies []model.Company, stats *Stats, log logger.Logger) []model.Company {
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, max(1, cfg.Workers))

	var (
		submitted  int64
		successful int64
		failed     int64

		mu      sync.Mutex
		created = make([]model.Company, 0, len(companies))
	)

	jobs := make(chan model.Company, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				out, err := svc.Create(ctx, c)
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					metrics.RecordSeeded(seededEntity, "failed")
					log.Debug(ctx, "create failed", logger.Int("worker", workerID), logger.Error(err))
					continue
				}
				atomic.AddInt64(&successful, 1)
				metrics.RecordSeeded(seededEntity, "created")
				mu.Lock()
				created = append(created, out)
				mu.Unlock()
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(reportInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				log.Info(ctx, "seeding progress",
					logger.Int64("submitted", atomic.LoadInt64(&submitted)),
					logger.Int("total", len(companies)),
					logger.Int64("successful", atomic.LoadInt64(&successful)),
					logger.Int64("failed", atomic.LoadInt64(&failed)))
			}
		}
	}()

	go func() {
		defer close(jobs)
		for _, c := range companies {
			select {
			case <-ctx.Done():
				return
			case jobs <- c:
			}
		}
	}()

	wg.Wait()
	close(done)

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))
	return created
}

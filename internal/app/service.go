// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	repository "github.com/okian/paragon/internal/adapters/repository"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/logger"
	"github.com/okian/paragon/pkg/metrics"
)

// Service implements the API dependencies for the company collection.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	startID         int64
	refreshInterval time.Duration

	// State
	started   bool
	startedAt time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore replaces the default in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStartID sets the first id of the default in-memory store.
func WithStartID(id int64) Option {
	return func(s *Service) {
		if id > 0 {
			s.startID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRefreshInterval sets how often system gauges are refreshed while the
// service runs.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		refreshInterval: metrics.RefreshInterval(),
		logger:          logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithStartID(s.startID))
	}
	return s
}

// Start begins the background metrics refresh loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.refreshLoop(s.stopCh, s.doneCh)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "company service started",
		logger.Int("companies", s.store.Count(ctx)),
		logger.Duration("refreshInterval", s.refreshInterval),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	done := s.doneCh
	s.started = false
	s.mu.Unlock()

	<-done
	s.logger.Info(context.Background(), "company service stopped")
}

func (s *Service) refreshLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(s.refreshInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.refreshSystemMetrics()
		}
	}
}

func (s *Service) refreshSystemMetrics() (uint64, int) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	goroutines := runtime.NumGoroutine()
	metrics.UpdateSystemMemoryUsage(ms.Alloc)
	metrics.UpdateSystemGoroutineCount(goroutines)
	return ms.Alloc, goroutines
}

// CreateCompany stores a new company and returns it with its id.
func (s *Service) CreateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	out, err := s.store.Create(ctx, c)
	if err != nil {
		s.logger.Warn(ctx, "create company rejected", logger.Error(err))
		return model.Company{}, err
	}
	s.logger.Debug(ctx, "company created", logger.Int64("id", *out.ID))
	return out, nil
}

// GetCompany returns one company.
func (s *Service) GetCompany(ctx context.Context, id int64) (model.Company, error) {
	return s.store.Get(ctx, id)
}

// ListCompanies returns one page of companies and the total count.
func (s *Service) ListCompanies(ctx context.Context, req repository.PageRequest) ([]model.Company, int, error) {
	return s.store.List(ctx, req)
}

// UpdateCompany replaces a stored company.
func (s *Service) UpdateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	out, err := s.store.Update(ctx, c)
	if err != nil {
		s.logMutationError(ctx, "update", c.ID, err)
		return model.Company{}, err
	}
	s.logger.Debug(ctx, "company updated", logger.Int64("id", *out.ID))
	return out, nil
}

// PatchCompany applies the set fields of patch to the stored company.
func (s *Service) PatchCompany(ctx context.Context, id int64, patch model.Company) (model.Company, error) {
	out, err := s.store.Patch(ctx, id, patch)
	if err != nil {
		s.logMutationError(ctx, "patch", &id, err)
		return model.Company{}, err
	}
	s.logger.Debug(ctx, "company patched", logger.Int64("id", id))
	return out, nil
}

// DeleteCompany removes a company.
func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logMutationError(ctx, "delete", &id, err)
		return err
	}
	s.logger.Debug(ctx, "company deleted", logger.Int64("id", id))
	return nil
}

func (s *Service) logMutationError(ctx context.Context, op string, id *int64, err error) {
	fields := []logger.Field{logger.String("op", op), logger.Error(err)}
	if id != nil {
		fields = append(fields, logger.Int64("id", *id))
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug(ctx, "company not found", fields...)
		return
	}
	s.logger.Warn(ctx, "company mutation failed", fields...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	mem, goroutines := s.refreshSystemMetrics()
	stats := map[string]interface{}{
		"started":    s.started,
		"companies":  s.store.Count(ctx),
		"goroutines": goroutines,
		"memBytes":   mem,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

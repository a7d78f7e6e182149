// Package seed fills a running API with fake companies and checks that every
// one of them can be read back.
package seed

import (
	"context"
	"time"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/internal/domain/model"
)

// Companies is the part of the company service the seeder needs.
// *client.CompanyService satisfies it.
type Companies interface {
	Create(ctx context.Context, c model.Company) (model.Company, error)
	QueryPage(ctx context.Context, opts *client.RequestOptions) (client.Page[model.Company], error)
	AddToCollectionIfMissing(collection []model.Company, candidates []*model.Company) []model.Company
}

// Config holds configuration for one seeding run.
type Config struct {
	Count    int     // Number of companies to create
	Workers  int     // Number of concurrent workers
	Rate     float64 // Create requests per second; 0 means unlimited
	PageSize int     // Page size used while verifying
	Output   string  // Optional JSON file for the created companies
	FakeSeed int64   // gofakeit seed; 0 picks a random one
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Failed     int
	Verified   int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

package seed

import (
	"context"
	"fmt"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/metrics"
)

// collect pages through the whole collection, merging every page into one
// slice by id. It stops on an empty or short page, once X-Total-Count is
// reached, or when a page adds nothing new.
func collect(ctx context.Context, svc Companies, pageSize int) ([]model.Company, error) {
	var all []model.Company
	for page := 0; ; page++ {
		p, err := svc.QueryPage(ctx, client.PageOf(page, pageSize, "id,asc"))
		if err != nil {
			return nil, fmt.Errorf("list page %d: %w", page, err)
		}
		if len(p.Items) == 0 {
			return all, nil
		}
		candidates := make([]*model.Company, len(p.Items))
		for i := range p.Items {
			candidates[i] = &p.Items[i]
		}
		before := len(all)
		all = svc.AddToCollectionIfMissing(all, candidates)
		switch {
		case p.TotalCount >= 0 && int64(len(all)) >= p.TotalCount:
			return all, nil
		case len(p.Items) < pageSize:
			return all, nil
		case len(all) == before:
			// The server repeated a page, so paging is not honoured.
			return all, nil
		}
	}
}

// verify checks that every created company is present in the listing.
func verify(ctx context.Context, svc Companies, pageSize int, created []model.Company, stats *Stats) error {
	listed, err := collect(ctx, svc, pageSize)
	if err != nil {
		return err
	}
	present := make(map[int64]struct{}, len(listed))
	for _, c := range listed {
		if c.ID != nil {
			present[*c.ID] = struct{}{}
		}
	}

	var missing []int64
	for _, c := range created {
		if c.ID == nil {
			continue
		}
		if _, ok := present[*c.ID]; !ok {
			missing = append(missing, *c.ID)
			continue
		}
		stats.Verified++
		metrics.RecordSeeded(seededEntity, "verified")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %d of %d, e.g. id %d", ErrMissingCompanies, len(missing), len(created), missing[0])
	}
	return nil
}

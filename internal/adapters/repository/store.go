// Package repository defines the entity store interface and errors.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/paragon/internal/domain/model"
)

// PageRequest selects a page of a listing. Page is zero-based. A Size of
// zero or less returns everything.
type PageRequest struct {
	Page int
	Size int
	// Sort holds "field" or "field,asc|desc" entries, applied in order.
	Sort []string
}

// Store provides read/write access to companies.
type Store interface {
	// Create assigns an id and stores c. Returns ErrIDExists if c already has one.
	Create(ctx context.Context, c model.Company) (model.Company, error)

	// Get returns the company with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (model.Company, error)

	// List returns one page of companies and the total number stored.
	List(ctx context.Context, req PageRequest) ([]model.Company, int, error)

	// Update replaces the stored company with c.
	Update(ctx context.Context, c model.Company) (model.Company, error)

	// Patch applies the non-nil fields of patch to the company with id.
	Patch(ctx context.Context, id int64, patch model.Company) (model.Company, error)

	// Delete removes the company with id or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored companies.
	Count(ctx context.Context) int
}

type sortKey struct {
	field string
	desc  bool
}

func parseSort(sorts []string) ([]sortKey, error) {
	keys := make([]sortKey, 0, len(sorts)+1)
	for _, s := range sorts {
		parts := strings.Split(s, ",")
		field := strings.TrimSpace(parts[0])
		if _, ok := companyFields[field]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidSort, field)
		}
		k := sortKey{field: field}
		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "", "asc":
			case "desc":
				k.desc = true
			default:
				return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, parts[1])
			}
		}
		keys = append(keys, k)
	}
	// id is the final tie-breaker so pages are stable.
	return append(keys, sortKey{field: "id"}), nil
}

// companyFields maps sortable wire names to a comparator. Absent values sort
// before present ones.
var companyFields = map[string]func(a, b model.Company) int{
	"id": func(a, b model.Company) int { return compareInt(a.ID, b.ID) },
	"created": func(a, b model.Company) int {
		switch {
		case a.Created == nil && b.Created == nil:
			return 0
		case a.Created == nil:
			return -1
		case b.Created == nil:
			return 1
		}
		return a.Created.Compare(*b.Created)
	},
	"nip":      func(a, b model.Company) int { return compareString(a.Nip, b.Nip) },
	"regon":    func(a, b model.Company) int { return compareString(a.Regon, b.Regon) },
	"street":   func(a, b model.Company) int { return compareString(a.Street, b.Street) },
	"city":     func(a, b model.Company) int { return compareString(a.City, b.City) },
	"postCode": func(a, b model.Company) int { return compareString(a.PostCode, b.PostCode) },
}

func compareInt(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareString(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

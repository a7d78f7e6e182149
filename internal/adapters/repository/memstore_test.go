package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/okian/paragon/internal/domain/model"
)

func seed(t *testing.T, s *MemoryStore, cities ...string) []model.Company {
	t.Helper()
	out := make([]model.Company, 0, len(cities))
	for _, city := range cities {
		c, err := s.Create(context.Background(), model.Company{City: model.Ptr(city)})
		if err != nil {
			t.Fatalf("create %s: %v", city, err)
		}
		out = append(out, c)
	}
	return out
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := store.Create(ctx, model.Company{Created: &created, Nip: model.Ptr("1234567890")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == nil || *c.ID != 1 {
		t.Fatalf("expected id 1, got %v", c.ID)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.Nip != "1234567890" || !got.Created.Equal(created) {
		t.Errorf("unexpected company: %+v", got)
	}

	got.City = model.Ptr("Gdańsk")
	updated, err := store.Update(ctx, got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *updated.City != "Gdańsk" {
		t.Errorf("expected city Gdańsk, got %v", updated.City)
	}

	patched, err := store.Patch(ctx, 1, model.Company{Street: model.Ptr("Długa 1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *patched.Street != "Długa 1" || *patched.City != "Gdańsk" || *patched.Nip != "1234567890" {
		t.Errorf("patch did not merge: %+v", patched)
	}

	if err := store.Delete(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, model.Company{ID: model.Ptr(int64(5))}); !errors.Is(err, ErrIDExists) {
		t.Errorf("expected ErrIDExists, got %v", err)
	}
	if _, err := store.Update(ctx, model.Company{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if _, err := store.Update(ctx, model.Company{ID: model.Ptr(int64(99))}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Patch(ctx, 99, model.Company{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.List(ctx, PageRequest{Sort: []string{"unknown,asc"}}); !errors.Is(err, ErrInvalidSort) {
		t.Errorf("expected ErrInvalidSort, got %v", err)
	}
	if _, _, err := store.List(ctx, PageRequest{Sort: []string{"city,sideways"}}); !errors.Is(err, ErrInvalidSort) {
		t.Errorf("expected ErrInvalidSort, got %v", err)
	}
}

func TestMemoryStore_PatchKeepsID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, "Kraków")

	got, err := store.Patch(ctx, 1, model.Company{ID: model.Ptr(int64(42)), City: model.Ptr("Łódź")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.ID != 1 {
		t.Errorf("patch must not change the id, got %d", *got.ID)
	}
}

func TestMemoryStore_StartID(t *testing.T) {
	store := NewMemoryStore(WithStartID(1000))
	cs := seed(t, store, "a", "b")
	if *cs[0].ID != 1000 || *cs[1].ID != 1001 {
		t.Errorf("expected ids 1000,1001, got %d,%d", *cs[0].ID, *cs[1].ID)
	}

	store = NewMemoryStore(WithStartID(-3))
	cs = seed(t, store, "a")
	if *cs[0].ID != 1 {
		t.Errorf("non-positive start id must be ignored, got %d", *cs[0].ID)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cs := seed(t, store, "Poznań")

	*cs[0].City = "mutated"
	got, _ := store.Get(ctx, *cs[0].ID)
	if *got.City != "Poznań" {
		t.Errorf("stored state leaked through returned pointer: %s", *got.City)
	}
}

func TestMemoryStore_ListPagingAndSorting(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, "Warszawa", "Kraków", "Łódź", "Gdańsk", "Poznań")
	if _, err := store.Create(ctx, model.Company{}); err != nil {
		t.Fatal(err)
	}

	all, total, err := store.List(ctx, PageRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 6 || len(all) != 6 {
		t.Fatalf("expected 6 companies, got %d/%d", len(all), total)
	}
	for i, c := range all {
		if *c.ID != int64(i+1) {
			t.Errorf("default order must be by id, position %d has %d", i, *c.ID)
		}
	}

	page, total, err := store.List(ctx, PageRequest{Page: 1, Size: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 6 || len(page) != 2 || *page[0].ID != 5 {
		t.Errorf("unexpected second page: total=%d len=%d", total, len(page))
	}

	empty, _, err := store.List(ctx, PageRequest{Page: 5, Size: 4})
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty page, got %d (%v)", len(empty), err)
	}

	byCity, _, err := store.List(ctx, PageRequest{Sort: []string{"city,desc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *byCity[0].City != "Łódź" {
		t.Errorf("expected Łódź first in descending order, got %s", *byCity[0].City)
	}
	if byCity[len(byCity)-1].City != nil {
		t.Errorf("absent city must sort last in descending order")
	}
}

func TestMemoryStore_ListHugePage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, "Gdańsk")

	for _, page := range []int{1, 92233720368547759, math.MaxInt} {
		items, total, err := store.List(ctx, PageRequest{Page: page, Size: 100})
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", page, err)
		}
		if total != 1 || len(items) != 0 {
			t.Errorf("page %d: expected empty page of 1, got %d/%d", page, len(items), total)
		}
	}

	empty := NewMemoryStore()
	items, total, err := empty.List(ctx, PageRequest{Page: 0, Size: 10})
	if err != nil || total != 0 || len(items) != 0 {
		t.Errorf("expected empty first page on empty store, got %d/%d (%v)", len(items), total, err)
	}
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Create(ctx, model.Company{Nip: model.Ptr(fmt.Sprintf("%010d", i))})
		}(i)
	}
	wg.Wait()

	all, total, err := store.List(ctx, PageRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 50 {
		t.Fatalf("expected 50 companies, got %d", total)
	}
	seen := make(map[int64]bool)
	for _, c := range all {
		if seen[*c.ID] {
			t.Errorf("duplicate id %d", *c.ID)
		}
		seen[*c.ID] = true
	}
}

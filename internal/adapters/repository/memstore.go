package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/metrics"
)

const entityName = "company"

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store guarded by a RWMutex.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]model.Company
	nextID int64
}

// NewMemoryStore creates an empty store. Ids start at 1 unless WithStartID
// says otherwise.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		items:  make(map[int64]model.Company),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, c model.Company) (model.Company, error) {
	if c.ID != nil {
		return model.Company{}, ErrIDExists
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c = clone(c)
	c.ID = model.Ptr(s.nextID)
	s.nextID++
	s.items[*c.ID] = c

	s.recordMutation("create")
	return clone(c), nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id int64) (model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return model.Company{}, ErrNotFound
	}
	return clone(c), nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, req PageRequest) ([]model.Company, int, error) {
	keys, err := parseSort(req.Sort)
	if err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	all := make([]model.Company, 0, len(s.items))
	for _, c := range s.items {
		all = append(all, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b model.Company) int {
		for _, k := range keys {
			r := companyFields[k.field](a, b)
			if k.desc {
				r = -r
			}
			if r != 0 {
				return r
			}
		}
		return 0
	})

	total := len(all)
	if req.Size > 0 {
		// Compare pages before multiplying so huge page numbers cannot overflow.
		if req.Page < 0 || req.Page >= (total+req.Size-1)/req.Size {
			return []model.Company{}, total, nil
		}
		start := req.Page * req.Size
		end := min(start+req.Size, total)
		all = all[start:end]
	}

	out := make([]model.Company, len(all))
	for i, c := range all {
		out[i] = clone(c)
	}
	return out, total, nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, c model.Company) (model.Company, error) {
	if c.ID == nil {
		return model.Company{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[*c.ID]; !ok {
		return model.Company{}, ErrNotFound
	}
	c = clone(c)
	s.items[*c.ID] = c

	s.recordMutation("update")
	return clone(c), nil
}

// Patch implements Store.
func (s *MemoryStore) Patch(_ context.Context, id int64, patch model.Company) (model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[id]
	if !ok {
		return model.Company{}, ErrNotFound
	}
	patch.ID = nil
	merged := clone(cur.Merge(patch))
	s.items[id] = merged

	s.recordMutation("patch")
	return clone(merged), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)

	s.recordMutation("delete")
	return nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// recordMutation must be called with s.mu held.
func (s *MemoryStore) recordMutation(op string) {
	metrics.RecordStoreMutation(entityName, op)
	metrics.UpdateStoredEntities(entityName, len(s.items))
}

// clone copies every pointer field so callers cannot reach stored state.
func clone(c model.Company) model.Company {
	return model.Company{
		ID:       clonePtr(c.ID),
		Created:  clonePtr(c.Created),
		Nip:      clonePtr(c.Nip),
		Regon:    clonePtr(c.Regon),
		Street:   clonePtr(c.Street),
		City:     clonePtr(c.City),
		PostCode: clonePtr(c.PostCode),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

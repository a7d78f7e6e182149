// Package repository defines the entity store interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithStartID sets the first id handed out by Create.
func WithStartID(id int64) Option {
	return func(s *MemoryStore) {
		if id > 0 {
			s.nextID = id
		}
	}
}

// Package model contains domain models passed between layers.
package model

// Identifiable is implemented by every persisted entity. A nil identifier
// marks a record the remote store has not assigned an id to yet.
type Identifiable interface {
	Identifier() *int64
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

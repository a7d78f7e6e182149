package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/paragon/internal/domain/dedupe"
	"github.com/okian/paragon/internal/domain/model"
)

// Codec converts an entity to and from its wire shape.
type Codec[E any, W any] struct {
	ToWire   func(E) W
	FromWire func(W) E
}

// Page is one page of a listing together with the server-reported total.
// TotalCount is -1 when the server did not send X-Total-Count.
type Page[E any] struct {
	Items      []E
	TotalCount int64
}

// Resource exposes the CRUD operations of one REST collection. E is the
// domain entity, W its JSON wire shape.
type Resource[E model.Identifiable, W any] struct {
	client *Client
	entity string
	path   string
	codec  Codec[E, W]
}

// NewResource binds a collection path, e.g. "api/companies", to c.
func NewResource[E model.Identifiable, W any](c *Client, entity, path string, codec Codec[E, W]) *Resource[E, W] {
	return &Resource[E, W]{client: c, entity: entity, path: path, codec: codec}
}

// ResourceURL returns the absolute collection URL.
func (r *Resource[E, W]) ResourceURL() string {
	return r.client.resolve(r.path, nil)
}

func (r *Resource[E, W]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[E, W]) one(ctx context.Context, req request) (E, error) {
	var zero E
	req.entity = r.entity
	resp, err := r.client.do(ctx, req)
	if err != nil {
		return zero, err
	}
	var w W
	if err := decode(r.entity, resp, &w); err != nil {
		return zero, err
	}
	return r.codec.FromWire(w), nil
}

// Find fetches the entity with the given id.
func (r *Resource[E, W]) Find(ctx context.Context, id int64) (E, error) {
	return r.one(ctx, request{method: http.MethodGet, path: r.itemPath(id)})
}

// Query lists entities. opts may be nil.
func (r *Resource[E, W]) Query(ctx context.Context, opts *RequestOptions) ([]E, error) {
	p, err := r.QueryPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// QueryPage lists entities and reports the total count header.
func (r *Resource[E, W]) QueryPage(ctx context.Context, opts *RequestOptions) (Page[E], error) {
	resp, err := r.client.do(ctx, request{
		entity: r.entity,
		method: http.MethodGet,
		path:   r.path,
		query:  opts.Values(),
	})
	if err != nil {
		return Page[E]{}, err
	}
	var ws []W
	if err := decode(r.entity, resp, &ws); err != nil {
		return Page[E]{}, err
	}
	items := make([]E, len(ws))
	for i, w := range ws {
		items[i] = r.codec.FromWire(w)
	}
	return Page[E]{Items: items, TotalCount: resp.totalCount()}, nil
}

// Create posts e and returns what the server stored.
func (r *Resource[E, W]) Create(ctx context.Context, e E) (E, error) {
	return r.one(ctx, request{method: http.MethodPost, path: r.path, body: r.codec.ToWire(e)})
}

// Update replaces the entity identified by e.
func (r *Resource[E, W]) Update(ctx context.Context, e E) (E, error) {
	id := e.Identifier()
	if id == nil {
		var zero E
		return zero, ErrMissingID
	}
	return r.one(ctx, request{method: http.MethodPut, path: r.itemPath(*id), body: r.codec.ToWire(e)})
}

// PartialUpdate sends only the set fields of e as a merge patch.
func (r *Resource[E, W]) PartialUpdate(ctx context.Context, e E) (E, error) {
	id := e.Identifier()
	if id == nil {
		var zero E
		return zero, ErrMissingID
	}
	return r.one(ctx, request{
		method:      http.MethodPatch,
		path:        r.itemPath(*id),
		body:        r.codec.ToWire(e),
		contentType: contentTypeMergePatch,
	})
}

// Delete removes the entity with the given id.
func (r *Resource[E, W]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.do(ctx, request{entity: r.entity, method: http.MethodDelete, path: r.itemPath(id)})
	return err
}

// AddToCollectionIfMissing merges candidates into collection by id.
// See dedupe.AddToCollectionIfMissing.
func (r *Resource[E, W]) AddToCollectionIfMissing(collection []E, candidates []*E) []E {
	return dedupe.AddToCollectionIfMissing(collection, candidates)
}

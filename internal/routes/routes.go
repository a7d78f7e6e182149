// Package routes holds the table of entity pages the site exposes.
package routes

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/pkg/logger"
)

// Deps are the collaborators page factories may use.
type Deps struct {
	Companies *client.CompanyService
	Logger    logger.Logger
}

// Factory builds the handler of one page.
type Factory func(Deps) http.Handler

// Route maps a path segment to an entity page.
type Route struct {
	// Path is a single segment such as "company".
	Path      string
	PageTitle string
	// ResourceURL is the entity collection on the API, relative to its root.
	ResourceURL string
	Factory     Factory
}

// Table is an ordered set of routes keyed by path.
// It is built once at startup and is not safe for concurrent registration.
type Table struct {
	routes []Route
	index  map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Register adds r to the table.
func (t *Table) Register(r Route) error {
	if r.Path == "" || strings.Contains(r.Path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, r.Path)
	}
	if r.Factory == nil {
		return fmt.Errorf("%w: %q", ErrNoFactory, r.Path)
	}
	if _, ok := t.index[r.Path]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, r.Path)
	}
	t.index[r.Path] = len(t.routes)
	t.routes = append(t.routes, r)
	return nil
}

// MustRegister is like Register but panics on error.
func (t *Table) MustRegister(r Route) {
	if err := t.Register(r); err != nil {
		panic(err)
	}
}

// Lookup returns the route registered for path.
func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.index[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

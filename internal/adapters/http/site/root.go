// Package site mounts the entity pages of a route table.
package site

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/okian/paragon/internal/routes"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
  <head><meta charset="utf-8"><title>paragon</title></head>
  <body>
    <ul>
    {{- range .}}
      <li><a href="/{{.Path}}">{{.PageTitle}}</a></li>
    {{- end}}
    </ul>
  </body>
</html>
`))

// Register attaches every route of table to mux under /{path}, and an index
// page at / linking them. Each factory is called once.
func Register(_ context.Context, mux *http.ServeMux, table *routes.Table, deps routes.Deps) {
	if mux == nil {
		panic("mux is nil")
	}
	rs := table.Routes()
	for _, r := range rs {
		mux.Handle("GET /"+r.Path, r.Factory(deps))
	}
	mux.Handle("GET /{$}", NewRootHandler(rs))
}

// RootHandler serves the index page.
type RootHandler struct {
	routes []routes.Route
}

// NewRootHandler creates a new root handler
func NewRootHandler(rs []routes.Route) *RootHandler {
	return &RootHandler{routes: rs}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.routes); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.HandleRoot(w, r)
}

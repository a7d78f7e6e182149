package routes

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/okian/paragon/internal/adapters/http/client"
	"github.com/okian/paragon/internal/domain/datetime"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/logger"
)

const companyPageSize = 20

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"str":     deref,
	"created": func(c model.Company) string { return deref(datetime.ToWire(c.Created)) },
}).Parse(`
{{define "metadata"}}<!doctype html>
<html>
  <head><meta charset="utf-8"><title>{{.Title}}</title></head>
  <body>
    <h1>{{.Title}}</h1>
    <p>Resource: <code>{{.Resource}}</code></p>
  </body>
</html>
{{end}}
{{define "companies"}}<!doctype html>
<html>
  <head><meta charset="utf-8"><title>{{.Title}}</title></head>
  <body>
    <h1>{{.Title}}</h1>
    <table>
      <thead><tr><th>ID</th><th>Created</th><th>NIP</th><th>REGON</th><th>Street</th><th>City</th><th>Post code</th></tr></thead>
      <tbody>
      {{- range .Items}}
        <tr><td>{{with .ID}}{{.}}{{end}}</td><td>{{created .}}</td><td>{{str .Nip}}</td><td>{{str .Regon}}</td><td>{{str .Street}}</td><td>{{str .City}}</td><td>{{str .PostCode}}</td></tr>
      {{- end}}
      </tbody>
    </table>
    <p>Page {{.Page}}{{if ge .Total 0}} of {{.Total}} companies{{end}}</p>
  </body>
</html>
{{end}}
`))

type metadataView struct {
	Title    string
	Resource string
}

type companiesView struct {
	Title string
	Items []model.Company
	Page  int
	Total int64
}

func metadataPage(title, resource string) Factory {
	return func(Deps) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			render(w, "metadata", metadataView{Title: title, Resource: resource})
		})
	}
}

// companyPage lists one page of companies. Query params page, size and sort
// are passed through to the API.
func companyPage(title, _ string) Factory {
	return func(deps Deps) http.Handler {
		log := deps.Logger
		if log == nil {
			log = logger.Nop()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if deps.Companies == nil {
				http.Error(w, "company service unavailable", http.StatusServiceUnavailable)
				return
			}
			q := r.URL.Query()
			page := intParam(q.Get("page"), 0)
			size := intParam(q.Get("size"), companyPageSize)
			if size == 0 {
				size = companyPageSize
			}

			p, err := deps.Companies.QueryPage(r.Context(), client.PageOf(page, size, q["sort"]...))
			if err != nil {
				log.Warn(r.Context(), "list companies failed", logger.Error(err))
				http.Error(w, "list companies failed", http.StatusBadGateway)
				return
			}
			render(w, "companies", companiesView{Title: title, Items: p.Items, Page: page, Total: p.TotalCount})
		})
	}
}

// render executes the named template into a buffer so a failure can still
// produce a clean 500.
func render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func intParam(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

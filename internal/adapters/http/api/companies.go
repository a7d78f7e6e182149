package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	repository "github.com/okian/paragon/internal/adapters/repository"
	"github.com/okian/paragon/internal/domain/datetime"
	"github.com/okian/paragon/internal/domain/model"
)

const companiesPath = "/api/companies"

// CompaniesHandler serves the company collection and its items.
type CompaniesHandler struct {
	deps            Dependencies
	defaultPageSize int
	maxPageSize     int
}

// NewCompaniesHandler creates a new companies handler.
func NewCompaniesHandler(deps Dependencies) *CompaniesHandler {
	return &CompaniesHandler{deps: deps, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// HandleList handles GET /api/companies?page=&size=&sort=.
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	items, total, err := h.deps.ListCompanies(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	out := make([]model.CompanyWire, len(items))
	for i, c := range items {
		out[i] = c.ToWire()
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/companies.
func (h *CompaniesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, err := decodeCompany(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if c.ID != nil {
		writeError(w, http.StatusBadRequest, "id_exists", ErrIDExists)
		return
	}
	out, err := h.deps.CreateCompany(r.Context(), c)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/%d", companiesPath, *out.ID))
	writeJSON(w, http.StatusCreated, out.ToWire())
}

// HandleGet handles GET /api/companies/{id}.
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	c, err := h.deps.GetCompany(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.ToWire())
}

// HandleUpdate handles PUT /api/companies/{id}.
func (h *CompaniesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, c, ok := h.itemWithBody(w, r)
	if !ok {
		return
	}
	c.ID = &id
	out, err := h.deps.UpdateCompany(r.Context(), c)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.ToWire())
}

// HandlePatch handles PATCH /api/companies/{id}. Only fields present in the
// body are changed.
func (h *CompaniesHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, c, ok := h.itemWithBody(w, r)
	if !ok {
		return
	}
	out, err := h.deps.PatchCompany(r.Context(), id, c)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.ToWire())
}

// HandleDelete handles DELETE /api/companies/{id}.
func (h *CompaniesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.DeleteCompany(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// itemWithBody decodes the path id and body of PUT and PATCH, checking that
// the body id is present and matches the path.
func (h *CompaniesHandler) itemWithBody(w http.ResponseWriter, r *http.Request) (int64, model.Company, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return 0, model.Company{}, false
	}
	c, err := decodeCompany(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return 0, model.Company{}, false
	}
	switch {
	case c.ID == nil:
		writeError(w, http.StatusBadRequest, "id_null", ErrIDNull)
		return 0, model.Company{}, false
	case *c.ID != id:
		writeError(w, http.StatusBadRequest, "id_invalid", ErrIDInvalid)
		return 0, model.Company{}, false
	}
	return id, c, true
}

func (h *CompaniesHandler) pageRequest(r *http.Request) (repository.PageRequest, error) {
	q := r.URL.Query()
	req := repository.PageRequest{Size: h.defaultPageSize, Sort: q["sort"]}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, fmt.Errorf("%w: invalid page %q", ErrBadRequest, v)
		}
		req.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return req, fmt.Errorf("%w: invalid size %q", ErrBadRequest, v)
		}
		req.Size = min(n, h.maxPageSize)
	}
	return req, nil
}

func (h *CompaniesHandler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrInvalidSort):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrIDExists):
		writeError(w, http.StatusBadRequest, "id_exists", err)
	case errors.Is(err, repository.ErrMissingID):
		writeError(w, http.StatusBadRequest, "id_null", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

func pathID(r *http.Request) (int64, error) {
	v := r.PathValue("id")
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", ErrBadRequest, v)
	}
	return id, nil
}

// decodeCompany reads a company from the request body. Unlike the client, a
// malformed created value is rejected rather than dropped.
func decodeCompany(r *http.Request) (model.Company, error) {
	var w model.CompanyWire
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return model.Company{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if w.Created != nil && strings.TrimSpace(*w.Created) != "" {
		if _, err := datetime.Parse(*w.Created); err != nil {
			return model.Company{}, fmt.Errorf("%w: %q", ErrBadCreated, *w.Created)
		}
	}
	return w.ToDomain(), nil
}

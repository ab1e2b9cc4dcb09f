package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// listReports handles GET /api/reports.
func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Reports().Catalog())
}

// runReport handles GET /api/reports/{reportID}. The id may be the number or
// the title; filters come from the city, provider, food_type and meal_type
// query parameters, where "All" or an empty value means unfiltered.
func (h *Handler) runReport(w http.ResponseWriter, r *http.Request) {
	reports := h.store.Reports()

	key := chi.URLParam(r, "reportID")
	id, err := strconv.Atoi(key)
	if err != nil {
		report, lerr := reports.Lookup(key)
		if lerr != nil {
			h.fail(w, r, lerr)
			return
		}
		id = report.ID
	}

	query := r.URL.Query()
	var filters types.Filters
	for _, field := range types.FilterFields {
		filters = filters.Add(field, query.Get(string(field)))
	}

	result, err := reports.Execute(id, filters)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// options handles GET /api/options.
func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.store.Reports().Options()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opts)
}

// internal/app/features/issues/list.go
package issues

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	issuestore "github.com/ecofine/ecofine-api/internal/app/store/issues"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/ecofine/ecofine-api/internal/app/system/normalize"
	"github.com/ecofine/ecofine-api/internal/app/system/paging"
	"github.com/ecofine/ecofine-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /issues with search/category/status filters,
// sort selection, and offset pagination.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p := issuestore.ListParams{
		Search:   query.Get(r, "search"),
		Category: query.Get(r, "category"),
		Status:   query.Get(r, "status"),
		Sort:     query.Get(r, "sort"),
		Page:     paging.Page(r),
		Limit:    paging.Limit(r, paging.DefaultLimit),
	}
	items, total, err := h.Issues.List(ctx, p)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Paged(w, items, total, p.Page, p.Limit)
}

// ServeRecent handles GET /issues/recent, a fixed-size newest-first
// preview.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Issues.Recent(ctx, h.RecentLimit)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, items)
}

// ServeGet handles GET /issues/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	iss, err := h.Issues.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, iss)
}

// ServeByOwner handles GET /my-issues/{email}. The email parameter must
// match the authenticated identity; this is an ownership check by
// parameter rather than by stored resource.
func (h *Handler) ServeByOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}
	email := normalize.Email(chi.URLParam(r, "email"))
	if email != id.Email {
		httpjson.Error(w, h.Log, apperr.Forbidden("you may only list your own issues"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Issues.ListByOwner(ctx, email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, items)
}

// internal/app/features/issues/mutate.go
package issues

import (
	"context"
	"net/http"

	issuestore "github.com/ecofine/ecofine-api/internal/app/store/issues"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/ecofine/ecofine-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// createRequest is the POST /issues body. There is deliberately no
// reporterEmail or createdAt field; those are server-stamped.
type createRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
}

// patchRequest is the PUT /issues/{id} body; only supplied fields change.
type patchRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
	Amount      *float64 `json:"amount"`
}

// HandleCreate handles POST /issues.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	iss, err := h.Issues.Create(ctx, issuestore.Input{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      req.Status,
		Amount:      req.Amount,
	}, id.Email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("issue created",
		zap.String("id", iss.ID.Hex()),
		zap.String("reporter", id.Email))
	httpjson.OK(w, iss)
}

// HandleUpdate handles PUT /issues/{id} (ownership-checked in the store).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	var req patchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	iss, err := h.Issues.Update(ctx, chi.URLParam(r, "id"), id.Email, issuestore.Patch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      req.Status,
		Amount:      req.Amount,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, iss)
}

// HandleDelete handles DELETE /issues/{id} (ownership-checked, physical
// removal).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Issues.Delete(ctx, chi.URLParam(r, "id"), id.Email); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("issue deleted",
		zap.String("id", chi.URLParam(r, "id")),
		zap.String("reporter", id.Email))
	httpjson.OK(w, nil)
}

// internal/app/features/contributions/handler.go
package contributions

import (
	"context"
	"net/http"

	contributionstore "github.com/ecofine/ecofine-api/internal/app/store/contributions"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/ecofine/ecofine-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Contributions *contributionstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Contributions: contributionstore.New(db),
		Log:           logger,
	}
}

// createRequest is the POST /my-contribution body. txRef is generated
// server-side and cannot be supplied.
type createRequest struct {
	IssueID string  `json:"issueId"`
	Amount  float64 `json:"amount"`
}

// HandleCreate handles POST /my-contribution.
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

	c, err := h.Contributions.Create(ctx, contributionstore.Input{
		IssueID: req.IssueID,
		Amount:  req.Amount,
	}, id.Email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("contribution recorded",
		zap.String("id", c.ID.Hex()),
		zap.String("issue", c.IssueID),
		zap.String("contributor", id.Email))
	httpjson.OK(w, c)
}

// ServeList handles GET /my-contribution, the caller's own
// contributions newest-first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Contributions.ListByOwner(ctx, id.Email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, items)
}

// ServeGet handles GET /my-contribution/{id}. Another caller's
// contribution reads as not found.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Contributions.GetByID(ctx, chi.URLParam(r, "id"), id.Email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, c)
}

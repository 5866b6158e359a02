// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/ecofine/ecofine-api/internal/app/store/users"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"github.com/ecofine/ecofine-api/internal/app/system/identity"
	"github.com/ecofine/ecofine-api/internal/app/system/normalize"
	"github.com/ecofine/ecofine-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, adminEmail string, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db, adminEmail),
		Log:   logger,
	}
}

// upsertRequest is the POST /users body, sent by the client after a
// provider sign-in.
type upsertRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type upsertResponse struct {
	Created bool `json:"created"`
}

// HandleUpsert handles POST /users: create-or-refresh the profile row
// for a signed-in user. The role is assigned on first sight and never
// changed here.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Users.Upsert(ctx, userstore.Profile{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if res.Created {
		h.Log.Info("user created", zap.String("email", normalize.Email(req.Email)))
	}
	httpjson.OK(w, upsertResponse{Created: res.Created})
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

// ServeIsAdmin handles GET /users/admin/{email}. Callers may only ask
// about themselves.
func (h *Handler) ServeIsAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}
	email := normalize.Email(chi.URLParam(r, "email"))
	if email != id.Email {
		httpjson.Error(w, h.Log, apperr.Forbidden("you may only query your own role"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Users.IsAdmin(ctx, email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, adminResponse{Admin: admin})
}

// ServeFavorites handles GET /users/favorites/{email}, self-only.
func (h *Handler) ServeFavorites(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}
	email := normalize.Email(chi.URLParam(r, "email"))
	if email != id.Email {
		httpjson.Error(w, h.Log, apperr.Forbidden("you may only list your own favorites"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	favs, err := h.Users.Favorites(ctx, email)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, favs)
}

// toggleRequest is the POST /users/favorites body.
type toggleRequest struct {
	IssueID string `json:"issueId"`
}

type toggleResponse struct {
	IsFavorited bool `json:"isFavorited"`
}

// HandleToggleFavorite handles POST /users/favorites: add the issue id
// to the caller's favorites if absent, remove it if present.
func (h *Handler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromRequest(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("authentication required"))
		return
	}

	var req toggleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	favorited, err := h.Users.ToggleFavorite(ctx, id.Email, req.IssueID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, toggleResponse{IsFavorited: favorited})
}

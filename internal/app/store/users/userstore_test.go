package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/ecofine/ecofine-api/internal/app/store/users"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/domain/models"
	"github.com/ecofine/ecofine-api/internal/testutil"
)

func TestUpsert_CreatesThenRefreshes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")

	res, err := store.Upsert(ctx, userstore.Profile{
		Email: "  Alice@Example.COM ",
		Name:  "Alice   Jones",
		Photo: "https://example.com/a.png",
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !res.Created {
		t.Error("expected first upsert to create")
	}

	u, err := store.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Name != "Alice Jones" {
		t.Errorf("name not collapsed: %q", u.Name)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleUser)
	}
	if u.Favorites == nil || len(u.Favorites) != 0 {
		t.Errorf("favorites: got %v, want empty slice", u.Favorites)
	}
	firstLogin := u.LastLogin

	res, err = store.Upsert(ctx, userstore.Profile{
		Email: "alice@example.com",
		Name:  "Alice J",
	})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if res.Created {
		t.Error("second upsert must not create")
	}

	u, err = store.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Name != "Alice J" {
		t.Errorf("name not refreshed: %q", u.Name)
	}
	if u.LastLogin.Before(firstLogin) {
		t.Error("last_login not refreshed")
	}
}

func TestUpsert_RequiresEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")

	_, err := store.Upsert(ctx, userstore.Profile{Email: "   "})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpsert_AdminSeedIsFirstSeenOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "Boss@Example.com")

	if _, err := store.Upsert(ctx, userstore.Profile{Email: "boss@example.com"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	admin, err := store.IsAdmin(ctx, "boss@example.com")
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if !admin {
		t.Error("configured admin email did not receive the admin role")
	}

	// A user created before being named admin keeps their role on relogin.
	plain := userstore.New(db, "")
	if _, err := plain.Upsert(ctx, userstore.Profile{Email: "late@example.com"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	promotedStore := userstore.New(db, "late@example.com")
	if _, err := promotedStore.Upsert(ctx, userstore.Profile{Email: "late@example.com"}); err != nil {
		t.Fatalf("relogin Upsert failed: %v", err)
	}
	admin, err = promotedStore.IsAdmin(ctx, "late@example.com")
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if admin {
		t.Error("role was upgraded by a later login; role is first-seen only")
	}
}

func TestIsAdmin_AbsentUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")

	admin, err := store.IsAdmin(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if admin {
		t.Error("absent user reported as admin")
	}
}

func TestFavorites_AbsentUserIsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")

	favs, err := store.Favorites(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if favs == nil || len(favs) != 0 {
		t.Errorf("got %v, want empty slice", favs)
	}
}

func TestToggleFavorite_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")
	if _, err := store.Upsert(ctx, userstore.Profile{Email: "fan@example.com"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	on, err := store.ToggleFavorite(ctx, "fan@example.com", "issue-1")
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !on {
		t.Error("first toggle should favorite")
	}

	favs, err := store.Favorites(ctx, "fan@example.com")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(favs) != 1 || favs[0] != "issue-1" {
		t.Errorf("favorites after toggle on: %v", favs)
	}

	off, err := store.ToggleFavorite(ctx, "fan@example.com", "issue-1")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if off {
		t.Error("second toggle should unfavorite")
	}

	favs, err = store.Favorites(ctx, "fan@example.com")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites after toggle off: %v", favs)
	}
}

func TestToggleFavorite_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db, "")
	if _, err := store.Upsert(ctx, userstore.Profile{Email: "fan@example.com"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := store.ToggleFavorite(ctx, "fan@example.com", "  "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for blank issue id, got %v", err)
	}
	if _, err := store.ToggleFavorite(ctx, "ghost@example.com", "issue-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not-found for absent user, got %v", err)
	}
}

package contributionstore_test

import (
	"errors"
	"testing"
	"time"

	contributionstore "github.com/ecofine/ecofine-api/internal/app/store/contributions"
	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/testutil"
)

func TestCreate_StampsContributorAndTxRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := contributionstore.New(db)

	c, err := store.Create(ctx, contributionstore.Input{
		IssueID: "abc123",
		Amount:  50,
	}, "giver@test.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if c.ContributorEmail != "giver@test.com" {
		t.Errorf("contributor: got %q", c.ContributorEmail)
	}
	if c.TxRef == "" {
		t.Error("expected generated tx_ref")
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}

	c2, err := store.Create(ctx, contributionstore.Input{IssueID: "abc123", Amount: 25}, "giver@test.com")
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if c2.TxRef == c.TxRef {
		t.Error("tx_ref must be unique per contribution")
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := contributionstore.New(db)

	if _, err := store.Create(ctx, contributionstore.Input{Amount: 10}, "g@test.com"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for missing issue id, got %v", err)
	}
	if _, err := store.Create(ctx, contributionstore.Input{IssueID: "x", Amount: 0}, "g@test.com"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for zero amount, got %v", err)
	}
	if _, err := store.Create(ctx, contributionstore.Input{IssueID: "x", Amount: -5}, "g@test.com"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for negative amount, got %v", err)
	}
}

func TestListByOwner_ScopedAndOrdered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateContribution(ctx, "issue-a", "mine@test.com", 10)
	time.Sleep(2 * time.Millisecond)
	fx.CreateContribution(ctx, "issue-b", "mine@test.com", 20)
	fx.CreateContribution(ctx, "issue-a", "other@test.com", 30)

	store := contributionstore.New(db)

	items, err := store.ListByOwner(ctx, "mine@test.com")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].IssueID != "issue-b" {
		t.Errorf("expected newest-first, got %q", items[0].IssueID)
	}
}

func TestGetByID_OwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	c := fx.CreateContribution(ctx, "issue-a", "mine@test.com", 10)

	store := contributionstore.New(db)

	got, err := store.GetByID(ctx, c.ID.Hex(), "mine@test.com")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TxRef != c.TxRef {
		t.Errorf("tx_ref mismatch: %q vs %q", got.TxRef, c.TxRef)
	}

	// Another caller's contribution reads as absent.
	if _, err := store.GetByID(ctx, c.ID.Hex(), "other@test.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not-found for foreign contribution, got %v", err)
	}
	if _, err := store.GetByID(ctx, "not-hex", "mine@test.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not-found for malformed id, got %v", err)
	}
}

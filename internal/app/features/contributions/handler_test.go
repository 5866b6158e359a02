package contributions_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecofine/ecofine-api/internal/app/features/contributions"
	"github.com/ecofine/ecofine-api/internal/domain/models"
	"github.com/ecofine/ecofine-api/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*contributions.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return contributions.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	h, _ := newHandler(t)

	body := strings.NewReader(`{"issueId":"abc123","amount":40,"txRef":"spoofed"}`)
	req := testutil.WithIdentity(httptest.NewRequest("POST", "/my-contribution", body), "giver@test.com")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Result models.Contribution `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if env.Result.ContributorEmail != "giver@test.com" {
		t.Errorf("contributor: got %q", env.Result.ContributorEmail)
	}
	if env.Result.TxRef == "" || env.Result.TxRef == "spoofed" {
		t.Errorf("tx_ref must be server-generated, got %q", env.Result.TxRef)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, _ := newHandler(t)

	body := strings.NewReader(`{"issueId":"abc123","amount":0}`)
	req := testutil.WithIdentity(httptest.NewRequest("POST", "/my-contribution", body), "giver@test.com")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestServeList_OwnOnly(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateContribution(ctx, "issue-a", "mine@test.com", 10)
	fx.CreateContribution(ctx, "issue-b", "other@test.com", 20)

	req := testutil.NewAuthenticatedRequest("GET", "/my-contribution", "mine@test.com")
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var env struct {
		Result []models.Contribution `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if len(env.Result) != 1 || env.Result[0].IssueID != "issue-a" {
		t.Errorf("listing leaked or missed rows: %+v", env.Result)
	}
}

func TestServeGet_ForeignReadsAsMissing(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContribution(ctx, "issue-a", "mine@test.com", 10)

	req := testutil.NewAuthenticatedRequest("GET", "/my-contribution/"+c.ID.Hex(), "other@test.com")
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

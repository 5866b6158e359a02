package httpjson_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.OK(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}

	var env struct {
		Success bool              `json:"success"`
		Result  map[string]string `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if !env.Success || env.Result["hello"] != "world" {
		t.Errorf("envelope: %+v", env)
	}
}

func TestPaged_EmptySliceIsJSONArray(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Paged(rec, []string{}, 0, 1, 8)

	body := rec.Body.String()
	if !strings.Contains(body, `"result":[]`) {
		t.Errorf("empty page should encode as [], got %s", body)
	}

	var env struct {
		TotalCount int64 `json:"totalCount"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if env.Page != 1 || env.Limit != 8 {
		t.Errorf("paging fields: %+v", env)
	}
}

func TestError_MapsStatusAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, zap.NewNop(), apperr.NotFound("issue"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d", rec.Code)
	}
	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if env.Success {
		t.Error("failure envelope reported success")
	}
	if env.Message != "issue not found" {
		t.Errorf("message: got %q", env.Message)
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, zap.NewNop(), errors.New("dial tcp 10.0.0.5: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Error("internal error detail leaked to the client")
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("generic message missing: %s", rec.Body.String())
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"x"}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := httpjson.Decode(req, &dst); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.Title != "x" {
		t.Errorf("title: got %q", dst.Title)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if err := httpjson.Decode(req, &dst); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for bad JSON, got %v", err)
	}
}

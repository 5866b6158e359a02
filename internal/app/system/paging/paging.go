// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 8

// MaxLimit caps the page size a caller may request.
const MaxLimit = 100

// Page extracts the 1-based "page" query parameter. Returns 1 if absent
// or invalid.
func Page(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit extracts the "limit" query parameter, falling back to def and
// clamping to MaxLimit.
func Limit(r *http.Request, def int) int {
	s := query.Get(r, "limit")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Skip computes the document offset for a 1-based page number.
func Skip(page, limit int) int64 {
	return int64((page - 1) * limit)
}

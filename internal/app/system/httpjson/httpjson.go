// Package httpjson writes the API's JSON envelopes and converts errors to
// responses at the request boundary. The envelope is
// { "success": bool, "result"?, "message"? }; paged lists additionally
// carry totalCount/page/limit for client-side page-count math.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the standard response body.
type Envelope struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PagedEnvelope is the list response body for offset-paged endpoints.
type PagedEnvelope struct {
	Success    bool        `json:"success"`
	Result     interface{} `json:"result"`
	TotalCount int64       `json:"totalCount"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 success envelope with the given result.
func OK(w http.ResponseWriter, result interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Result: result})
}

// Paged writes a 200 list envelope. result should be a slice; callers pass
// an empty (non-nil) slice so the JSON is [] rather than null.
func Paged(w http.ResponseWriter, result interface{}, total int64, page, limit int) {
	write(w, http.StatusOK, PagedEnvelope{
		Success:    true,
		Result:     result,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	})
}

// Error converts err to its status code and writes a failure envelope.
// Backend failures (500) are logged and the raw error is not exposed.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		msg = "internal server error"
	}
	write(w, status, Envelope{Success: false, Message: msg})
}

// Decode reads a JSON request body into dst, classifying failures as
// validation errors.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

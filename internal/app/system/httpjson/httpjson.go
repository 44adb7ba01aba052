// Package httpjson provides the request/response helpers all handlers use:
// body decoding with a size cap, JSON rendering, and taxonomy-aware error
// responses.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies. Card descriptions and comments are the
// largest fields this API accepts; 1 MiB is generous.
const maxBodyBytes = 1 << 20

// Decode reads the request body as JSON into dst. A malformed or oversized
// body yields a ValidationError.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// Respond writes v as JSON with the given status. A nil v writes the status
// with no body.
func Respond(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Message string `json:"message"`
}

// Error writes err using the taxonomy mapping. Internal errors are logged
// with their cause; everything else is the caller's problem and logged at
// debug level only.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	Respond(w, status, errorBody{Message: apperr.MessageOf(err)})
}

// Package response writes the JSON envelopes shared by handlers and middleware.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sellerchat/internal/domain"
	"sellerchat/internal/observability"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// OK writes a 200 envelope around data.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Status: StatusOK, Data: data})
}

func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, Envelope{
		Status: StatusError,
		Error:  &ErrorInfo{Code: code, Message: message},
	})
}

// FromError maps err to its HTTP status. Classified domain errors carry their
// own message; anything else is logged and reported as a generic fault.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindInvalidOperation:
			Error(w, http.StatusBadRequest, string(de.Kind), de.Message)
			return
		case domain.KindConflict:
			Error(w, http.StatusConflict, string(de.Kind), de.Message)
			return
		case domain.KindNotFound:
			Error(w, http.StatusNotFound, string(de.Kind), de.Message)
			return
		}
	}

	observability.FromContext(r.Context()).Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	Error(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// APIError mirrors the error envelope written by the handlers.
type APIError struct {
	Status string `json:"status"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewJSONRequest creates a new HTTP request with JSON body
func NewJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithBearer sets the Authorization header on req and returns it.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// DecodeJSON decodes JSON response body into the given struct
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
	return result
}

// AssertAPIError fails unless w carries the error envelope with the given status and code.
func AssertAPIError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) APIError {
	t.Helper()
	if w.Code != status {
		t.Errorf("expected status %d, got %d. Body: %s", status, w.Code, w.Body.String())
	}
	got := DecodeJSON[APIError](t, w)
	if got.Status != "ERROR" {
		t.Errorf("expected status field ERROR, got %q", got.Status)
	}
	if got.Error.Code != code {
		t.Errorf("expected error code %q, got %q", code, got.Error.Code)
	}
	return got
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sellerchat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `
openapi: 3.0.3
info:
  title: test
  version: 1.0.0
paths:
  /api/v1/chatrooms/{chatroom_id}/messages:
    post:
      parameters:
        - name: chatroom_id
          in: path
          required: true
          schema:
            type: string
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              properties:
                content:
                  type: string
      responses:
        '200':
          description: ok
`

func newValidatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	mw, err := OpenAPIValidator(DefaultOpenAPIValidatorConfig([]byte(testSpec)))
	require.NoError(t, err)

	called := new(bool)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})), called
}

func TestOpenAPIValidator(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCalled bool
	}{
		{"valid_body", http.MethodPost, "/api/v1/chatrooms/c1/messages", `{"content":"Hi"}`, http.StatusOK, true},
		{"empty_object", http.MethodPost, "/api/v1/chatrooms/c1/messages", `{}`, http.StatusOK, true},
		{"wrong_type", http.MethodPost, "/api/v1/chatrooms/c1/messages", `{"content":42}`, http.StatusBadRequest, false},
		{"unknown_path_passes_through", http.MethodGet, "/elsewhere", "", http.StatusOK, true},
		{"skipped_path", http.MethodGet, "/health/ready", "", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newValidatedHandler(t)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCalled, *called)
			if tt.wantStatus == http.StatusBadRequest {
				testutil.AssertAPIError(t, w, http.StatusBadRequest, "BAD_REQUEST")
				return
			}
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestOpenAPIValidator_ContentType(t *testing.T) {
	t.Run("unlabelled_body_is_json", func(t *testing.T) {
		handler, called := newValidatedHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chatrooms/c1/messages", strings.NewReader(`{"content":"Hi"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	})

	t.Run("other_media_type_rejected", func(t *testing.T) {
		handler, called := newValidatedHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chatrooms/c1/messages", strings.NewReader("Hi"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.False(t, *called)
		testutil.AssertAPIError(t, w, http.StatusBadRequest, "BAD_REQUEST")
	})
}

func TestOpenAPIValidator_Disabled(t *testing.T) {
	mw, err := OpenAPIValidator(&OpenAPIValidatorConfig{Enabled: false})
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestOpenAPIValidator_InvalidDocument(t *testing.T) {
	_, err := OpenAPIValidator(DefaultOpenAPIValidatorConfig([]byte("openapi: [")))
	assert.Error(t, err)
}

func TestShouldSkipPath(t *testing.T) {
	skip := []string{"/health", "/metrics"}

	assert.True(t, shouldSkipPath("/health", skip))
	assert.True(t, shouldSkipPath("/health/ready", skip))
	assert.False(t, shouldSkipPath("/healthz", skip))
	assert.False(t, shouldSkipPath("/api/v1/chatrooms", skip))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sellerchat/internal/domain"
	"sellerchat/internal/security"
	"sellerchat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAuth(t *testing.T) {
	tokens := security.NewTokenManager(testSecret, "sellerchat")
	valid, err := tokens.Issue(domain.Identity{UserID: "u1", Username: "alice"}, time.Hour)
	require.NoError(t, err)
	expired, err := tokens.Issue(domain.Identity{UserID: "u1", Username: "alice"}, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid_token", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase_scheme", "bearer " + valid, http.StatusOK, ""},
		{"missing_header", "", http.StatusUnauthorized, "missing bearer token"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "missing bearer token"},
		{"empty_token", "Bearer ", http.StatusUnauthorized, "missing bearer token"},
		{"tampered_token", "Bearer " + valid + "x", http.StatusUnauthorized, "invalid token"},
		{"expired_token", "Bearer " + expired, http.StatusUnauthorized, "token has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Identity
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, _ = IdentityFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/chatrooms", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Auth(tokens)(next).ServeHTTP(w, req)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.True(t, called)
				assert.Equal(t, domain.Identity{UserID: "u1", Username: "alice"}, got)
				return
			}
			assert.False(t, called, "next handler must not run")
			body := testutil.AssertAPIError(t, w, tt.wantStatus, "UNAUTHORIZED")
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	_, ok := IdentityFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestWithIdentity(t *testing.T) {
	ctx := WithIdentity(httptest.NewRequest(http.MethodGet, "/", nil).Context(), domain.Identity{UserID: "s1"})

	identity, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "s1", identity.UserID)
}

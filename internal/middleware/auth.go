package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"sellerchat/internal/domain"
	"sellerchat/internal/observability"
	"sellerchat/internal/response"
	"sellerchat/internal/security"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenVerifier resolves a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Auth rejects requests without a valid bearer token and stores the resolved
// identity in the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "missing bearer token")
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				message := "invalid token"
				if errors.Is(err, security.ErrExpiredToken) {
					message = "token has expired"
				}
				observability.FromContext(r.Context()).Debug("bearer token rejected", slog.String("error", err.Error()))
				response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, message)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = observability.WithUserID(ctx, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}

func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

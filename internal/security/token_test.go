package security

import (
	"testing"
	"time"

	"sellerchat/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, "sellerchat")

	token, err := m.Issue(domain.Identity{UserID: "u1", Username: "alice"}, time.Hour)
	require.NoError(t, err)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "u1", Username: "alice"}, identity)
}

func TestTokenManager_Issue_RequiresUserID(t *testing.T) {
	_, err := NewTokenManager(testSecret, "").Issue(domain.Identity{Username: "alice"}, time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_Verify(t *testing.T) {
	issuer := NewTokenManager(testSecret, "sellerchat")
	valid, err := issuer.Issue(domain.Identity{UserID: "u1", Username: "alice"}, time.Hour)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		m := NewTokenManager(testSecret, "sellerchat")
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := m.Verify(valid)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		_, err := NewTokenManager("another-secret-another-secret-xx", "sellerchat").Verify(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		_, err := NewTokenManager(testSecret, "someone-else").Verify(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none_algorithm_rejected", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "sellerchat",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: "u1",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing_user_id", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "sellerchat",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing_expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "sellerchat"},
			UserID:           "u1",
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

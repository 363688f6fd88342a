package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIssuer(secret string, ttl time.Duration, at time.Time) *Issuer {
	i := NewIssuer([]byte(secret), ttl)
	i.now = func() time.Time { return at }
	return i
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Now()
	issuer := fixedIssuer("secret", time.Hour, now)

	signed, claims, err := issuer.Issue("user-1", "Manager")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	verified, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", verified.UserID)
	assert.Equal(t, "Manager", verified.Role)
	assert.Equal(t, DefaultIssuer, verified.Issuer)
}

func TestVerify_Failures(t *testing.T) {
	now := time.Now()
	issuer := fixedIssuer("secret", time.Hour, now)
	signed, _, err := issuer.Issue("user-1", "Viewer")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := fixedIssuer("secret", time.Hour, now.Add(2*time.Hour))
		_, err := later.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := fixedIssuer("other", time.Hour, now)
		_, err := other.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			UserID: "user-1",
			Role:   "Admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    DefaultIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(unsigned)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing id", func(t *testing.T) {
		s, _, err := issuer.Issue("", "Admin")
		require.NoError(t, err)
		_, err = issuer.Verify(s)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("no secret", func(t *testing.T) {
		empty := NewIssuer(nil, time.Hour)
		_, _, err := empty.Issue("user-1", "Admin")
		assert.Error(t, err)
		_, err = empty.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

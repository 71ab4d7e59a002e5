package token

import (
	"testing"
	"time"

	"github.com/meridiancrm/meridian/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T, secret string, ttlMin int) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(config.Config{
		AppName:         "meridian-test",
		AuthJWTSecret:   secret,
		AuthTokenTTLMin: ttlMin,
	})
	require.NoError(t, err)
	return issuer
}

func TestIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer(config.Config{})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(t, "test-secret", 30)

	now := time.Now()
	signed, expiresAt, err := issuer.Issue("12345", "ada", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), expiresAt, time.Second)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "12345", claims.Subject)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "meridian-test", claims.Issuer)
}

func TestTokenRejectsTampering(t *testing.T) {
	issuer := testIssuer(t, "test-secret", 30)

	signed, _, err := issuer.Issue("12345", "ada", time.Now())
	require.NoError(t, err)

	_, err = issuer.Parse(signed + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret does not parse.
	other := testIssuer(t, "other-secret", 30)
	foreign, _, err := other.Issue("12345", "ada", time.Now())
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpires(t *testing.T) {
	issuer := testIssuer(t, "test-secret", 30)

	stale, _, err := issuer.Issue("12345", "ada", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = issuer.Parse(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/ports/auth"
)

func TestVerify_RoundTrip(t *testing.T) {
	v, err := NewVerifier(Config{Secret: "s3cret"})
	require.NoError(t, err)

	tok, err := v.Issue("owner-1", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID)
}

func TestVerify_Rejects(t *testing.T) {
	v, err := NewVerifier(Config{Secret: "s3cret"})
	require.NoError(t, err)
	other, err := NewVerifier(Config{Secret: "other"})
	require.NoError(t, err)

	expired, err := v.Issue("owner-1", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	wrongKey, err := other.Issue("owner-1", time.Hour, time.Now())
	require.NoError(t, err)
	noSubject, err := v.Issue("", time.Hour, time.Now())
	require.NoError(t, err)
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "x"}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":    expired,
		"wrong key":  wrongKey,
		"no subject": noSubject,
		"alg none":   none,
		"garbage":    "not-a-token",
	} {
		_, err := v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

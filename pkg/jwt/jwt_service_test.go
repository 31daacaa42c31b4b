package jwt

import (
	"testing"

	"beertrack/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateSessionToken("abc123")
	require.NoError(t, err)

	sid, err := svc.GetSessionIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret").GenerateSessionToken("abc123")
	require.NoError(t, err)

	_, err = NewJWTService("other").GetSessionIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionToken_Garbage(t *testing.T) {
	svc := NewJWTService("secret")

	_, err := svc.GetSessionIDByToken("")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	_, err = svc.GetSessionIDByToken("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestSessionToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwtSessionClaim{SessionID: "abc", RegisteredClaims: jwt.RegisteredClaims{Issuer: "BEERTRACK"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret").GetSessionIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGenerateSessionToken_Empty(t *testing.T) {
	_, err := NewJWTService("secret").GenerateSessionToken("")
	assert.Error(t, err)
}

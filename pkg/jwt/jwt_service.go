package jwt

import (
	"beertrack/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService signs the opaque session id into the cookie value so that
	// tampered cookies are rejected before the session store is consulted.
	// Expiry is owned by the session row, so the token carries no exp claim.
	JWTService interface {
		GenerateSessionToken(sessionID string) (string, error)
		GetSessionIDByToken(token string) (string, error)
	}

	jwtSessionClaim struct {
		SessionID string `json:"sid"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "BEERTRACK",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateSessionToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session id")
	}
	claims := jwtSessionClaim{
		sessionID,
		jwt.RegisteredClaims{
			Issuer:   j.issuer,
			IssuedAt: jwt.NewNumericDate(j.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) GetSessionIDByToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenNotFound
	}
	t_Token, err := jwt.ParseWithClaims(token, &jwtSessionClaim{}, j.parseToken)
	if err != nil || !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtSessionClaim)
	if !ok || claims.SessionID == "" || claims.Issuer != j.issuer {
		return "", domain.ErrTokenInvalid
	}
	return claims.SessionID, nil
}

// Package auth issues and verifies the signed bearer tokens that are the
// service's only session artifact. Nothing is stored server-side; a token is
// valid until its natural expiry.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devfolio/portfolio-backend/errs"
)

// DefaultTokenTTL is the session length used when TOKEN_TTL_HOURS is unset.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Claims represents the JWT claims carried by a bearer token.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 token encoding the user id as subject.
func IssueToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a token string and returns the user id it
// encodes. Signature, method and expiry failures all come back as
// errs.ErrInvalidToken or errs.ErrExpiredToken.
func VerifyToken(raw string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, errs.ErrExpiredToken
		}
		return uuid.Nil, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, errs.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidToken
	}
	return userID, nil
}

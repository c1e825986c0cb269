// Copyright (c) 2026 NotesAI. All rights reserved.

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HS256 key size accepted by [NewTokenService].
const MinSecretLength = 32

// SessionClaims is the payload of a session token.
//
// # Why a signed token?
//
// The session record lives server-side; the token only carries its id. The
// signature lets the resolver reject forged or truncated credentials before
// touching the session store.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionID returns the id of the server-side session referenced by the token.
func (claims *SessionClaims) SessionID() string { return claims.ID }

// UserID returns the subject of the token.
func (claims *SessionClaims) UserID() string { return claims.Subject }

// TokenService signs and verifies session tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService from a shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: session secret must be at least %d bytes", MinSecretLength)
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// Issue creates a signed token referencing a session.
func (service *TokenService) Issue(sessionID, userID string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(service.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Parse checks the signature, issuer and expiry of a session token.
func (service *TokenService) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.ID == "" {
		return nil, errors.New("sec: token carries no session id")
	}

	return claims, nil
}

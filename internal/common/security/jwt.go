package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and inspects HS256 bearer tokens. Signature
// verification of incoming tokens is handled by jwtauth.Verifier on the
// router; this type only encodes claims and extracts them once verified.
type TokenManager struct {
	auth   *jwtauth.JWTAuth
	expiry time.Duration
}

func NewTokenManager(secret []byte, expiry time.Duration) *TokenManager {
	return &TokenManager{
		auth:   jwtauth.New("HS256", secret, nil),
		expiry: expiry,
	}
}

// Auth exposes the underlying jwtauth instance for the router's Verifier
// middleware.
func (tm *TokenManager) Auth() *jwtauth.JWTAuth {
	return tm.auth
}

// GenerateToken signs a token bound to the given user identity.
func (tm *TokenManager) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
	}
	if tm.expiry > 0 {
		claims["exp"] = now.Add(tm.expiry).Unix()
	}
	_, tokenString, err := tm.auth.Encode(claims)
	return tokenString, err
}

// GetSubjectFromClaims returns the user id claim.
func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}

// GetEmailFromClaims returns the email claim.
func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

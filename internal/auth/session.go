package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit login state injected into the UI: loaded once at
// startup, cleared on logout, never read from ambient globals.
type Session struct {
	Token string
}

// LoadSession resolves the stored token. ErrNoToken means the user must log
// in; an expired token is treated the same way so the first screen is the
// login prompt, not a failed request.
func LoadSession() (Session, error) {
	token, err := LoadToken()
	if err != nil {
		return Session{}, err
	}
	if TokenExpired(token, time.Now()) {
		return Session{}, ErrNoToken
	}
	return Session{Token: token}, nil
}

// Clear removes the stored token. Cached profile data is the local store's
// concern and is cleared by the caller alongside this.
func (s *Session) Clear() error {
	s.Token = ""
	return DeleteToken()
}

func (s Session) Valid() bool {
	return s.Token != ""
}

// TokenExpired probes the token's exp claim without verifying the signature —
// the server remains the authority; this only short-circuits a guaranteed
// 401 into an immediate login prompt. Tokens that are not JWTs or carry no
// exp claim are assumed live.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// IsNoToken reports whether the error means "not logged in" as opposed to a
// credential-store failure.
func IsNoToken(err error) bool {
	return errors.Is(err, ErrNoToken)
}

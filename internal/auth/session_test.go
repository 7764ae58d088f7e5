package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "u1"}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	if !TokenExpired(signedToken(t, &past), now) {
		t.Fatal("TokenExpired() = false for a token expired an hour ago")
	}

	future := now.Add(time.Hour)
	if TokenExpired(signedToken(t, &future), now) {
		t.Fatal("TokenExpired() = true for a token valid for another hour")
	}
}

func TestTokenExpiredToleratesOpaqueTokens(t *testing.T) {
	now := time.Now()
	if TokenExpired("not-a-jwt", now) {
		t.Fatal("TokenExpired() = true for an opaque token; server must stay the authority")
	}
	if TokenExpired(signedToken(t, nil), now) {
		t.Fatal("TokenExpired() = true for a token with no exp claim")
	}
}

func TestLoadSessionRejectsExpiredToken(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	t.Setenv("FUELBOOK_TOKEN", signedToken(t, &expired))

	_, err := LoadSession()
	if !IsNoToken(err) {
		t.Fatalf("LoadSession() error = %v, want ErrNoToken", err)
	}
}

func TestLoadSessionAcceptsLiveToken(t *testing.T) {
	future := time.Now().Add(time.Hour)
	token := signedToken(t, &future)
	t.Setenv("FUELBOOK_TOKEN", token)

	session, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() unexpected error: %v", err)
	}
	if !session.Valid() || session.Token != token {
		t.Fatalf("LoadSession() = %+v, want valid session with loaded token", session)
	}
}

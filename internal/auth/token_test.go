package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestLoadTokenUsesEnvVarFirst(t *testing.T) {
	t.Setenv("FUELBOOK_TOKEN", "  env-token  ")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringCalled := false
	keyringGet = func(service, user string) (string, error) {
		keyringCalled = true
		return "keyring-token", nil
	}

	got, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() unexpected error: %v", err)
	}
	if got != "env-token" {
		t.Fatalf("LoadToken() = %q, want %q", got, "env-token")
	}
	if keyringCalled {
		t.Fatal("LoadToken() called keyringGet even though FUELBOOK_TOKEN was set")
	}
}

func TestLoadTokenFallsBackToKeyring(t *testing.T) {
	t.Setenv("FUELBOOK_TOKEN", "")
	t.Setenv("FUELBOOK_KEYCHAIN_SERVICE", "svc")
	t.Setenv("FUELBOOK_KEYCHAIN_ACCOUNT", "acct")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	var gotService, gotUser string
	keyringGet = func(service, user string) (string, error) {
		gotService = service
		gotUser = user
		return "  keyring-token  ", nil
	}

	got, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() unexpected error: %v", err)
	}
	if got != "keyring-token" {
		t.Fatalf("LoadToken() = %q, want %q", got, "keyring-token")
	}
	if gotService != "svc" || gotUser != "acct" {
		t.Fatalf("keyringGet called with (%q, %q), want (%q, %q)", gotService, gotUser, "svc", "acct")
	}
}

func TestLoadTokenMissingItemIsErrNoToken(t *testing.T) {
	t.Setenv("FUELBOOK_TOKEN", "")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringGet = func(service, user string) (string, error) {
		return "", keyring.ErrNotFound
	}

	_, err := LoadToken()
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("LoadToken() error = %v, want ErrNoToken", err)
	}
}

func TestLoadTokenKeyringFailureKeepsContext(t *testing.T) {
	t.Setenv("FUELBOOK_TOKEN", "")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringGet = func(service, user string) (string, error) {
		return "", errors.New("boom")
	}

	_, err := LoadToken()
	if err == nil {
		t.Fatal("LoadToken() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "failed to read keyring item") {
		t.Fatalf("LoadToken() error = %q, expected keyring read context", err.Error())
	}
}

func TestLoadTokenEmptySecretIsErrNoToken(t *testing.T) {
	t.Setenv("FUELBOOK_TOKEN", "")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringGet = func(service, user string) (string, error) {
		return "   ", nil
	}

	_, err := LoadToken()
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("LoadToken() error = %v, want ErrNoToken", err)
	}
}

func TestSaveTokenRejectsEmpty(t *testing.T) {
	if err := SaveToken("   "); err == nil {
		t.Fatal("SaveToken() error = nil, want non-nil")
	}
}

func TestSaveTokenTrimsAndStores(t *testing.T) {
	t.Setenv("FUELBOOK_KEYCHAIN_SERVICE", "svc")
	t.Setenv("FUELBOOK_KEYCHAIN_ACCOUNT", "acct")

	origSet := keyringSet
	defer func() { keyringSet = origSet }()

	var gotService, gotUser, gotSecret string
	keyringSet = func(service, user, secret string) error {
		gotService = service
		gotUser = user
		gotSecret = secret
		return nil
	}

	if err := SaveToken("  the-token  "); err != nil {
		t.Fatalf("SaveToken() unexpected error: %v", err)
	}
	if gotService != "svc" || gotUser != "acct" || gotSecret != "the-token" {
		t.Fatalf("keyringSet called with (%q, %q, %q)", gotService, gotUser, gotSecret)
	}
}

func TestDeleteTokenIgnoresMissingItem(t *testing.T) {
	origDelete := keyringDelete
	defer func() { keyringDelete = origDelete }()

	keyringDelete = func(service, user string) error {
		return keyring.ErrNotFound
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() unexpected error: %v", err)
	}
}

package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "fuelbook"
	defaultSecretUser    = "api_token"
)

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// ErrNoToken signals that no session token is stored anywhere; callers show
// the login screen instead of failing the first request.
var ErrNoToken = errors.New("no api token stored")

// LoadToken loads the fuel API session token.
//
// Order of precedence:
// 1) FUELBOOK_TOKEN environment variable.
// 2) System credential store item referenced by service/account.
func LoadToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("FUELBOOK_TOKEN")); token != "" {
		return token, nil
	}

	service := envOrDefault("FUELBOOK_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("FUELBOOK_KEYCHAIN_ACCOUNT", defaultSecretUser)

	secret, err := keyringGet(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	token := strings.TrimSpace(secret)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SaveToken stores the session token in the system credential store.
func SaveToken(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("api token cannot be empty")
	}

	service := envOrDefault("FUELBOOK_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("FUELBOOK_KEYCHAIN_ACCOUNT", defaultSecretUser)

	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return nil
}

// DeleteToken removes the stored session token. A missing item is not an
// error; logout is idempotent.
func DeleteToken() error {
	service := envOrDefault("FUELBOOK_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("FUELBOOK_KEYCHAIN_ACCOUNT", defaultSecretUser)

	if err := keyringDelete(service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf(
			"failed to delete keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

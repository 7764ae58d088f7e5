package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const defaultDBKeyUser = "db_key"

// ErrNoDBKey signals that no local database key exists yet.
var ErrNoDBKey = errors.New("no local db key stored")

// LoadDBKey loads the key protecting the local sqlite store.
func LoadDBKey() (string, error) {
	service := envOrDefault("FUELBOOK_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("FUELBOOK_KEYCHAIN_DBKEY_ACCOUNT", defaultDBKeyUser)

	secret, err := keyringGet(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoDBKey
		}
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	key := strings.TrimSpace(secret)
	if key == "" {
		return "", ErrNoDBKey
	}
	return key, nil
}

// SaveDBKey stores the local database key in the system credential store.
func SaveDBKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("db key cannot be empty")
	}

	service := envOrDefault("FUELBOOK_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("FUELBOOK_KEYCHAIN_DBKEY_ACCOUNT", defaultDBKeyUser)

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

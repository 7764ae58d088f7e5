package storage

import "testing"

func TestConfigFromEnvOverridePath(t *testing.T) {
	t.Setenv("FUELBOOK_DB_PATH", "/tmp/fuelbook-custom.db")

	cfg, err := configFromEnv()
	if err != nil {
		t.Fatalf("configFromEnv() unexpected error: %v", err)
	}
	if cfg.Mode != ModeSecure {
		t.Fatalf("cfg.Mode = %q, want %q", cfg.Mode, ModeSecure)
	}
	if cfg.Path != "/tmp/fuelbook-custom.db" {
		t.Fatalf("cfg.Path = %q, want %q", cfg.Path, "/tmp/fuelbook-custom.db")
	}
}

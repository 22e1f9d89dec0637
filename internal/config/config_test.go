package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	setHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Geo.Mode != "off" {
		t.Errorf("Geo.Mode = %q, want off", cfg.Geo.Mode)
	}
	if cfg.Terminal.ConfirmDelayMillis != 2500 {
		t.Errorf("ConfirmDelayMillis = %d, want 2500", cfg.Terminal.ConfirmDelayMillis)
	}
	if cfg.Terminal.IdleLogoutSeconds != 30 {
		t.Errorf("IdleLogoutSeconds = %d, want 30", cfg.Terminal.IdleLogoutSeconds)
	}
	if !cfg.Notifications.Enabled {
		t.Error("notifications should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "ponto")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `[api]
restaurant_id = "rest-7"
api_key = "key-7"

[geo]
mode = "static"
latitude = -23.55
longitude = -46.63
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.RestaurantID != "rest-7" || cfg.API.APIKey != "key-7" {
		t.Errorf("api section = %+v", cfg.API)
	}
	if cfg.Geo.Mode != "static" || cfg.Geo.Latitude != -23.55 {
		t.Errorf("geo section = %+v", cfg.Geo)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Scanner.IntervalMillis != 500 {
		t.Errorf("Scanner.IntervalMillis = %d, want 500", cfg.Scanner.IntervalMillis)
	}
}

func TestEnvOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("PONTO_RESTAURANT_ID", "rest-env")
	t.Setenv("PONTO_API_KEY", "key-env")
	t.Setenv("PONTO_BASE_URL", "https://staging.example.com/api/rh")
	t.Setenv("PONTO_GEO_COMMAND", "termux-location")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.RestaurantID != "rest-env" || cfg.API.APIKey != "key-env" {
		t.Errorf("env credentials not applied: %+v", cfg.API)
	}
	if cfg.API.BaseURL != "https://staging.example.com/api/rh" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Geo.Command != "termux-location" || cfg.Geo.Mode != "command" {
		t.Errorf("geo command override not applied: %+v", cfg.Geo)
	}
}

func TestSaveCredentialsPreservesOtherSettings(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", "ponto")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	existing := `[api]
restaurant_id = "old"
api_key = "old-key"
base_url = "https://custom.example.com"

[terminal]
idle_logout_seconds = 45
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(existing), 0600); err != nil {
		t.Fatal(err)
	}

	if err := SaveCredentials("rest-new", "key-new"); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if cfg.API.RestaurantID != "rest-new" || cfg.API.APIKey != "key-new" {
		t.Errorf("credentials not replaced: %+v", cfg.API)
	}
	if cfg.API.BaseURL != "https://custom.example.com" {
		t.Errorf("base_url lost on save: %q", cfg.API.BaseURL)
	}
	if cfg.Terminal.IdleLogoutSeconds != 45 {
		t.Errorf("terminal section lost on save: %+v", cfg.Terminal)
	}
}

func TestSaveCredentialsCreatesFile(t *testing.T) {
	setHome(t)

	if err := SaveCredentials("rest-1", "key-1"); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.RestaurantID != "rest-1" || cfg.API.APIKey != "key-1" {
		t.Errorf("credentials not saved: %+v", cfg.API)
	}
}

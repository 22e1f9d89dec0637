package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	API           APIConfig      `toml:"api"`
	Geo           GeoConfig      `toml:"geo"`
	Scanner       ScannerConfig  `toml:"scanner"`
	Notifications NotifyConfig   `toml:"notifications"`
	Terminal      TerminalConfig `toml:"terminal"`
}

type APIConfig struct {
	RestaurantID string `toml:"restaurant_id"`
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
}

// GeoConfig controls how punch coordinates are acquired.
// Mode "off" skips geotagging, "static" uses the fixed coordinates
// below (a wall-mounted kiosk), "command" shells out to a locator such
// as termux-location.
type GeoConfig struct {
	Mode           string  `toml:"mode"`
	Latitude       float64 `toml:"latitude"`
	Longitude      float64 `toml:"longitude"`
	Command        string  `toml:"command"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// ScannerConfig controls the QR polling loop for camera-based setup.
type ScannerConfig struct {
	CaptureCommand string `toml:"capture_command"`
	IntervalMillis int    `toml:"interval_millis"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// TerminalConfig holds the kiosk auto-return delays.
type TerminalConfig struct {
	ConfirmDelayMillis int `toml:"confirm_delay_millis"`
	IdleLogoutSeconds  int `toml:"idle_logout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		Geo: GeoConfig{
			Mode:           "off",
			TimeoutSeconds: 10,
		},
		Scanner: ScannerConfig{
			IntervalMillis: 500,
			TimeoutSeconds: 60,
		},
		Notifications: NotifyConfig{
			Enabled: true,
		},
		Terminal: TerminalConfig{
			ConfirmDelayMillis: 2500,
			IdleLogoutSeconds:  30,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ponto"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PONTO_RESTAURANT_ID"); v != "" {
		cfg.API.RestaurantID = v
	}
	if v := os.Getenv("PONTO_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("PONTO_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("PONTO_GEO_COMMAND"); v != "" {
		cfg.Geo.Command = v
		cfg.Geo.Mode = "command"
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// SaveCredentials persists scanned or typed tenant credentials using a
// read-modify-write approach to preserve other settings.
func SaveCredentials(restaurantID, apiKey string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	cfg := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	apiSection, ok := cfg["api"].(map[string]any)
	if !ok {
		apiSection = make(map[string]any)
	}
	apiSection["restaurant_id"] = restaurantID
	apiSection["api_key"] = apiKey
	cfg["api"] = apiSection

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0600)
}

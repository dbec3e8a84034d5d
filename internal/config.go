package internal

import (
	"encoding/json"
	"io"
	"os"
)

// Config holds all configuration for shelftune
type Config struct {
	Replacements map[string]string `json:"replacements"`
	Pattern      Pattern           `json:"pattern"`
	Overwrite    bool              `json:"overwrite"`
	Move         bool              `json:"move"`
	Watch        *WatchConfig      `json:"watch,omitempty"`
}

// WatchConfig holds watch-mode-specific configuration
type WatchConfig struct {
	DebounceTime  string `json:"debounce_time"` // Duration string e.g. "2s"
	PIDFile       string `json:"pid_file"`
	ScanOnStartup bool   `json:"scan_on_startup"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Replacements: make(map[string]string),
		Pattern:      DefaultPattern(),
		Watch:        nil, // Watch config is optional
	}
}

// DefaultWatchConfig returns watch config with sensible defaults
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceTime:  "2s",
		PIDFile:       "/var/run/shelftune.pid",
		ScanOnStartup: true,
	}
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	if err := json.Unmarshal(b, &config); err != nil {
		return config, err
	}

	return config, nil
}

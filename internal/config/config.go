package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`
	Debug      bool   `json:"debug"`

	// Directories
	DataDirectory string `json:"data_directory"`

	// Password used to unlock an encrypted data directory. Empty means
	// prompt on the terminal when needed.
	DataPassword string `json:"-"`

	// Simulated inference delay for the deferred anomaly model.
	ModelLatency time.Duration `json:"model_latency"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		ListenAddr:    ":8080",
		Debug:         false,
		DataDirectory: filepath.Join(wd, "data"),
		ModelLatency:  700 * time.Millisecond,
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := DefaultConfig()

	if addr := os.Getenv("FINIQ_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("FINIQ_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if dataDir := os.Getenv("FINIQ_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}
	if password := os.Getenv("FINIQ_DATA_PASSWORD"); password != "" {
		cfg.DataPassword = password
	}
	if latency := os.Getenv("FINIQ_MODEL_LATENCY_MS"); latency != "" {
		ms, err := strconv.Atoi(latency)
		if err != nil || ms < 0 {
			log.Printf("Warning: ignoring invalid FINIQ_MODEL_LATENCY_MS=%q", latency)
		} else {
			cfg.ModelLatency = time.Duration(ms) * time.Millisecond
		}
	}

	cfg.ensureDirectories()

	return cfg
}

// ensureDirectories creates required directories if they don't exist
func (c *Config) ensureDirectories() {
	if err := os.MkdirAll(c.DataDirectory, 0755); err != nil {
		log.Printf("Warning: could not create directory %s: %v", c.DataDirectory, err)
	}
}

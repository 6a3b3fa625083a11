package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.ModelLatency != 700*time.Millisecond {
		t.Errorf("ModelLatency = %v, want 700ms", cfg.ModelLatency)
	}
	if cfg.DataDirectory == "" {
		t.Error("DataDirectory should have a default")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("FINIQ_LISTEN_ADDR", ":9999")
	t.Setenv("FINIQ_DEBUG", "1")
	t.Setenv("FINIQ_DATA_DIR", t.TempDir())
	t.Setenv("FINIQ_DATA_PASSWORD", "hunter22hunter22")
	t.Setenv("FINIQ_MODEL_LATENCY_MS", "50")

	cfg := Load()

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug override ignored")
	}
	if cfg.DataPassword != "hunter22hunter22" {
		t.Error("DataPassword override ignored")
	}
	if cfg.ModelLatency != 50*time.Millisecond {
		t.Errorf("ModelLatency = %v, want 50ms", cfg.ModelLatency)
	}
}

func TestLoadAcceptsZeroLatency(t *testing.T) {
	t.Setenv("FINIQ_DATA_DIR", t.TempDir())
	t.Setenv("FINIQ_MODEL_LATENCY_MS", "0")

	cfg := Load()
	if cfg.ModelLatency != 0 {
		t.Errorf("ModelLatency = %v, want 0", cfg.ModelLatency)
	}
}

func TestLoadRejectsBadLatency(t *testing.T) {
	t.Setenv("FINIQ_DATA_DIR", t.TempDir())
	t.Setenv("FINIQ_MODEL_LATENCY_MS", "soon")

	cfg := Load()
	if cfg.ModelLatency != 700*time.Millisecond {
		t.Errorf("ModelLatency = %v, want the 700ms default", cfg.ModelLatency)
	}
}

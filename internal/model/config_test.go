package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.ServerURL)
	require.Equal(t, 30, cfg.TimeoutSec)
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &AppConfig{
		ServerURL:  "https://compliance.example.com",
		TimeoutSec: 10,
		Display:    DisplayConfig{Theme: "default"},
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://compliance.example.com", loaded.ServerURL)
	require.Equal(t, 10, loaded.TimeoutSec)
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("COMPLIANCE_SERVER_URL", "http://10.0.0.5:8000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8000", cfg.ServerURL)
}

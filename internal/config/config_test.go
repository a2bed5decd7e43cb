package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, "phi3:mini", cfg.Ollama.Model)
	assert.Equal(t, "120s", cfg.Ollama.Timeout)
	assert.InDelta(t, 0.1, cfg.Ollama.Temperature, 1e-9)
	assert.True(t, cfg.Advising.SurfaceUnmatched)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	content := `
server:
  port: "9090"
ollama:
  model: "llama3.2:3b"
  temperature: 0.3
advising:
  surface_unmatched: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "llama3.2:3b", cfg.Ollama.Model)
	assert.InDelta(t, 0.3, cfg.Ollama.Temperature, 1e-9)
	assert.False(t, cfg.Advising.SurfaceUnmatched)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("OLLAMA_URL", "http://model-host:11434")
	t.Setenv("OLLAMA_TEMPERATURE", "0.5")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://model-host:11434", cfg.Ollama.URL)
	assert.InDelta(t, 0.5, cfg.Ollama.Temperature, 1e-9)
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret")
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("OLLAMA_TIMEOUT", "not-a-duration")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "advisor"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "catalog"

	assert.Equal(t,
		"postgres://advisor:pw@localhost:5432/catalog?sslmode=disable",
		cfg.GetPostgresConnectionString())
}

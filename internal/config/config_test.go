package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Extraction.Workers)
	assert.Equal(t, 0.15, cfg.Extraction.MarginBand)
	assert.Equal(t, 800, cfg.Extraction.ThumbnailWidth)
	assert.Equal(t, 85, cfg.Extraction.ThumbnailQuality)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
extraction:
  workers: 4
registry:
  sources: ["Platts", "Reuters"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Extraction.Workers)
	assert.Equal(t, []string{"Platts", "Reuters"}, []string(cfg.Sources()))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INSIGHT_PORT", "7001")
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestLoad_InvalidMarginBand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extraction:\n  margin_band: 0.9\n"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindConfig, kind)
}

func TestConfig_RegistryFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	countries := cfg.Countries()
	assert.Contains(t, countries.Members, "Qatar")
	assert.Contains(t, countries.Observers, "Peru")

	sources := cfg.Sources()
	assert.Equal(t, "Rystad Energy", sources[0])
}

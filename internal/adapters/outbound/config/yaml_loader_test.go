package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/adapters/outbound/config"
	"github.com/debloat-dev/debloat/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".debloat.yaml"), []byte(content), 0644))
	return root
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	root := writeConfig(t, `
exclude_paths:
  - vendor
  - generated
core_paths:
  - internal/domain
archive_dir: attic
test_command: make check
verify_timeout_seconds: 120
stale_after_days: 90
analyzer_tools:
  - command: vulture
    args: ["src"]
`)

	cfg, err := config.New().Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "generated"}, cfg.ExcludePaths)
	assert.Equal(t, []string{"internal/domain"}, cfg.CorePaths)
	assert.Equal(t, "attic", cfg.ArchiveDir)
	assert.Equal(t, "make check", cfg.TestCommand)
	assert.Equal(t, 120, cfg.VerifyTimeoutSeconds)
	assert.Equal(t, 90, cfg.StaleAfterDays)
	require.Len(t, cfg.AnalyzerTools, 1)
	assert.Equal(t, "vulture", cfg.AnalyzerTools[0].Command)
	assert.Equal(t, []string{"src"}, cfg.AnalyzerTools[0].Args)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	root := writeConfig(t, "exclude_paths:\n  - vendor\n")

	cfg, err := config.New().Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor"}, cfg.ExcludePaths)
	assert.Equal(t, "archive", cfg.ArchiveDir)
	assert.Equal(t, 300, cfg.VerifyTimeoutSeconds)
	assert.Equal(t, 180, cfg.StaleAfterDays)
}

func TestLoad_MalformedYAML(t *testing.T) {
	root := writeConfig(t, "exclude_paths: [unclosed\n")

	_, err := config.New().Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".debloat.yaml")
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	root := writeConfig(t, "verify_timeout_seconds: -5\n")
	_, err := config.New().Load(root)
	assert.Error(t, err)

	root = writeConfig(t, "analyzer_tools:\n  - args: [\"x\"]\n")
	_, err = config.New().Load(root)
	assert.Error(t, err)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/debloat-dev/debloat/internal/domain"
)

const fileName = ".debloat.yaml"

// YAMLLoader implements application.ConfigLoader by reading .debloat.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .debloat.yaml from root. Returns DefaultConfig when the file
// does not exist.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	// Unset knobs fall back to defaults; explicit values win.
	defaults := domain.DefaultConfig()
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = defaults.ArchiveDir
	}
	if cfg.VerifyTimeoutSeconds == 0 {
		cfg.VerifyTimeoutSeconds = defaults.VerifyTimeoutSeconds
	}
	if cfg.StaleAfterDays == 0 {
		cfg.StaleAfterDays = defaults.StaleAfterDays
	}

	return cfg, nil
}

package domain

import "fmt"

// ProjectConfig holds project-level configuration loaded from .debloat.yaml.
type ProjectConfig struct {
	ExcludePaths []string `yaml:"exclude_paths"   json:"exclude_paths,omitempty"`
	// CorePaths mark directories whose files are always treated as core
	// (risk floor MEDIUM) regardless of other signals.
	CorePaths []string `yaml:"core_paths"      json:"core_paths,omitempty"`
	// ArchiveDir is where the archive action moves files. Relative to root.
	ArchiveDir string `yaml:"archive_dir"     json:"archive_dir,omitempty"`
	// TestCommand overrides test-command detection for the verifier.
	TestCommand string `yaml:"test_command"    json:"test_command,omitempty"`
	// VerifyTimeoutSeconds bounds one verifier run.
	VerifyTimeoutSeconds int `yaml:"verify_timeout_seconds" json:"verify_timeout_seconds,omitempty"`
	// StaleAfterDays is the age at which the staleness collector flags a file.
	StaleAfterDays int `yaml:"stale_after_days" json:"stale_after_days,omitempty"`
	// AnalyzerTools are optional external static-analysis commands for tier 2+
	// scans. A tool missing from PATH degrades confidence, never errors.
	AnalyzerTools []AnalyzerTool `yaml:"analyzer_tools" json:"analyzer_tools,omitempty"`
}

// AnalyzerTool is one optional external analyzer invocation.
type AnalyzerTool struct {
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args"    json:"args,omitempty"`
}

// DefaultConfig returns the configuration used when no .debloat.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		ArchiveDir:           "archive",
		VerifyTimeoutSeconds: 300,
		StaleAfterDays:       180,
	}
}

// Validate catches typos in user-supplied raw input before merging defaults.
func (c ProjectConfig) Validate() error {
	if c.VerifyTimeoutSeconds < 0 {
		return fmt.Errorf("verify_timeout_seconds must be >= 0, got %d", c.VerifyTimeoutSeconds)
	}
	if c.StaleAfterDays < 0 {
		return fmt.Errorf("stale_after_days must be >= 0, got %d", c.StaleAfterDays)
	}
	for _, t := range c.AnalyzerTools {
		if t.Command == "" {
			return fmt.Errorf("analyzer_tools entries need a command")
		}
	}
	return nil
}

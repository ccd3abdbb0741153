package testrunner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ShellRunner implements domain.TestRunner: it detects the project's test
// command from conventional build manifests and runs it through the shell
// with a bounded timeout.
type ShellRunner struct{}

func New() *ShellRunner {
	return &ShellRunner{}
}

// Detect walks the conventional indicators in a fixed order and returns the
// first match, or "" when nothing matches.
func (r *ShellRunner) Detect(root string) string {
	if exists(root, "go.mod") {
		return "go test ./..."
	}
	if cmd := npmTest(root); cmd != "" {
		return cmd
	}
	if cmd := cargoTest(root); cmd != "" {
		return cmd
	}
	if cmd := pytest(root); cmd != "" {
		return cmd
	}
	if makeTarget(root, "test") {
		return "make test"
	}
	return ""
}

// Run executes command under ctx. Timeout and non-zero exit are both
// verification failures.
func (r *ShellRunner) Run(ctx context.Context, root, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = root

	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("test command timed out: %s", command)
		}
		return fmt.Errorf("test command failed: %s: %w\n%s", command, err, tail(string(out), 20))
	}
	return nil
}

func exists(root string, name string) bool {
	_, err := os.Stat(filepath.Join(root, name))
	return err == nil
}

// npmTest requires an actual test script, not the npm default placeholder.
func npmTest(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return ""
	}
	if strings.Contains(string(data), `"test"`) && !strings.Contains(string(data), "no test specified") {
		return "npm test"
	}
	return ""
}

func cargoTest(root string) string {
	if exists(root, "Cargo.toml") {
		return "cargo test"
	}
	return ""
}

// pytest looks for pytest configuration in pyproject.toml or its dedicated
// config files.
func pytest(root string) string {
	if exists(root, "pytest.ini") || exists(root, "setup.py") {
		return "pytest"
	}
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return ""
	}
	var manifest struct {
		Tool map[string]toml.Primitive `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	if _, ok := manifest.Tool["pytest"]; ok {
		return "pytest"
	}
	if _, ok := manifest.Tool["poetry"]; ok {
		return "pytest"
	}
	return ""
}

func makeTarget(root, target string) bool {
	data, err := os.ReadFile(filepath.Join(root, "Makefile"))
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, target+":") {
			return true
		}
	}
	return false
}

func tail(s string, lines int) string {
	parts := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}

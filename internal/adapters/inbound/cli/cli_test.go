package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/adapters/inbound/cli"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanstore"
	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// fixture is a small tree with one obviously unreferenced file.
func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"app.go":      "package main\n\nfunc main() { greet() }\n",
		"greet.go":    "package main\n\nfunc greet() {}\n",
		"forsaken.go": "package main\n\nfunc forsakenThing() {}\n",
	}
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0644))
	}
	return root
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "debloat dev")
}

func TestScan_JSONOutput(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "scan", root, "--json")
	require.NoError(t, err)

	var result application.ScanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Level)
	assert.Equal(t, 3, result.FilesScanned)
	require.NotEmpty(t, result.Findings)
	assert.Equal(t, "forsaken.go", result.Findings[0].Target)
	assert.Equal(t, domain.ActionDelete, result.Findings[0].Action)
}

func TestScan_InvalidLevel(t *testing.T) {
	_, err := run(t, "scan", fixture(t), "--level", "7")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUsage))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, err := run(t, "scan", "--definitely-not-a-flag")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUsage))

	_, err = run(t, "remediate", "--level", "not-a-number")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUsage))
}

func TestScan_InvalidFocus(t *testing.T) {
	_, err := run(t, "scan", fixture(t), "--focus", "everything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUsage))
}

func TestScan_DependenciesFocusAlias(t *testing.T) {
	out, err := run(t, "scan", fixture(t), "--focus", "dependencies", "--json")
	require.NoError(t, err)

	var result application.ScanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.FocusDeps, result.Focus)
}

func TestScan_SavesScanFile(t *testing.T) {
	root := fixture(t)
	outFile := filepath.Join(t.TempDir(), "scan.json")

	_, err := run(t, "scan", root, "--out", outFile)
	require.NoError(t, err)

	findings, err := scanstore.New().Load(outFile)
	require.NoError(t, err)
	require.NotEmpty(t, findings)
	assert.Equal(t, "forsaken.go", findings[0].Target)
}

func TestScan_WritesReport(t *testing.T) {
	root := fixture(t)
	reportFile := filepath.Join(t.TempDir(), "report.md")

	_, err := run(t, "scan", root, "--report", reportFile)
	require.NoError(t, err)

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# debloat scan report")
	assert.Contains(t, string(data), "forsaken.go")
}

func TestRemediate_InvalidPolicy(t *testing.T) {
	_, err := run(t, "remediate", fixture(t), "--auto-approve", "everything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUsage))
}

func TestRemediate_MissingScanFile(t *testing.T) {
	_, err := run(t, "remediate", fixture(t), "--from-scan", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPrecondition))
}

func TestRemediate_NothingToDo(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.go"), []byte("package main\n\nfunc main() {}\n"), 0644))

	out, err := run(t, "remediate", root, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to remediate.")
}

func TestRemediate_DryRunFromScan(t *testing.T) {
	root := fixture(t)
	scanFile := filepath.Join(t.TempDir(), "scan.json")
	require.NoError(t, scanstore.New().Save(scanFile, []domain.Finding{{
		Target: "forsaken.go", Action: domain.ActionDelete,
		Confidence: 95, ReferenceCount: 0, Category: domain.CategoryDeprecated,
		Rationale: "no inbound references found",
	}}))

	out, err := run(t, "remediate", root,
		"--from-scan", scanFile, "--dry-run", "--auto-approve", "low")
	require.NoError(t, err)

	assert.Contains(t, out, "auto-approved under policy low")
	assert.Contains(t, out, "1 applied")
	assert.FileExists(t, filepath.Join(root, "forsaken.go"))
}

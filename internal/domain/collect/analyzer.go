package collect

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

// AnalyzerTool wraps an optional external static-analysis CLI. Availability
// is a PATH lookup; an absent tool composes itself out of the scan and the
// merge lowers confidence for the affected tier instead of failing.
//
// The tool is expected to print one file path per line for files it flags.
// Its signals never propose an action on their own; they only corroborate
// what the built-in collectors found.
type AnalyzerTool struct {
	tool domain.AnalyzerTool
}

func NewAnalyzerTool(tool domain.AnalyzerTool) *AnalyzerTool {
	return &AnalyzerTool{tool: tool}
}

func (a *AnalyzerTool) Name() string { return "tool:" + a.tool.Command }
func (a *AnalyzerTool) Tier() int    { return 2 }

func (a *AnalyzerTool) Available() bool {
	_, err := exec.LookPath(a.tool.Command)
	return err == nil
}

func (a *AnalyzerTool) Collect(t *Tree) ([]Signal, error) {
	cmd := exec.Command(a.tool.Command, a.tool.Args...)
	cmd.Dir = t.Root

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w", a.tool.Command, err)
	}

	known := make(map[string]bool, len(t.Files))
	for _, f := range t.Files {
		known[f.Path] = true
	}

	var signals []Signal
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		// Tolerate "path:line:col: message" style output.
		if idx := strings.IndexByte(line, ':'); idx > 0 {
			line = line[:idx]
		}
		if !known[line] {
			continue
		}
		signals = append(signals, Signal{
			Collector:  a.Name(),
			Target:     line,
			Confidence: 50,
			Evidence:   "flagged by " + a.tool.Command,
		})
	}
	return signals, sc.Err()
}

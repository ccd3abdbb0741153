package collect

import (
	"fmt"
	"go/parser"
	"go/token"
	"path"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const fanOutThreshold = 20

// DepGraph builds the intra-module import graph for Go packages. Packages
// nothing imports are delete candidates; files with extreme fan-out are
// refactor candidates.
type DepGraph struct{}

func NewDepGraph() *DepGraph { return &DepGraph{} }

func (d *DepGraph) Name() string    { return "depgraph" }
func (d *DepGraph) Tier() int       { return 3 }
func (d *DepGraph) Available() bool { return true }

func (d *DepGraph) Collect(t *Tree) ([]Signal, error) {
	module := modulePath(t)
	if module == "" {
		// Not a Go module; nothing to analyze, and that is not an error.
		return nil, nil
	}

	// fanIn counts module-local imports per package directory.
	fanIn := make(map[string]int)
	fanOut := make(map[string]int)
	pkgFiles := make(map[string][]string)

	for _, f := range t.Files {
		if !strings.HasSuffix(f.Path, ".go") || f.Content == "" {
			continue
		}
		dir := path.Dir(f.Path)
		pkgFiles[dir] = append(pkgFiles[dir], f.Path)

		fset := token.NewFileSet()
		parsed, err := parser.ParseFile(fset, f.Path, f.Content, parser.ImportsOnly)
		if err != nil {
			continue
		}
		for _, imp := range parsed.Imports {
			ip := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(ip, module) {
				continue
			}
			rel := strings.TrimPrefix(strings.TrimPrefix(ip, module), "/")
			if rel == "" || rel == dir {
				continue
			}
			fanIn[rel]++
			fanOut[f.Path]++
		}
	}

	var signals []Signal
	for dir, files := range pkgFiles {
		if dir == "." || strings.HasPrefix(dir, "cmd") || fanIn[dir] > 0 {
			continue
		}
		allTests := true
		for _, f := range files {
			if !strings.HasSuffix(f, "_test.go") {
				allTests = false
			}
		}
		if allTests {
			continue
		}
		for _, f := range files {
			if strings.HasSuffix(f, "_test.go") {
				continue
			}
			signals = append(signals, Signal{
				Collector:  d.Name(),
				Target:     f,
				Action:     domain.ActionDelete,
				Confidence: 70,
				Evidence:   fmt.Sprintf("package %s has no inbound imports within %s", dir, module),
				Deps:       true,
			})
		}
	}

	for file, out := range fanOut {
		if out > fanOutThreshold {
			signals = append(signals, Signal{
				Collector:  d.Name(),
				Target:     file,
				Action:     domain.ActionRefactor,
				Confidence: 55,
				Evidence:   fmt.Sprintf("fans out to %d module packages", out),
				Deps:       true,
			})
		}
	}
	return signals, nil
}

func modulePath(t *Tree) string {
	gomod := t.Lookup("go.mod")
	if gomod == nil {
		return ""
	}
	for _, line := range strings.Split(gomod.Content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module "))
		}
	}
	return ""
}

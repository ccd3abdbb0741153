package collect

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const (
	longFunctionLines = 80
	deepNesting       = 5
)

// Complexity measures Go function size and nesting depth. Files where most
// functions are oversized or deeply nested become refactor candidates.
type Complexity struct{}

func NewComplexity() *Complexity { return &Complexity{} }

func (c *Complexity) Name() string    { return "complexity" }
func (c *Complexity) Tier() int       { return 3 }
func (c *Complexity) Available() bool { return true }

func (c *Complexity) Collect(t *Tree) ([]Signal, error) {
	var signals []Signal
	for _, f := range t.Files {
		if !strings.HasSuffix(f.Path, ".go") || strings.HasSuffix(f.Path, "_test.go") || f.Content == "" {
			continue
		}

		fset := token.NewFileSet()
		parsed, err := parser.ParseFile(fset, f.Path, f.Content, 0)
		if err != nil {
			continue
		}

		long, deep, total := 0, 0, 0
		for _, decl := range parsed.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			total++
			lines := fset.Position(fn.Body.End()).Line - fset.Position(fn.Pos()).Line + 1
			if lines > longFunctionLines {
				long++
			}
			if maxNesting(fn.Body, 0) > deepNesting {
				deep++
			}
		}

		if total == 0 || (long == 0 && deep == 0) {
			continue
		}
		if long*2 >= total || deep > 0 {
			signals = append(signals, Signal{
				Collector:  c.Name(),
				Target:     f.Path,
				Action:     domain.ActionRefactor,
				Confidence: 60,
				Evidence:   fmt.Sprintf("%d/%d functions over %d lines, %d nested deeper than %d", long, total, longFunctionLines, deep, deepNesting),
			})
		}
	}
	return signals, nil
}

func maxNesting(n ast.Node, depth int) int {
	deepest := depth
	ast.Inspect(n, func(child ast.Node) bool {
		if child == nil || child == n {
			return true
		}
		switch child.(type) {
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			if d := maxNesting(child, depth+1); d > deepest {
				deepest = d
			}
			return false
		}
		return true
	})
	return deepest
}

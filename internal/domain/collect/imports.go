package collect

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const importBloatThreshold = 15

// Imports flags Go files whose import lists have grown past the point where
// a file plausibly has one responsibility. Non-Go files are skipped; parse
// errors on single files are skipped too, never fatal.
type Imports struct{}

func NewImports() *Imports { return &Imports{} }

func (im *Imports) Name() string    { return "imports" }
func (im *Imports) Tier() int       { return 2 }
func (im *Imports) Available() bool { return true }

func (im *Imports) Collect(t *Tree) ([]Signal, error) {
	var signals []Signal
	for _, f := range t.Files {
		if !strings.HasSuffix(f.Path, ".go") || strings.HasSuffix(f.Path, "_test.go") || f.Content == "" {
			continue
		}

		fset := token.NewFileSet()
		parsed, err := parser.ParseFile(fset, f.Path, f.Content, parser.ImportsOnly)
		if err != nil {
			continue
		}

		if n := len(parsed.Imports); n > importBloatThreshold {
			signals = append(signals, Signal{
				Collector:  im.Name(),
				Target:     f.Path,
				Action:     domain.ActionRefactor,
				Confidence: 55,
				Evidence:   fmt.Sprintf("imports %d packages (threshold %d)", n, importBloatThreshold),
				Deps:       true,
			})
		}
	}
	return signals, nil
}

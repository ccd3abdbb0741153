package collect

import "github.com/debloat-dev/debloat/internal/domain"

// Signal is one collector's raw verdict about one target. An empty Action
// means the signal only corroborates other collectors (agreement boost)
// without proposing an action of its own.
type Signal struct {
	Collector  string
	Target     string
	Action     domain.Action
	Confidence int
	Evidence   string
	// RelatedFile carries collector-specific context, e.g. the duplicate
	// counterpart a consolidation should merge into.
	RelatedFile string
	// Deps marks signals about dependency shape (import bloat, fan-out),
	// used by the deps focus filter.
	Deps bool
	// Degraded marks a signal produced with reduced evidence, e.g. because
	// an optional external tool was unavailable.
	Degraded bool
}

// Collector is an independent, read-only analyzer over a scanned tree.
// Collectors report their own availability before a scan runs; the scanner
// composes only available ones and lowers confidence for the rest.
type Collector interface {
	Name() string
	Tier() int
	Available() bool
	Collect(t *Tree) ([]Signal, error)
}

// ForTier assembles the collector set for a scan level. Level 1 is heuristic
// and dependency-free, 2 adds similarity and import analysis plus optional
// external tools, 3 adds complexity and dependency-graph analysis.
func ForTier(level int, tools []domain.AnalyzerTool) []Collector {
	cs := []Collector{
		NewStaleness(),
		NewSize(),
		NewReferences(),
	}
	if level >= 2 {
		cs = append(cs, NewDuplication(), NewImports())
		for _, t := range tools {
			cs = append(cs, NewAnalyzerTool(t))
		}
	}
	if level >= 3 {
		cs = append(cs, NewComplexity(), NewDepGraph())
	}
	return cs
}

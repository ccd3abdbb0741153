package collect

import (
	"path"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

// References counts inbound references with a plain text search: any mention
// of a file's stem in another file counts. Deliberately cheap — it is the
// tier-1 zero-reference heuristic, and precision comes from requiring other
// collectors to agree before confidence rises.
type References struct{}

func NewReferences() *References { return &References{} }

func (r *References) Name() string    { return "references" }
func (r *References) Tier() int       { return 1 }
func (r *References) Available() bool { return true }

func (r *References) Collect(t *Tree) ([]Signal, error) {
	counts := CountAll(t)

	var signals []Signal
	for _, f := range t.Files {
		if f.Binary {
			continue
		}
		if stem(f.Path) == "" || isEntrypoint(f.Path) {
			continue
		}
		if counts[f.Path] == 0 {
			signals = append(signals, Signal{
				Collector:  r.Name(),
				Target:     f.Path,
				Action:     domain.ActionDelete,
				Confidence: 85,
				Evidence:   "no inbound references found",
			})
		}
	}
	return signals, nil
}

// CountAll returns inbound reference counts for every file in the tree.
func CountAll(t *Tree) map[string]int {
	counts := make(map[string]int, len(t.Files))
	for _, f := range t.Files {
		counts[f.Path] = 0
	}

	for _, target := range t.Files {
		s := stem(target.Path)
		if s == "" {
			continue
		}
		for _, other := range t.Files {
			if other.Path == target.Path || other.Binary || other.Content == "" {
				continue
			}
			counts[target.Path] += strings.Count(other.Content, s)
		}
	}
	return counts
}

// Referrers lists the files that mention the target's stem. The executor
// uses this as the dependent set when rewriting reference sites.
func Referrers(t *Tree, targetPath string) []string {
	s := stem(targetPath)
	if s == "" {
		return nil
	}
	var refs []string
	for _, f := range t.Files {
		if f.Path == targetPath || f.Binary || f.Content == "" {
			continue
		}
		if strings.Contains(f.Content, s) {
			refs = append(refs, f.Path)
		}
	}
	return refs
}

// stem is the searchable identity of a file: base name without extension.
// Too-generic stems (index, main, utils) are excluded from zero-reference
// reasoning because the text search would be meaningless for them.
func stem(p string) string {
	base := path.Base(p)
	s := strings.TrimSuffix(base, path.Ext(base))
	switch strings.ToLower(s) {
	case "", "index", "main", "init", "utils", "util", "readme":
		return ""
	}
	if len(s) < 4 {
		return ""
	}
	return s
}

func isEntrypoint(p string) bool {
	base := path.Base(p)
	return base == "main.go" || base == "go.mod" || base == "go.sum" ||
		base == "package.json" || base == "Makefile"
}

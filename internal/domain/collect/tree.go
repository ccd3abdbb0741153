package collect

import (
	"path"
	"strings"
	"time"

	"github.com/debloat-dev/debloat/internal/domain"
)

// File is a read-only snapshot of one file taken at scan time. Collectors
// operate on snapshots only, so a scan never touches the tree twice and two
// scans of an unchanged tree see identical input.
type File struct {
	Path    string // slash-separated, relative to root
	Abs     string
	Size    int64
	Lines   int
	ModTime time.Time
	Binary  bool
	Content string // empty for binary or oversized files
}

// Tree is the scanned file set plus the knobs collectors need.
type Tree struct {
	Root       string
	Files      []File // sorted by Path
	Now        time.Time
	StaleAfter time.Duration
	CorePaths  []string
	ArchiveDir string
}

// Lookup returns the snapshot for a relative path, or nil.
func (t *Tree) Lookup(rel string) *File {
	for i := range t.Files {
		if t.Files[i].Path == rel {
			return &t.Files[i]
		}
	}
	return nil
}

var deprecatedMarkers = []string{"deprecated", "legacy", "_old", ".old", ".bak", "obsolete"}

// Categorize tags a file and reports whether it counts as core. Core status
// comes from the configured core paths; everything under them gets the
// MEDIUM risk floor.
func Categorize(f File, corePaths []string) (domain.Category, bool) {
	p := strings.ToLower(f.Path)

	for _, core := range corePaths {
		core = strings.Trim(core, "/")
		if core != "" && (p == strings.ToLower(core) || strings.HasPrefix(p, strings.ToLower(core)+"/")) {
			return domain.CategoryCore, true
		}
	}

	for _, m := range deprecatedMarkers {
		if strings.Contains(p, m) {
			return domain.CategoryDeprecated, false
		}
	}

	switch {
	case strings.HasSuffix(p, "_test.go"),
		strings.HasPrefix(p, "tests/"), strings.Contains(p, "/tests/"),
		strings.HasPrefix(p, "test/"), strings.Contains(p, "/test/"):
		return domain.CategoryTest, false
	case strings.HasPrefix(p, "archive/"), strings.Contains(p, "/archive/"):
		return domain.CategoryArchive, false
	case strings.HasSuffix(p, ".md"), strings.HasSuffix(p, ".rst"), strings.HasSuffix(p, ".txt"),
		strings.HasPrefix(p, "docs/"), strings.Contains(p, "/docs/"):
		return domain.CategoryDocs, false
	case isInfraFile(p):
		return domain.CategoryInfra, false
	default:
		return domain.CategoryCode, false
	}
}

func isInfraFile(p string) bool {
	base := path.Base(p)
	switch base {
	case "makefile", "dockerfile", "jenkinsfile", ".gitlab-ci.yml", ".travis.yml":
		return true
	}
	if strings.HasPrefix(p, ".github/") || strings.HasPrefix(p, ".circleci/") {
		return true
	}
	switch path.Ext(base) {
	case ".tf", ".toml", ".ini":
		return true
	}
	return strings.HasPrefix(p, "scripts/") || strings.HasPrefix(p, "ci/")
}

// MatchesFocus reports whether a finding of the given category and collector
// class belongs to the requested focus filter.
func MatchesFocus(focus domain.Focus, category domain.Category, depsFinding bool) bool {
	switch focus {
	case domain.FocusDocs:
		return category == domain.CategoryDocs
	case domain.FocusDeps:
		return depsFinding
	case domain.FocusCode:
		return category != domain.CategoryDocs && !depsFinding
	default:
		return true
	}
}

package collect_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/debloat-dev/debloat/internal/domain"
	"github.com/debloat-dev/debloat/internal/domain/collect"
)

func mkFile(path, content string, mod time.Time) collect.File {
	return collect.File{
		Path:    path,
		Size:    int64(len(content)),
		Lines:   len(strings.Split(content, "\n")),
		ModTime: mod,
		Content: content,
	}
}

func mkTree(files ...collect.File) *collect.Tree {
	return &collect.Tree{
		Root:       "/tmp/project",
		Files:      files,
		Now:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ArchiveDir: "archive",
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		path     string
		want     domain.Category
		wantCore bool
	}{
		{"internal/service/legacy_auth.go", domain.CategoryDeprecated, false},
		{"old/helper.bak", domain.CategoryDeprecated, false},
		{"internal/service/auth_test.go", domain.CategoryTest, false},
		{"tests/fixtures.py", domain.CategoryTest, false},
		{"archive/notes.go", domain.CategoryArchive, false},
		{"README.md", domain.CategoryDocs, false},
		{"docs/guide.rst", domain.CategoryDocs, false},
		{"Makefile", domain.CategoryInfra, false},
		{".github/workflows/ci.yml", domain.CategoryInfra, false},
		{"internal/service/auth.go", domain.CategoryCode, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			cat, core := collect.Categorize(collect.File{Path: tt.path}, nil)
			assert.Equal(t, tt.want, cat)
			assert.Equal(t, tt.wantCore, core)
		})
	}
}

func TestCategorize_CorePathsWin(t *testing.T) {
	cat, core := collect.Categorize(collect.File{Path: "internal/domain/model.go"}, []string{"internal/domain"})
	assert.Equal(t, domain.CategoryCore, cat)
	assert.True(t, core)

	// markers lose to core paths
	cat, core = collect.Categorize(collect.File{Path: "internal/domain/legacy.go"}, []string{"internal/domain/"})
	assert.Equal(t, domain.CategoryCore, cat)
	assert.True(t, core)

	cat, core = collect.Categorize(collect.File{Path: "internal/domains/model.go"}, []string{"internal/domain"})
	assert.NotEqual(t, domain.CategoryCore, cat)
	assert.False(t, core)
}

func TestMatchesFocus(t *testing.T) {
	assert.True(t, collect.MatchesFocus(domain.FocusAll, domain.CategoryDocs, false))
	assert.True(t, collect.MatchesFocus(domain.FocusDocs, domain.CategoryDocs, false))
	assert.False(t, collect.MatchesFocus(domain.FocusDocs, domain.CategoryCode, false))
	assert.True(t, collect.MatchesFocus(domain.FocusDeps, domain.CategoryCode, true))
	assert.False(t, collect.MatchesFocus(domain.FocusDeps, domain.CategoryCode, false))
	assert.True(t, collect.MatchesFocus(domain.FocusCode, domain.CategoryCode, false))
	assert.False(t, collect.MatchesFocus(domain.FocusCode, domain.CategoryDocs, false))
	assert.False(t, collect.MatchesFocus(domain.FocusCode, domain.CategoryCode, true))
}

func TestTreeLookup(t *testing.T) {
	tr := mkTree(mkFile("a.go", "package a", time.Now()))
	assert.NotNil(t, tr.Lookup("a.go"))
	assert.Nil(t, tr.Lookup("missing.go"))
}

package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanner"
)

func layout(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, content, 0644))
	}
	return root
}

func paths(t *testing.T, root string, excludes []string) []string {
	t.Helper()
	tree, err := scanner.New().Scan(root, excludes)
	require.NoError(t, err)
	var out []string
	for _, f := range tree.Files {
		out = append(out, f.Path)
	}
	return out
}

func TestScan_WalksAndSorts(t *testing.T) {
	root := layout(t, map[string][]byte{
		"zeta.go":          []byte("package p\n"),
		"alpha.go":         []byte("package p\n"),
		"sub/nested.go":    []byte("package sub\n"),
		"docs/guide.md":    []byte("# guide\n"),
		"vendor/dep.go":    []byte("package dep\n"),
		".git/config":      []byte("[core]\n"),
		"node_modules/x.js": []byte("x\n"),
	})

	got := paths(t, root, nil)
	assert.Equal(t, []string{"alpha.go", "docs/guide.md", "sub/nested.go", "zeta.go"}, got)
}

func TestScan_Excludes(t *testing.T) {
	root := layout(t, map[string][]byte{
		"keep.go":          []byte("package p\n"),
		"generated/gen.go": []byte("package gen\n"),
		"secret.env":       []byte("KEY=1\n"),
	})

	got := paths(t, root, []string{"generated/", "secret.env"})
	assert.Equal(t, []string{"keep.go"}, got)
}

func TestScan_GlobExcludes(t *testing.T) {
	root := layout(t, map[string][]byte{
		"keep.go":           []byte("package p\n"),
		"helper.bak":        []byte("old\n"),
		"sub/notes.bak":     []byte("old\n"),
		"docs/guide.md":     []byte("# guide\n"),
		"docs/old/notes.md": []byte("notes\n"),
	})

	got := paths(t, root, []string{"*.bak", "docs/*"})
	assert.Equal(t, []string{"keep.go"}, got)
}

func TestScan_BinaryDetection(t *testing.T) {
	root := layout(t, map[string][]byte{
		"text.go": []byte("package p\nfunc f() {}\n"),
		"blob.db": {0x00, 0x01, 0x02, 0xFF},
	})

	tree, err := scanner.New().Scan(root, nil)
	require.NoError(t, err)

	blob := tree.Lookup("blob.db")
	require.NotNil(t, blob)
	assert.True(t, blob.Binary)
	assert.Empty(t, blob.Content)

	text := tree.Lookup("text.go")
	require.NotNil(t, text)
	assert.False(t, text.Binary)
	assert.Equal(t, 2, text.Lines)
	assert.NotEmpty(t, text.Content)
}

func TestScan_LineCounting(t *testing.T) {
	root := layout(t, map[string][]byte{
		"no_newline.txt": []byte("one\ntwo"),
		"trailing.txt":   []byte("one\ntwo\n"),
		"empty.txt":      {},
	})

	tree, err := scanner.New().Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Lookup("no_newline.txt").Lines)
	assert.Equal(t, 2, tree.Lookup("trailing.txt").Lines)
	assert.Zero(t, tree.Lookup("empty.txt").Lines)
}

func TestScan_RootIsAbsolute(t *testing.T) {
	root := layout(t, map[string][]byte{"a.go": []byte("package p\n")})
	tree, err := scanner.New().Scan(root, nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(tree.Root))
}

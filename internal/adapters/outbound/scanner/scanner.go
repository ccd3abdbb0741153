package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain/collect"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	".idea":        true,
}

const maxContentSize = 512 * 1024 // content cap per file; larger files keep metadata only

// TreeScanner walks a project directory into a collect.Tree snapshot.
// Read-only: the scan phase never mutates the tree it measures.
type TreeScanner struct{}

func New() *TreeScanner {
	return &TreeScanner{}
}

func (s *TreeScanner) Scan(root string, excludes []string) (*collect.Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	patterns := make([]string, 0, len(excludes))
	for _, p := range excludes {
		patterns = append(patterns, strings.TrimSuffix(p, "/"))
	}

	tree := &collect.Tree{Root: absRoot}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if skipDirs[d.Name()] || excluded(patterns, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(patterns, rel, d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		file := collect.File{
			Path:    rel,
			Abs:     path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		if info.Size() <= maxContentSize {
			data, readErr := os.ReadFile(path)
			if readErr == nil {
				if bytes.IndexByte(data, 0) >= 0 {
					file.Binary = true
				} else {
					file.Content = string(data)
					file.Lines = countLines(data)
				}
			}
		}

		tree.Files = append(tree.Files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stable order regardless of filesystem iteration quirks.
	sort.Slice(tree.Files, func(i, j int) bool {
		return tree.Files[i].Path < tree.Files[j].Path
	})

	return tree, nil
}

// excluded matches a pattern against the relative path and the base name,
// as a literal or as a glob, so both "generated/" and "*.bak" work.
func excluded(patterns []string, rel, base string) bool {
	for _, p := range patterns {
		if p == rel || p == base {
			return true
		}
		if ok, err := filepath.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

package collect

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const (
	shingleSize      = 4
	similarityFloor  = 0.75
	maxComparedLines = 4000
)

// Duplication finds near-duplicate file pairs by Jaccard similarity over
// normalized line shingles. The smaller file of a similar pair becomes a
// consolidation candidate pointing at the larger one.
type Duplication struct{}

func NewDuplication() *Duplication { return &Duplication{} }

func (d *Duplication) Name() string    { return "duplication" }
func (d *Duplication) Tier() int       { return 2 }
func (d *Duplication) Available() bool { return true }

func (d *Duplication) Collect(t *Tree) ([]Signal, error) {
	type entry struct {
		file     *File
		shingles map[uint64]struct{}
	}

	var entries []entry
	for i := range t.Files {
		f := &t.Files[i]
		if f.Binary || f.Content == "" || f.Lines > maxComparedLines {
			continue
		}
		sh := shingles(f.Content)
		if len(sh) < shingleSize {
			continue
		}
		entries = append(entries, entry{file: f, shingles: sh})
	}

	var signals []Signal
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			sim := jaccard(entries[i].shingles, entries[j].shingles)
			if sim < similarityFloor {
				continue
			}

			// The smaller file merges into the larger one.
			src, dst := entries[i].file, entries[j].file
			if src.Lines > dst.Lines {
				src, dst = dst, src
			}

			conf := int(sim * 100)
			if conf > 95 {
				conf = 95
			}
			signals = append(signals, Signal{
				Collector:   d.Name(),
				Target:      src.Path,
				Action:      domain.ActionConsolidate,
				Confidence:  conf,
				Evidence:    fmt.Sprintf("%.0f%% similar to %s", sim*100, dst.Path),
				RelatedFile: dst.Path,
			})
		}
	}
	return signals, nil
}

// shingles hashes overlapping runs of normalized lines.
func shingles(content string) map[uint64]struct{} {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	out := make(map[uint64]struct{})
	for i := 0; i+shingleSize <= len(lines); i++ {
		h := fnv.New64a()
		for _, l := range lines[i : i+shingleSize] {
			h.Write([]byte(l))
			h.Write([]byte{0})
		}
		out[h.Sum64()] = struct{}{}
	}
	return out
}

func jaccard(a, b map[uint64]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for k := range small {
		if _, ok := large[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

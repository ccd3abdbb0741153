package collect

import (
	"fmt"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const (
	oversizedLines   = 500
	deadCommentBlock = 25 // consecutive comment lines treated as dead weight
)

// Size flags oversized files as refactor candidates and files dominated by
// comment blocks (usually commented-out code) as delete candidates.
type Size struct{}

func NewSize() *Size { return &Size{} }

func (s *Size) Name() string    { return "size" }
func (s *Size) Tier() int       { return 1 }
func (s *Size) Available() bool { return true }

func (s *Size) Collect(t *Tree) ([]Signal, error) {
	var signals []Signal
	for _, f := range t.Files {
		if f.Binary || f.Content == "" {
			continue
		}

		commented, longest := commentStats(f.Content)

		switch {
		case f.Lines > 0 && commented*2 > f.Lines && longest >= deadCommentBlock:
			signals = append(signals, Signal{
				Collector:  s.Name(),
				Target:     f.Path,
				Action:     domain.ActionDelete,
				Confidence: 65,
				Evidence:   fmt.Sprintf("%d of %d lines are comments (longest block %d lines)", commented, f.Lines, longest),
			})
		case f.Lines > oversizedLines:
			signals = append(signals, Signal{
				Collector:  s.Name(),
				Target:     f.Path,
				Action:     domain.ActionRefactor,
				Confidence: 60,
				Evidence:   fmt.Sprintf("%d lines, over the %d-line split threshold", f.Lines, oversizedLines),
			})
		}
	}
	return signals, nil
}

// commentStats counts comment lines and the longest consecutive comment run.
func commentStats(content string) (total, longest int) {
	run := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "*") {
			total++
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return total, longest
}

package collect

import (
	"fmt"
	"time"

	"github.com/debloat-dev/debloat/internal/domain"
)

// Staleness flags files whose last modification is older than the configured
// horizon. Old files are archive candidates; very old ones score higher.
type Staleness struct{}

func NewStaleness() *Staleness { return &Staleness{} }

func (s *Staleness) Name() string    { return "staleness" }
func (s *Staleness) Tier() int       { return 1 }
func (s *Staleness) Available() bool { return true }

func (s *Staleness) Collect(t *Tree) ([]Signal, error) {
	if t.StaleAfter <= 0 {
		return nil, nil
	}

	var signals []Signal
	for _, f := range t.Files {
		age := t.Now.Sub(f.ModTime)
		if age < t.StaleAfter {
			continue
		}

		conf := 60
		if age >= 2*t.StaleAfter {
			conf = 70
		}
		signals = append(signals, Signal{
			Collector:  s.Name(),
			Target:     f.Path,
			Action:     domain.ActionArchive,
			Confidence: conf,
			Evidence:   fmt.Sprintf("untouched for %d days", int(age/(24*time.Hour))),
		})
	}
	return signals, nil
}

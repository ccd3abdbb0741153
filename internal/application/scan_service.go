package application

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/debloat-dev/debloat/internal/domain"
	"github.com/debloat-dev/debloat/internal/domain/collect"
)

// TreeScanner walks a project directory into a read-only snapshot.
type TreeScanner interface {
	Scan(root string, excludes []string) (*collect.Tree, error)
}

// ConfigLoader reads project-level configuration.
type ConfigLoader interface {
	Load(root string) (domain.ProjectConfig, error)
}

// ScanOptions are the per-run scan inputs.
type ScanOptions struct {
	Level    int          `json:"level"`
	Focus    domain.Focus `json:"focus"`
	Excludes []string     `json:"excludes,omitempty"`
}

// ScanResult is the scan output: classified, prioritized findings plus
// run metadata for the report.
type ScanResult struct {
	Root         string           `json:"root"`
	Level        int              `json:"level"`
	Focus        domain.Focus     `json:"focus"`
	Timestamp    time.Time        `json:"timestamp"`
	FilesScanned int              `json:"files_scanned"`
	Findings     []domain.Finding `json:"findings"`
	Warnings     []string         `json:"warnings,omitempty"`
}

// ScanService composes the collectors for a tier, runs them concurrently,
// and merges signals into a classified, prioritized finding list.
type ScanService struct {
	scanner TreeScanner
	config  ConfigLoader
}

func NewScanService(scanner TreeScanner, config ConfigLoader) *ScanService {
	return &ScanService{scanner: scanner, config: config}
}

func (s *ScanService) Scan(root string, opts ScanOptions) (*ScanResult, error) {
	if opts.Level < 1 || opts.Level > 3 {
		return nil, fmt.Errorf("%w: scan level must be 1, 2, or 3", domain.ErrUsage)
	}
	if opts.Focus == "" {
		opts.Focus = domain.FocusAll
	}

	cfg, err := s.config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	excludes := append(append([]string(nil), cfg.ExcludePaths...), opts.Excludes...)
	tree, err := s.scanner.Scan(root, excludes)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	tree.Now = time.Now()
	tree.StaleAfter = time.Duration(cfg.StaleAfterDays) * 24 * time.Hour
	tree.CorePaths = cfg.CorePaths
	tree.ArchiveDir = cfg.ArchiveDir

	result := &ScanResult{
		Root:         tree.Root,
		Level:        opts.Level,
		Focus:        opts.Focus,
		Timestamp:    tree.Now,
		FilesScanned: len(tree.Files),
	}

	// Compose only collectors that report themselves available; every
	// composed-out collector degrades merged confidence instead of failing.
	var available []collect.Collector
	degraded := 0
	for _, c := range collect.ForTier(opts.Level, cfg.AnalyzerTools) {
		if !c.Available() {
			degraded++
			result.Warnings = append(result.Warnings, fmt.Sprintf("collector %s unavailable, confidence lowered", c.Name()))
			continue
		}
		available = append(available, c)
	}

	signals, failures := runCollectors(available, tree)
	for _, f := range failures {
		degraded++
		result.Warnings = append(result.Warnings, f)
	}

	findings := collect.Merge(tree, signals, degraded, opts.Focus)
	domain.Reclassify(findings)
	result.Findings = domain.Prioritize(findings)
	return result, nil
}

// runCollectors fans collectors out over a worker pool bounded by the CPU
// count. Signal order is irrelevant here; Merge sorts by target before
// findings are assembled, so completion order never leaks into output.
func runCollectors(collectors []collect.Collector, tree *collect.Tree) ([]collect.Signal, []string) {
	workers := runtime.NumCPU()
	if workers > len(collectors) {
		workers = len(collectors)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan collect.Collector)
	var mu sync.Mutex
	var signals []collect.Signal
	var failures []string

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				got, err := c.Collect(tree)
				mu.Lock()
				if err != nil {
					// A single collector failing lowers confidence, never
					// aborts the scan.
					failures = append(failures, fmt.Sprintf("collector %s failed: %v", c.Name(), err))
				} else {
					signals = append(signals, got...)
				}
				mu.Unlock()
			}
		}()
	}

	for _, c := range collectors {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	// Failures surface as warnings; keep their order stable across runs.
	sort.Strings(failures)
	return signals, failures
}

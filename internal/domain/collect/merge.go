package collect

import (
	"path"
	"sort"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

const (
	agreementBonus  = 5
	degradedPenalty = 5
	confidenceFloor = 10
)

// Merge assembles raw signals into findings. Deterministic: findings come
// out sorted by target path regardless of collector completion order, so an
// unchanged tree always scans to the identical ordered set.
//
// degraded is the number of collectors that were composed out (unavailable
// tool) or failed; each lowers every finding's confidence a notch.
func Merge(t *Tree, signals []Signal, degraded int, focus domain.Focus) []domain.Finding {
	counts := CountAll(t)

	byTarget := make(map[string][]Signal)
	for _, s := range signals {
		byTarget[s.Target] = append(byTarget[s.Target], s)
	}
	// Collectors finish in arbitrary order; fix each group's order before
	// anything derives from it, or rationales would differ between runs.
	for _, group := range byTarget {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Collector != group[j].Collector {
				return group[i].Collector < group[j].Collector
			}
			return group[i].Evidence < group[j].Evidence
		})
	}

	targets := make([]string, 0, len(byTarget))
	for target := range byTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	var findings []domain.Finding
	for _, target := range targets {
		f := t.Lookup(target)
		if f == nil {
			continue
		}

		group := byTarget[target]
		action, actionSignals := dominantAction(group)
		if action == "" {
			// Only corroborating signals; nothing proposes an action.
			continue
		}

		category, isCore := Categorize(*f, t.CorePaths)
		depsFinding := false
		for _, s := range actionSignals {
			if s.Deps {
				depsFinding = true
			}
		}
		if !MatchesFocus(focus, category, depsFinding) {
			continue
		}

		finding := domain.Finding{
			Target:         target,
			Action:         action,
			Confidence:     mergedConfidence(group, actionSignals, degraded),
			ReferenceCount: counts[target],
			Category:       category,
			IsCore:         isCore,
			TokenEstimate:  EstimateTokens(f.Content),
			LineEstimate:   f.Lines,
			Rationale:      rationale(actionSignals, group),
			Plan:           buildPlan(t, f, action, actionSignals),
		}
		findings = append(findings, finding)
	}
	return findings
}

// dominantAction picks the action with the highest summed confidence;
// ties go to the smaller blast radius.
func dominantAction(group []Signal) (domain.Action, []Signal) {
	sums := make(map[domain.Action]int)
	for _, s := range group {
		if s.Action != "" {
			sums[s.Action] += s.Confidence
		}
	}

	var best domain.Action
	bestSum := -1
	for action, sum := range sums {
		if sum > bestSum || (sum == bestSum && domain.ActionRank(action) < domain.ActionRank(best)) {
			best, bestSum = action, sum
		}
	}

	var matching []Signal
	for _, s := range group {
		if s.Action == best {
			matching = append(matching, s)
		}
	}
	return best, matching
}

// mergedConfidence starts from the strongest signal for the chosen action,
// adds an agreement bonus per extra independent collector, and subtracts a
// penalty per degraded or missing collector.
func mergedConfidence(group, actionSignals []Signal, degraded int) int {
	conf := 0
	for _, s := range actionSignals {
		c := s.Confidence
		if s.Degraded {
			c -= degradedPenalty
		}
		if c > conf {
			conf = c
		}
	}

	collectors := make(map[string]bool)
	for _, s := range group {
		collectors[s.Collector] = true
	}
	conf += agreementBonus * (len(collectors) - 1)
	conf -= degradedPenalty * degraded

	if conf > 100 {
		conf = 100
	}
	if conf < confidenceFloor {
		conf = confidenceFloor
	}
	return conf
}

func rationale(actionSignals, group []Signal) string {
	var parts []string
	seen := make(map[string]bool)
	for _, s := range actionSignals {
		if s.Evidence != "" && !seen[s.Evidence] {
			parts = append(parts, s.Evidence)
			seen[s.Evidence] = true
		}
	}
	for _, s := range group {
		if s.Action == "" && s.Evidence != "" && !seen[s.Evidence] {
			parts = append(parts, s.Evidence)
			seen[s.Evidence] = true
		}
	}
	return strings.Join(parts, "; ")
}

func buildPlan(t *Tree, f *File, action domain.Action, actionSignals []Signal) *domain.ActionPlan {
	switch action {
	case domain.ActionDelete:
		return nil

	case domain.ActionArchive:
		dir := t.ArchiveDir
		if dir == "" {
			dir = "archive"
		}
		return &domain.ActionPlan{Archive: &domain.ArchivePlan{
			DestPath:   path.Join(dir, path.Base(f.Path)),
			Note:       "Deprecated: archived from " + f.Path + "; kept for reference only.",
			Dependents: Referrers(t, f.Path),
		}}

	case domain.ActionConsolidate:
		target := ""
		for _, s := range actionSignals {
			if s.RelatedFile != "" {
				target = s.RelatedFile
				break
			}
		}
		if target == "" {
			return nil
		}
		return &domain.ActionPlan{Consolidate: &domain.ConsolidatePlan{
			TargetFile: target,
			Dependents: Referrers(t, f.Path),
		}}

	case domain.ActionRefactor:
		// One extraction: the second half of the file moves to a sibling.
		ext := path.Ext(f.Path)
		base := strings.TrimSuffix(path.Base(f.Path), ext)
		dest := path.Join(path.Dir(f.Path), base+"_split"+ext)
		mid := f.Lines / 2
		return &domain.ActionPlan{Refactor: &domain.RefactorPlan{
			Extractions: []domain.Extraction{{TargetFile: dest, StartLine: mid + 1, EndLine: f.Lines}},
			Dependents:  Referrers(t, f.Path),
		}}
	}
	return nil
}

package application

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

// Journal records every file a remediation touches, with the bytes it held
// before, so Rollback restores the working tree byte-identically to the
// state right before Execute.
type Journal struct {
	root   string
	dryRun bool
	seen   map[string]bool
	prior  []fileState
	// Ops is the human-readable ledger of what happened (or, under dry-run,
	// what would have happened).
	Ops []string
}

type fileState struct {
	rel     string
	existed bool
	content []byte
	mode    fs.FileMode
}

func newJournal(root string, dryRun bool) *Journal {
	return &Journal{root: root, dryRun: dryRun, seen: make(map[string]bool)}
}

// snapshot captures a file's current state exactly once.
func (j *Journal) snapshot(rel string) error {
	if j.dryRun || j.seen[rel] {
		return nil
	}
	j.seen[rel] = true

	abs := filepath.Join(j.root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		j.prior = append(j.prior, fileState{rel: rel})
		return nil
	}
	if err != nil {
		return err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	j.prior = append(j.prior, fileState{rel: rel, existed: true, content: data, mode: info.Mode()})
	return nil
}

// Rollback undoes every journaled change in reverse order.
func (j *Journal) Rollback() error {
	for i := len(j.prior) - 1; i >= 0; i-- {
		st := j.prior[i]
		abs := filepath.Join(j.root, filepath.FromSlash(st.rel))
		if !st.existed {
			if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("rollback of %s: %w", st.rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return fmt.Errorf("rollback of %s: %w", st.rel, err)
		}
		if err := os.WriteFile(abs, st.content, st.mode); err != nil {
			return fmt.Errorf("rollback of %s: %w", st.rel, err)
		}
	}
	return nil
}

func (j *Journal) record(format string, args ...any) {
	j.Ops = append(j.Ops, fmt.Sprintf(format, args...))
}

// Executor applies one approved finding, dispatched exhaustively on its
// action. Any failure rolls the journal back before returning, so a failed
// finding never leaves partial changes behind.
type Executor struct {
	vcs domain.VersionControl
}

func NewExecutor(vcs domain.VersionControl) *Executor {
	return &Executor{vcs: vcs}
}

func (e *Executor) Execute(root string, f domain.Finding, dryRun bool) (*Journal, error) {
	j := newJournal(root, dryRun)

	var err error
	switch f.Action {
	case domain.ActionDelete:
		err = e.doDelete(j, f)
	case domain.ActionRefactor:
		err = e.doRefactor(j, f)
	case domain.ActionConsolidate:
		err = e.doConsolidate(j, f)
	case domain.ActionArchive:
		err = e.doArchive(j, f)
	default:
		err = fmt.Errorf("unknown action %q", f.Action)
	}

	if err != nil {
		if rbErr := j.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("%s failed (%v) and rollback failed: %w", f.Action, err, rbErr)
		}
		return nil, fmt.Errorf("%s %s: %w", f.Action, f.Target, err)
	}
	return j, nil
}

func (e *Executor) doDelete(j *Journal, f domain.Finding) error {
	if err := j.snapshot(f.Target); err != nil {
		return err
	}
	j.record("delete %s", f.Target)
	if j.dryRun {
		return nil
	}
	return e.removeFile(j.root, f.Target)
}

func (e *Executor) doRefactor(j *Journal, f domain.Finding) error {
	if f.Plan == nil || f.Plan.Refactor == nil {
		return fmt.Errorf("refactor finding has no extraction plan")
	}
	plan := f.Plan.Refactor

	content, err := e.readFile(j.root, f.Target)
	if err != nil {
		return err
	}
	lines := strings.Split(content, "\n")

	// Write each extraction to its target file, then drop the extracted
	// slices from the source. Extractions stay inside the source's package
	// or directory, so existing reference sites remain valid.
	removed := make(map[int]bool)
	for _, ex := range plan.Extractions {
		if ex.StartLine < 1 || ex.EndLine > len(lines) || ex.StartLine > ex.EndLine {
			return fmt.Errorf("extraction range %d-%d out of bounds for %d lines", ex.StartLine, ex.EndLine, len(lines))
		}
		if err := j.snapshot(ex.TargetFile); err != nil {
			return err
		}
		slice := strings.Join(lines[ex.StartLine-1:ex.EndLine], "\n")
		j.record("extract %s:%d-%d into %s", f.Target, ex.StartLine, ex.EndLine, ex.TargetFile)
		if !j.dryRun {
			if err := e.writeFile(j.root, ex.TargetFile, slice+"\n"); err != nil {
				return err
			}
		}
		for i := ex.StartLine - 1; i < ex.EndLine; i++ {
			removed[i] = true
		}
	}

	if err := j.snapshot(f.Target); err != nil {
		return err
	}
	var kept []string
	for i, line := range lines {
		if !removed[i] {
			kept = append(kept, line)
		}
	}
	j.record("rewrite %s without extracted slices", f.Target)
	if j.dryRun {
		return nil
	}
	return e.writeFile(j.root, f.Target, strings.Join(kept, "\n"))
}

func (e *Executor) doConsolidate(j *Journal, f domain.Finding) error {
	if f.Plan == nil || f.Plan.Consolidate == nil {
		return fmt.Errorf("consolidate finding has no merge plan")
	}
	plan := f.Plan.Consolidate

	source, err := e.readFile(j.root, f.Target)
	if err != nil {
		return err
	}
	target, err := e.readFile(j.root, plan.TargetFile)
	if err != nil {
		return err
	}

	unique := uniqueLines(source, target)
	if err := j.snapshot(plan.TargetFile); err != nil {
		return err
	}
	j.record("merge %d unique lines from %s into %s", len(unique), f.Target, plan.TargetFile)
	if !j.dryRun && len(unique) > 0 {
		merged := strings.TrimRight(target, "\n") + "\n\n" +
			commentFor(plan.TargetFile, "Consolidated from "+f.Target) + "\n" +
			strings.Join(unique, "\n") + "\n"
		if err := e.writeFile(j.root, plan.TargetFile, merged); err != nil {
			return err
		}
	}

	if err := j.snapshot(f.Target); err != nil {
		return err
	}
	j.record("delete %s", f.Target)
	if !j.dryRun {
		if err := e.removeFile(j.root, f.Target); err != nil {
			return err
		}
	}

	var deps []string
	for _, dep := range plan.Dependents {
		if dep != plan.TargetFile && dep != f.Target {
			deps = append(deps, dep)
		}
	}
	return e.rewriteReferences(j, deps, f.Target, plan.TargetFile)
}

func (e *Executor) doArchive(j *Journal, f domain.Finding) error {
	if f.Plan == nil || f.Plan.Archive == nil {
		return fmt.Errorf("archive finding has no destination plan")
	}
	plan := f.Plan.Archive

	content, err := e.readFile(j.root, f.Target)
	if err != nil {
		return err
	}

	if err := j.snapshot(f.Target); err != nil {
		return err
	}
	if err := j.snapshot(plan.DestPath); err != nil {
		return err
	}
	j.record("move %s to %s", f.Target, plan.DestPath)
	if !j.dryRun {
		if err := e.moveFile(j.root, f.Target, plan.DestPath); err != nil {
			return err
		}
		annotated := commentFor(plan.DestPath, plan.Note) + "\n" + content
		if err := e.writeFile(j.root, plan.DestPath, annotated); err != nil {
			return err
		}
	}

	return e.rewriteReferences(j, plan.Dependents, f.Target, plan.DestPath)
}

// rewriteReferences replaces textual mentions of oldPath with newPath across
// the dependent set.
func (e *Executor) rewriteReferences(j *Journal, dependents []string, oldPath, newPath string) error {
	for _, dep := range dependents {
		content, err := e.readFile(j.root, dep)
		if err != nil {
			return err
		}
		updated := strings.ReplaceAll(content, oldPath, newPath)
		if updated == content {
			continue
		}
		if err := j.snapshot(dep); err != nil {
			return err
		}
		j.record("rewrite references in %s", dep)
		if !j.dryRun {
			if err := e.writeFile(j.root, dep, updated); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Executor) readFile(root, rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (e *Executor) writeFile(root, rel, content string) error {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte(content), 0644)
}

// removeFile prefers a tracked VCS removal and falls back to a plain unlink
// outside a repository.
func (e *Executor) removeFile(root, rel string) error {
	if e.vcs != nil && e.vcs.IsRepo(root) {
		return e.vcs.Remove(root, rel)
	}
	return os.Remove(filepath.Join(root, filepath.FromSlash(rel)))
}

func (e *Executor) moveFile(root, from, to string) error {
	absTo := filepath.Join(root, filepath.FromSlash(to))
	if err := os.MkdirAll(filepath.Dir(absTo), 0755); err != nil {
		return err
	}
	if e.vcs != nil && e.vcs.IsRepo(root) {
		return e.vcs.Move(root, from, to)
	}
	return os.Rename(filepath.Join(root, filepath.FromSlash(from)), absTo)
}

// uniqueLines returns non-blank source lines absent from target.
func uniqueLines(source, target string) []string {
	have := make(map[string]bool)
	for _, line := range strings.Split(target, "\n") {
		have[strings.TrimSpace(line)] = true
	}
	var unique []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !have[trimmed] {
			unique = append(unique, line)
		}
	}
	return unique
}

// commentFor renders note as a comment in the file's own syntax.
func commentFor(path, note string) string {
	if note == "" {
		note = "Archived by debloat."
	}
	switch {
	case strings.HasSuffix(path, ".go"), strings.HasSuffix(path, ".js"), strings.HasSuffix(path, ".ts"),
		strings.HasSuffix(path, ".rs"), strings.HasSuffix(path, ".java"), strings.HasSuffix(path, ".c"),
		strings.HasSuffix(path, ".h"), strings.HasSuffix(path, ".cpp"):
		return "// " + note
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".html"):
		return "<!-- " + note + " -->"
	default:
		return "# " + note
	}
}

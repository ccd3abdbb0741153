package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/debloat-dev/debloat/internal/domain"
)

// RemediateService drives the per-finding state machine:
// propose → approve → execute → verify → commit or rollback. Strictly
// sequential once the backup exists; each mutation can invalidate later
// findings' plans, so nothing runs concurrently here.
type RemediateService struct {
	vcs      domain.VersionControl
	runner   domain.TestRunner
	executor *Executor
	decide   domain.DecisionFunc

	// Progress receives human-facing status lines; nil means silent.
	Progress func(format string, args ...any)
}

func NewRemediateService(vcs domain.VersionControl, runner domain.TestRunner, executor *Executor, decide domain.DecisionFunc) *RemediateService {
	return &RemediateService{vcs: vcs, runner: runner, executor: executor, decide: decide}
}

func (s *RemediateService) progress(format string, args ...any) {
	if s.Progress != nil {
		s.Progress(format, args...)
	}
}

// Run processes the prioritized queue. Only a backup failure is fatal; every
// other error resolves at finding granularity and the session continues.
func (s *RemediateService) Run(root string, queue []domain.Finding, cfg domain.SessionConfig) (*domain.RemediationSession, error) {
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = 5 * time.Minute
	}
	session := &domain.RemediationSession{
		ID:     uuid.NewString(),
		Config: cfg,
		Queue:  queue,
		State:  domain.StatePrioritized,
	}

	if err := s.backup(root, session); err != nil {
		return session, err
	}

	testCmd := cfg.TestCommand
	if testCmd == "" && !cfg.DryRun {
		testCmd = s.runner.Detect(root)
	}
	if testCmd == "" && !cfg.DryRun {
		// Vacuous verification is a policy choice, not a silent gap.
		session.VerifyVacuous = true
		s.progress("no test command detected: verification will pass vacuously")
	}

	canCommit := !cfg.DryRun && s.vcs.IsRepo(root)

	for i, finding := range queue {
		if session.Aborted {
			session.Skipped = append(session.Skipped, domain.ItemResult{
				Finding: finding, Reason: "session aborted before processing",
			})
			continue
		}

		session.State = domain.StateProposing
		s.progress("[%d/%d] %s %s (risk %s, confidence %d)",
			i+1, len(queue), finding.Action, finding.Target, finding.Risk, finding.Confidence)

		decision, err := s.approve(finding, cfg.AutoApprove)
		if err != nil {
			session.Aborted = true
			session.Skipped = append(session.Skipped, domain.ItemResult{
				Finding: finding, Reason: fmt.Sprintf("approval failed: %v", err),
			})
			continue
		}

		switch decision {
		case domain.DecisionSkip:
			session.Skipped = append(session.Skipped, domain.ItemResult{
				Finding: finding, Reason: "skipped by operator",
			})
			continue
		case domain.DecisionQuit:
			// Honored between findings only; everything already committed
			// stays committed.
			session.Aborted = true
			session.Skipped = append(session.Skipped, domain.ItemResult{
				Finding: finding, Reason: "session aborted before processing",
			})
			continue
		}

		s.processOne(root, session, finding, testCmd, canCommit)
	}

	if session.Aborted {
		session.State = domain.StateAborted
	} else {
		session.State = domain.StateCompleted
	}
	return session, nil
}

// backup creates the pre-mutation snapshot. A failure with backups enabled
// refuses to start the loop.
func (s *RemediateService) backup(root string, session *domain.RemediationSession) error {
	cfg := session.Config
	if cfg.DryRun {
		session.State = domain.StateBackedUp
		return nil
	}
	if cfg.NoBackup {
		s.progress("backups disabled: changes will not be easily reversible")
		session.State = domain.StateBackedUp
		return nil
	}

	if !s.vcs.IsRepo(root) {
		return fmt.Errorf("%w: %s is not a repository and --no-backup was not passed", domain.ErrPrecondition, root)
	}

	name := cfg.BackupBranch
	if name == "" {
		name = "debloat/backup-" + time.Now().Format("20060102-150405")
	}
	ref, err := s.vcs.Snapshot(root, name)
	if err != nil {
		return fmt.Errorf("%w: creating backup %s: %v", domain.ErrPrecondition, name, err)
	}

	session.BackupRef = ref
	session.State = domain.StateBackedUp
	s.progress("backup created: %s", ref)
	return nil
}

// approve resolves one finding's decision: policy first, then the injected
// decision function. ShowDetail renders the plan and re-prompts.
func (s *RemediateService) approve(finding domain.Finding, policy domain.ApprovalPolicy) (domain.Decision, error) {
	if domain.AutoApproved(finding, policy) {
		s.progress("auto-approved under policy %s", policy)
		return domain.DecisionApprove, nil
	}
	for {
		decision, err := s.decide(finding)
		if err != nil {
			return domain.DecisionQuit, err
		}
		if decision != domain.DecisionDetail {
			return decision, nil
		}
		s.progress("%s", renderDetail(finding))
	}
}

// processOne runs execute → verify → commit|rollback for one approved
// finding. Failures land in session.Failed and never corrupt the session.
func (s *RemediateService) processOne(root string, session *domain.RemediationSession, finding domain.Finding, testCmd string, canCommit bool) {
	session.State = domain.StateExecuting
	journal, err := s.executor.Execute(root, finding, session.Config.DryRun)
	if err != nil {
		session.State = domain.StateRolledBack
		session.Failed = append(session.Failed, domain.ItemResult{
			Finding: finding, Reason: err.Error(),
		})
		s.progress("failed: %v (rolled back)", err)
		return
	}

	session.State = domain.StateVerifying
	if !session.Config.DryRun && testCmd != "" {
		ctx, cancel := context.WithTimeout(context.Background(), session.Config.VerifyTimeout)
		err = s.runner.Run(ctx, root, testCmd)
		cancel()
		if err != nil {
			if rbErr := journal.Rollback(); rbErr != nil {
				err = fmt.Errorf("%v (rollback also failed: %v)", err, rbErr)
			}
			session.State = domain.StateRolledBack
			session.Failed = append(session.Failed, domain.ItemResult{
				Finding: finding, Reason: fmt.Sprintf("verification failed: %v", err),
			})
			s.progress("verification failed, rolled back: %v", err)
			return
		}
	}

	result := domain.ItemResult{Finding: finding}
	if session.Config.DryRun {
		result.Reason = "dry-run: no changes written"
	} else if canCommit {
		hash, commitErr := s.vcs.Commit(root, commitMessage(finding))
		if commitErr != nil {
			if rbErr := journal.Rollback(); rbErr != nil {
				commitErr = fmt.Errorf("%v (rollback also failed: %v)", commitErr, rbErr)
			}
			session.State = domain.StateRolledBack
			session.Failed = append(session.Failed, domain.ItemResult{
				Finding: finding, Reason: fmt.Sprintf("commit failed: %v", commitErr),
			})
			s.progress("commit failed, rolled back: %v", commitErr)
			return
		}
		result.CommitHash = hash
	} else {
		result.Reason = "applied without commit (no repository)"
	}

	session.State = domain.StateCommitted
	session.Applied = append(session.Applied, result)
	s.progress("applied %s %s", finding.Action, finding.Target)
}

func commitMessage(f domain.Finding) string {
	return fmt.Sprintf("debloat: %s %s\n\n%s", f.Action, f.Target, f.Rationale)
}

func renderDetail(f domain.Finding) string {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return f.Target
	}
	return string(data)
}

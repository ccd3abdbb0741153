package domain

import "time"

// SessionState is the controller's position in the remediation state machine.
type SessionState string

const (
	StateInit        SessionState = "init"
	StateScanned     SessionState = "scanned"
	StatePrioritized SessionState = "prioritized"
	StateBackedUp    SessionState = "backed_up"
	StateProposing   SessionState = "proposing"
	StateApproving   SessionState = "approving"
	StateExecuting   SessionState = "executing"
	StateVerifying   SessionState = "verifying"
	StateCommitted   SessionState = "committed"
	StateRolledBack  SessionState = "rolled_back"
	StateCompleted   SessionState = "completed"
	StateAborted     SessionState = "aborted"
)

// Focus filters which finding classes a run considers.
type Focus string

const (
	FocusCode Focus = "code"
	FocusDocs Focus = "docs"
	FocusDeps Focus = "deps"
	FocusAll  Focus = "all"
)

// SessionConfig holds one run's settings.
type SessionConfig struct {
	Level         int            `json:"level"`
	Focus         Focus          `json:"focus"`
	DryRun        bool           `json:"dry_run"`
	AutoApprove   ApprovalPolicy `json:"auto_approve"`
	NoBackup      bool           `json:"no_backup"`
	BackupBranch  string         `json:"backup_branch,omitempty"`
	TestCommand   string         `json:"test_command,omitempty"`
	VerifyTimeout time.Duration  `json:"verify_timeout"`
}

// ItemResult records the outcome of processing one finding.
type ItemResult struct {
	Finding    Finding `json:"finding"`
	CommitHash string  `json:"commit_hash,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// RemediationSession is the whole state of one orchestrator run. It is
// created at scan time, mutated per finding, and finalized into a report;
// it is never persisted across runs.
type RemediationSession struct {
	ID        string        `json:"id"`
	Config    SessionConfig `json:"config"`
	BackupRef string        `json:"backup_ref,omitempty"`
	Queue     []Finding     `json:"queue"`
	Applied   []ItemResult  `json:"applied"`
	Skipped   []ItemResult  `json:"skipped"`
	Failed    []ItemResult  `json:"failed"`
	Aborted   bool          `json:"aborted"`
	State     SessionState  `json:"state"`

	// VerifyVacuous is set when no test command could be detected and every
	// verification passed by policy rather than by evidence. Surfaced in the
	// summary and report, never silently.
	VerifyVacuous bool `json:"verify_vacuous,omitempty"`
}

// TokensSaved sums the token estimates of applied findings.
func (s *RemediationSession) TokensSaved() int {
	total := 0
	for _, r := range s.Applied {
		total += r.Finding.TokenEstimate
	}
	return total
}

// LinesSaved sums the line estimates of applied findings.
func (s *RemediationSession) LinesSaved() int {
	total := 0
	for _, r := range s.Applied {
		total += r.Finding.LineEstimate
	}
	return total
}

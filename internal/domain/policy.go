package domain

import "fmt"

// ApprovalPolicy names the threshold rule governing which findings bypass
// human confirmation.
type ApprovalPolicy string

const (
	PolicyNone   ApprovalPolicy = "none"
	PolicyLow    ApprovalPolicy = "low"
	PolicyMedium ApprovalPolicy = "medium"
)

// ParsePolicy validates a user-supplied policy name.
func ParsePolicy(s string) (ApprovalPolicy, error) {
	switch ApprovalPolicy(s) {
	case PolicyNone, PolicyLow, PolicyMedium:
		return ApprovalPolicy(s), nil
	}
	return "", fmt.Errorf("unknown auto-approve policy %q (want none, low, or medium)", s)
}

// AutoApproved reports whether the policy lets a finding proceed without a
// human decision.
func AutoApproved(f Finding, policy ApprovalPolicy) bool {
	switch policy {
	case PolicyLow:
		if f.Risk != RiskLow || f.Confidence < 90 || f.ReferenceCount != 0 {
			return false
		}
		switch f.Category {
		case CategoryDeprecated, CategoryTest, CategoryArchive:
			return true
		}
		return false
	case PolicyMedium:
		return f.Risk <= RiskMedium && f.Confidence >= 80 && f.ReferenceCount <= 2 && !f.IsCore
	default:
		return false
	}
}

// Decision is an operator's (or policy's) answer for one finding.
type Decision int

const (
	DecisionApprove Decision = iota
	DecisionSkip
	DecisionDetail
	DecisionQuit
)

// DecisionFunc supplies decisions for findings the policy does not
// auto-approve. A terminal prompter implements it interactively; tests and CI
// inject scripted functions, so the controller never branches on the mode.
type DecisionFunc func(Finding) (Decision, error)

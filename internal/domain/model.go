package domain

// Action is the remediation applied to a finding. Exactly one action is
// assigned per finding; the executor dispatches on it exhaustively.
type Action string

const (
	ActionDelete      Action = "delete"
	ActionRefactor    Action = "refactor"
	ActionConsolidate Action = "consolidate"
	ActionArchive     Action = "archive"
)

// ActionRank orders actions by blast radius, smallest first. Used as the
// secondary prioritization key.
func ActionRank(a Action) int {
	switch a {
	case ActionDelete:
		return 0
	case ActionConsolidate:
		return 1
	case ActionArchive:
		return 2
	case ActionRefactor:
		return 3
	default:
		return 4
	}
}

// Risk classifies how safe it is to act on a finding automatically.
type Risk int

const (
	RiskLow Risk = iota
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

func (r Risk) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *Risk) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"LOW"`:
		*r = RiskLow
	case `"MEDIUM"`:
		*r = RiskMedium
	default:
		*r = RiskHigh
	}
	return nil
}

// Category tags the kind of file a finding points at.
type Category string

const (
	CategoryDeprecated Category = "deprecated"
	CategoryTest       Category = "test"
	CategoryArchive    Category = "archive"
	CategoryDocs       Category = "docs"
	CategoryInfra      Category = "infra"
	CategoryCore       Category = "core"
	CategoryCode       Category = "code"
)

// Finding is one detected bloat candidate with its recommended action.
type Finding struct {
	Target         string      `json:"target"`
	Action         Action      `json:"action"`
	Confidence     int         `json:"confidence"`
	ReferenceCount int         `json:"reference_count"`
	Category       Category    `json:"category"`
	IsCore         bool        `json:"is_core"`
	Risk           Risk        `json:"risk"`
	TokenEstimate  int         `json:"token_estimate"`
	LineEstimate   int         `json:"line_estimate"`
	Rationale      string      `json:"rationale"`
	Plan           *ActionPlan `json:"plan,omitempty"`
}

// ActionPlan is the action-specific payload of a finding. At most one of the
// sub-plans is set, matching the finding's action; Delete needs none.
type ActionPlan struct {
	Refactor    *RefactorPlan    `json:"refactor,omitempty"`
	Consolidate *ConsolidatePlan `json:"consolidate,omitempty"`
	Archive     *ArchivePlan     `json:"archive,omitempty"`
}

// RefactorPlan splits a file: each extraction becomes a new file, then
// reference sites in Dependents are rewritten.
type RefactorPlan struct {
	Extractions []Extraction `json:"extractions"`
	Dependents  []string     `json:"dependents,omitempty"`
}

// Extraction names a line slice of the source file and its destination.
type Extraction struct {
	TargetFile string `json:"target_file"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// ConsolidatePlan merges the finding's target into TargetFile and removes it.
type ConsolidatePlan struct {
	TargetFile string   `json:"target_file"`
	Dependents []string `json:"dependents,omitempty"`
}

// ArchivePlan moves the target under the archive directory with a
// deprecation notice.
type ArchivePlan struct {
	DestPath   string   `json:"dest_path"`
	Note       string   `json:"note,omitempty"`
	Dependents []string `json:"dependents,omitempty"`
}

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/debloat-dev/debloat/internal/domain"
)

// TerminalPrompter turns a terminal conversation into a domain.DecisionFunc.
// The controller blocks on it; nothing else runs while the operator thinks.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Decide renders the finding and reads one of approve / skip / detail / quit.
// Unrecognized input re-prompts.
func (p *TerminalPrompter) Decide(f domain.Finding) (domain.Decision, error) {
	fmt.Fprintf(p.out, "\n  %s %s\n", f.Action, f.Target)
	fmt.Fprintf(p.out, "  risk %s · confidence %d · %d refs · ~%d tokens\n", f.Risk, f.Confidence, f.ReferenceCount, f.TokenEstimate)
	if f.Rationale != "" {
		fmt.Fprintf(p.out, "  %s\n", f.Rationale)
	}

	for {
		fmt.Fprint(p.out, "  [a]pprove / [s]kip / [d]etail / [q]uit > ")
		line, err := p.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Closed stdin means no operator; treat as quit.
				return domain.DecisionQuit, nil
			}
			return domain.DecisionQuit, fmt.Errorf("reading response: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "approve", "y", "yes":
			return domain.DecisionApprove, nil
		case "s", "skip", "n", "no":
			return domain.DecisionSkip, nil
		case "d", "detail", "diff":
			return domain.DecisionDetail, nil
		case "q", "quit":
			return domain.DecisionQuit, nil
		}
	}
}

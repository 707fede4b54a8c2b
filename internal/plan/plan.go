// Package plan builds the executable subset of a turn's actions and renders
// it for confirmation.
package plan

import (
	"fmt"
	"strings"

	"github.com/stevehiehn/chatrun/internal/action"
)

// Step is one executable action with its 1-based position in the plan.
type Step struct {
	Index  int           `json:"index"`
	Action action.Action `json:"action"`
}

// ID is the step identifier used in logs and errors.
func (s Step) ID() string {
	return fmt.Sprintf("%d", s.Index)
}

// Plan is the ordered list of commands and file writes of one turn.
type Plan struct {
	Steps []Step `json:"steps"`
}

// Build keeps the commands and file writes of actions, in order.
func Build(actions []action.Action) *Plan {
	p := &Plan{}
	for _, a := range action.Executables(actions) {
		p.Steps = append(p.Steps, Step{Index: len(p.Steps) + 1, Action: a})
	}
	return p
}

// Empty reports whether there is nothing to execute.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Steps) == 0
}

// Describe renders a numbered list of the planned actions.
func (p *Plan) Describe() string {
	if p.Empty() {
		return "Nothing to execute."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The assistant wants to perform %d action(s):\n", len(p.Steps))
	for _, s := range p.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", s.Index, describeStep(s.Action))
	}
	return b.String()
}

func describeStep(a action.Action) string {
	switch a.Kind {
	case action.KindFileWrite:
		lines := strings.Count(a.Content, "\n") + 1
		if a.Content == "" {
			lines = 0
		}
		return fmt.Sprintf("write file %s (%d line(s))", a.Path, lines)
	case action.KindCommand:
		return fmt.Sprintf("run command `%s`", a.Body)
	default:
		return a.Describe()
	}
}

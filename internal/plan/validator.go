package plan

import (
	"fmt"
	"strings"

	"github.com/stevehiehn/chatrun/internal/action"
	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

// Validate checks a plan for structural correctness before it is offered
// for confirmation.
func Validate(p *Plan) error {
	if p == nil {
		return cerrors.NewValidationError("plan is nil", "")
	}
	for i, s := range p.Steps {
		if s.Index != i+1 {
			return &cerrors.RunError{
				Type:    cerrors.ValidationError,
				StepID:  s.ID(),
				Message: fmt.Sprintf("step at position %d has index %d", i+1, s.Index),
			}
		}
		switch s.Action.Kind {
		case action.KindCommand:
			if strings.TrimSpace(s.Action.Body) == "" {
				return &cerrors.RunError{
					Type:    cerrors.ValidationError,
					StepID:  s.ID(),
					Message: "command is empty",
				}
			}
		case action.KindFileWrite:
			if strings.TrimSpace(s.Action.Path) == "" {
				return &cerrors.RunError{
					Type:    cerrors.ValidationError,
					StepID:  s.ID(),
					Message: "file write has no path",
				}
			}
		default:
			return &cerrors.RunError{
				Type:    cerrors.ValidationError,
				StepID:  s.ID(),
				Message: fmt.Sprintf("%s actions cannot be executed", s.Action.Kind),
				Hint:    "A plan holds only commands and file writes",
			}
		}
	}
	return nil
}

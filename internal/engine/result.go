package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/plan"
)

// RefusalMessage is the whole outcome log of a turn whose plan was declined.
const RefusalMessage = "The user declined to run the proposed actions. Nothing was executed."

// SkippedMessage is the outcome log of a turn that was only explained.
const SkippedMessage = "The proposed actions were shown but not executed."

// LogKind tells apart the ways a turn can end.
type LogKind string

const (
	LogEmpty    LogKind = "empty"    // nothing to execute
	LogExecuted LogKind = "executed" // every step ran, successfully or not
	LogRefused  LogKind = "refused"  // confirmation denied, zero side effects
	LogSkipped  LogKind = "skipped"  // explain mode, zero side effects
)

// Result is the structured output of one turn.
type Result struct {
	TurnID   string          `json:"turn_id"`
	Actions  []action.Action `json:"actions"`
	Plan     *plan.Plan      `json:"plan"`
	Approved bool            `json:"approved"`
	Log      Log             `json:"log"`
}

// Outcome describes the result of a single executed step.
type Outcome struct {
	Step     int           `json:"step"`
	Kind     action.Kind   `json:"kind"`
	Command  string        `json:"command,omitempty"`
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Path     string        `json:"path,omitempty"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Log is the ordered record of a turn's outcomes. Its String form is the
// only execution state handed to the next turn.
type Log struct {
	Kind     LogKind   `json:"kind"`
	Outcomes []Outcome `json:"outcomes,omitempty"`
}

// Failures counts the outcomes that did not succeed.
func (l Log) Failures() int {
	n := 0
	for _, o := range l.Outcomes {
		if !o.Success {
			n++
		}
	}
	return n
}

func (l Log) String() string {
	switch l.Kind {
	case LogRefused:
		return RefusalMessage
	case LogSkipped:
		return SkippedMessage
	case LogExecuted:
		blocks := make([]string, 0, len(l.Outcomes))
		for _, o := range l.Outcomes {
			blocks = append(blocks, o.String())
		}
		return "Execution results:\n\n" + strings.Join(blocks, "\n")
	default:
		return ""
	}
}

func (o Outcome) String() string {
	var b strings.Builder
	switch o.Kind {
	case action.KindCommand:
		fmt.Fprintf(&b, "[%d] $ %s\n", o.Step, o.Command)
		fmt.Fprintf(&b, "exit code: %d\n", o.ExitCode)
		b.WriteString("stdout:\n")
		b.WriteString(section(o.Stdout))
		b.WriteString("stderr:\n")
		b.WriteString(section(o.Stderr))
	case action.KindFileWrite:
		if o.Success {
			fmt.Fprintf(&b, "[%d] write file %s: ok\n", o.Step, o.Path)
		} else {
			fmt.Fprintf(&b, "[%d] write file %s: failed: %s\n", o.Step, o.Path, o.Error)
		}
	}
	return b.String()
}

func section(s string) string {
	if s == "" {
		return "(empty)\n"
	}
	if !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

// Truncate caps a rendered log at max bytes on a rune boundary. A max of
// zero or less leaves the log untouched.
func Truncate(log string, max int) string {
	if max <= 0 || len(log) <= max {
		return log
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(log[cut]) {
		cut--
	}
	return fmt.Sprintf("%s\n... [truncated %d bytes]", log[:cut], len(log)-cut)
}

package engine

import "github.com/google/uuid"

// Mode controls execution behavior.
type Mode int

const (
	ModeRun Mode = iota
	ModeDryRun
	ModeExplain
)

func (m Mode) String() string {
	switch m {
	case ModeDryRun:
		return "dry-run"
	case ModeExplain:
		return "explain"
	default:
		return "run"
	}
}

// Options is the per-turn configuration. It is passed explicitly on every
// call; the engine keeps no state between turns.
type Options struct {
	// AutoApprove skips the confirmation gate entirely.
	AutoApprove bool
	Mode        Mode
}

func newTurnID() string {
	return uuid.New().String()
}

package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stevehiehn/chatrun/internal/action"
	cerrors "github.com/stevehiehn/chatrun/internal/errors"
	"github.com/stevehiehn/chatrun/internal/gate"
	"github.com/stevehiehn/chatrun/internal/plan"
	"github.com/stevehiehn/chatrun/internal/runner"
)

// Engine turns one assistant response into side effects and an outcome log.
type Engine struct {
	Runner runner.CommandRunner
	Writer runner.FileWriter
	Gate   gate.Confirmer
	Logger *zap.Logger

	now func() time.Time
}

// New creates an engine. A nil logger disables logging.
func New(r runner.CommandRunner, w runner.FileWriter, g gate.Confirmer, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Runner: r, Writer: w, Gate: g, Logger: logger, now: time.Now}
}

// Turn parses response, asks for confirmation once and runs the plan in
// order. A failing step never stops the remaining ones; it is only
// recorded. The returned error is reserved for failures of the gate itself
// and malformed plans.
func (e *Engine) Turn(response string, opts Options) (*Result, error) {
	result := &Result{TurnID: newTurnID()}
	result.Actions = action.Parse(response)
	result.Plan = plan.Build(result.Actions)
	log := e.logger().With(zap.String("turn_id", result.TurnID), zap.Stringer("mode", opts.Mode))
	if at := action.Unterminated(response); at >= 0 {
		log.Warn("file block left as prose", zap.Error(&cerrors.RunError{
			Type:    cerrors.ParseAmbiguity,
			Message: fmt.Sprintf("opening marker at byte %d has no closing marker", at),
			Hint:    "A file block must end with a line containing exactly ++EOF++",
		}))
	}

	if result.Plan.Empty() {
		log.Debug("nothing to execute", zap.Int("actions", len(result.Actions)))
		result.Log = Log{Kind: LogEmpty}
		return result, nil
	}
	if err := plan.Validate(result.Plan); err != nil {
		return nil, err
	}

	if opts.Mode == ModeExplain {
		result.Log = Log{Kind: LogSkipped}
		return result, nil
	}

	approved, err := e.approve(result.Plan, opts)
	if err != nil {
		return nil, err
	}
	result.Approved = approved
	if !approved {
		log.Info("plan refused", zap.String("type", cerrors.Refused), zap.Int("steps", len(result.Plan.Steps)))
		result.Log = Log{Kind: LogRefused}
		return result, nil
	}

	r, w := e.Runner, e.Writer
	if opts.Mode == ModeDryRun {
		dry := &runner.DryRun{}
		r, w = dry, dry
	}

	result.Log = Log{Kind: LogExecuted}
	for _, step := range result.Plan.Steps {
		out := e.execute(step, r, w)
		log.Debug("step finished",
			zap.Int("step", step.Index),
			zap.String("kind", string(step.Action.Kind)),
			zap.Bool("success", out.Success),
			zap.Int("exit_code", out.ExitCode),
			zap.Duration("duration", out.Duration))
		result.Log.Outcomes = append(result.Log.Outcomes, out)
	}

	log.Info("plan executed",
		zap.Int("steps", len(result.Plan.Steps)),
		zap.Int("failures", result.Log.Failures()))
	return result, nil
}

func (e *Engine) approve(p *plan.Plan, opts Options) (bool, error) {
	if opts.AutoApprove {
		return true, nil
	}
	if e.Gate == nil {
		return false, nil
	}
	ok, err := e.Gate.Confirm(p.Describe())
	if err != nil {
		return false, cerrors.NewGateError(err)
	}
	return ok, nil
}

func (e *Engine) execute(step plan.Step, r runner.CommandRunner, w runner.FileWriter) Outcome {
	out := Outcome{Step: step.Index, Kind: step.Action.Kind}
	start := e.clock()
	switch step.Action.Kind {
	case action.KindCommand:
		out.Command = step.Action.Body
		res := r.Run(step.Action.Body)
		out.ExitCode = res.ExitCode
		out.Stdout = res.Stdout
		out.Stderr = res.Stderr
		out.Success = res.ExitCode == 0
	case action.KindFileWrite:
		out.Path = step.Action.Path
		if err := w.Write(step.Action.Path, step.Action.Content); err != nil {
			out.Error = err.Error()
			e.logger().Warn("file write failed",
				zap.Error(cerrors.NewExecutionError(step.ID(), "write "+step.Action.Path, err)))
		} else {
			out.Success = true
		}
	}
	out.Duration = e.clock().Sub(start).Round(time.Millisecond)
	return out
}

func (e *Engine) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

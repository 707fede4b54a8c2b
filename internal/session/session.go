// Package session runs the conversational loop: read a line from the user,
// send it to the oracle together with the previous outcome log, show the
// response and hand it to the engine.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/engine"
	cerrors "github.com/stevehiehn/chatrun/internal/errors"
	"github.com/stevehiehn/chatrun/internal/oracle"
	"github.com/stevehiehn/chatrun/internal/render"
)

// PreviousResultsHeader introduces the last outcome log in a prompt.
const PreviousResultsHeader = "Result of the previous actions:"

// Farewell is printed when the user leaves.
const Farewell = "Goodbye!"

var exitWords = map[string]bool{"exit": true, "quit": true, "bye": true}

// Recorder persists each turn.
type Recorder interface {
	WriteTurn(n int, prompt, response, log string, result *engine.Result) error
}

// Session owns the turn counter and the most recent outcome log.
type Session struct {
	Oracle   oracle.Oracle
	Engine   *engine.Engine
	Renderer *render.Renderer
	// In must be the same reader the confirmation gate reads from.
	In       *bufio.Reader
	Options  engine.Options
	Recorder Recorder
	Logger   *zap.Logger

	Model       string
	MaxLogBytes int
	// ExitOnError ends the session on a transport failure instead of only
	// the current turn.
	ExitOnError bool

	turns   int
	lastLog string
}

// New creates a session that ends on transport failures.
func New(o oracle.Oracle, e *engine.Engine, r *render.Renderer, in *bufio.Reader) *Session {
	return &Session{
		Oracle:      o,
		Engine:      e,
		Renderer:    r,
		In:          in,
		Logger:      zap.NewNop(),
		ExitOnError: true,
	}
}

// Turns returns how many turns completed.
func (s *Session) Turns() int { return s.turns }

// LastLog returns the rendered outcome log of the latest turn.
func (s *Session) LastLog() string { return s.lastLog }

// BuildPrompt composes the next prompt. A non-empty last log is placed
// before the user's input, capped at maxLogBytes.
func BuildPrompt(lastLog, input string, maxLogBytes int) string {
	if lastLog == "" {
		return input
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", PreviousResultsHeader, engine.Truncate(lastLog, maxLogBytes), input)
}

// Run reads user input until EOF, an exit word, a cancelled context or a
// fatal error.
func (s *Session) Run(ctx context.Context) error {
	s.Renderer.Banner(s.Model)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.Renderer.Out, "> ")
		line, err := s.In.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		eof := errors.Is(err, io.EOF)
		input := strings.TrimSpace(line)

		if exitWords[strings.ToLower(input)] {
			fmt.Fprintln(s.Renderer.Out, Farewell)
			return nil
		}
		if input == "" {
			if eof {
				fmt.Fprintln(s.Renderer.Out)
				return nil
			}
			continue
		}

		if _, err := s.Step(ctx, input); err != nil {
			s.Renderer.Error(err)
			if s.fatal(err) {
				return err
			}
		}
		if eof {
			return nil
		}
	}
}

// Step runs one full turn for input. The outcome log it produces replaces
// the previous one.
func (s *Session) Step(ctx context.Context, input string) (*engine.Result, error) {
	n := s.turns + 1
	log := s.logger().With(zap.Int("turn", n))

	prompt := BuildPrompt(s.lastLog, input, s.MaxLogBytes)
	done := s.Renderer.Thinking()
	response, err := s.Oracle.Send(ctx, prompt)
	done()
	if err != nil {
		log.Error("oracle failed", zap.Error(err))
		return nil, err
	}

	// The response is shown before the engine asks for confirmation.
	s.Renderer.Actions(action.Parse(response))
	result, err := s.Engine.Turn(response, s.Options)
	if err != nil {
		log.Error("turn failed", zap.Error(err))
		return nil, err
	}

	rendered := result.Log.String()
	s.Renderer.Log(result.Log, rendered)
	s.lastLog = rendered
	s.turns = n

	if s.Recorder != nil {
		if err := s.Recorder.WriteTurn(n, prompt, response, rendered, result); err != nil {
			log.Warn("recording turn failed", zap.Error(err))
		}
	}
	log.Info("turn complete",
		zap.String("turn_id", result.TurnID),
		zap.String("outcome", string(result.Log.Kind)))
	return result, nil
}

// fatal reports whether err ends the session. A broken confirmation gate
// always does; a transport failure does when ExitOnError is set.
func (s *Session) fatal(err error) bool {
	switch {
	case cerrors.IsType(err, cerrors.GateFailure):
		return true
	case cerrors.IsType(err, cerrors.TransportFailure):
		return s.ExitOnError
	default:
		return false
	}
}

func (s *Session) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

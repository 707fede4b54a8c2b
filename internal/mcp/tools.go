package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/engine"
	"github.com/stevehiehn/chatrun/internal/gate"
	"github.com/stevehiehn/chatrun/internal/plan"
	"github.com/stevehiehn/chatrun/internal/runner"
)

// TextInput is the input of the tools that only need a response text.
type TextInput struct {
	Text string `json:"text" jsonschema:"assistant response text containing ++command++ and ++nano path++ blocks"`
}

// ParseResult lists the actions found in a response, in order.
type ParseResult struct {
	Actions    []action.Action `json:"actions" jsonschema:"ordered text, command and file_write actions"`
	Executable int             `json:"executable" jsonschema:"number of commands and file writes"`
}

// ExplainResult describes what would run without running it.
type ExplainResult struct {
	Description string `json:"description" jsonschema:"numbered plan as shown at the confirmation prompt"`
	Steps       int    `json:"steps" jsonschema:"number of planned steps"`
}

// RunInput asks for a response text to be executed.
type RunInput struct {
	Text    string `json:"text" jsonschema:"assistant response text"`
	Approve bool   `json:"approve,omitempty" jsonschema:"approve the whole plan; without it nothing runs"`
	DryRun  bool   `json:"dry_run,omitempty" jsonschema:"report what would run without side effects"`
}

// RunResult is the outcome of one executed response.
type RunResult struct {
	TurnID   string           `json:"turn_id" jsonschema:"turn identifier"`
	Kind     string           `json:"kind" jsonschema:"empty, executed, refused or skipped"`
	Approved bool             `json:"approved" jsonschema:"whether the plan was approved"`
	Log      string           `json:"log" jsonschema:"outcome log to feed into the next prompt"`
	Failures int              `json:"failures" jsonschema:"number of failed steps"`
	Outcomes []engine.Outcome `json:"outcomes" jsonschema:"per-step outcomes in plan order"`
}

// ProtocolResult carries the directive grammar given to the model.
type ProtocolResult struct {
	Protocol string `json:"protocol" jsonschema:"system instruction describing the directive grammar"`
}

func parseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "actions_parse",
		Description: "Splits an assistant response into ordered text, command and file-write actions.",
	}
}

func explainTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "actions_explain",
		Description: "Describes the plan a response would execute, without executing it.",
	}
}

func runTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "actions_run",
		Description: "Executes the commands and file writes of a response in order and returns the outcome log. Requires approve=true.",
	}
}

func protocolTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "actions_protocol",
		Description: "Returns the directive grammar the assistant is instructed to use.",
	}
}

func parseHandler() mcp.ToolHandlerFor[TextInput, ParseResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TextInput) (*mcp.CallToolResult, ParseResult, error) {
		actions := action.Parse(input.Text)
		if actions == nil {
			actions = []action.Action{}
		}
		return nil, ParseResult{
			Actions:    actions,
			Executable: len(action.Executables(actions)),
		}, nil
	}
}

func explainHandler() mcp.ToolHandlerFor[TextInput, ExplainResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TextInput) (*mcp.CallToolResult, ExplainResult, error) {
		p := plan.Build(action.Parse(input.Text))
		if err := plan.Validate(p); err != nil {
			return nil, ExplainResult{}, err
		}
		return nil, ExplainResult{Description: p.Describe(), Steps: len(p.Steps)}, nil
	}
}

func runHandler(workDir string, logger *zap.Logger) mcp.ToolHandlerFor[RunInput, RunResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RunInput) (*mcp.CallToolResult, RunResult, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, RunResult{}, fmt.Errorf("text is required")
		}
		e := engine.New(
			runner.Shell{WorkDir: workDir},
			runner.Disk{BaseDir: workDir},
			gate.Always(input.Approve),
			logger,
		)
		opts := engine.Options{}
		if input.DryRun {
			opts.Mode = engine.ModeDryRun
		}
		result, err := e.Turn(input.Text, opts)
		if err != nil {
			return nil, RunResult{}, err
		}
		outcomes := result.Log.Outcomes
		if outcomes == nil {
			outcomes = []engine.Outcome{}
		}
		return nil, RunResult{
			TurnID:   result.TurnID,
			Kind:     string(result.Log.Kind),
			Approved: result.Approved,
			Log:      result.Log.String(),
			Failures: result.Log.Failures(),
			Outcomes: outcomes,
		}, nil
	}
}

func protocolHandler() mcp.ToolHandlerFor[struct{}, ProtocolResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ProtocolResult, error) {
		return nil, ProtocolResult{Protocol: action.Protocol}, nil
	}
}

func registerTools(server *mcp.Server, workDir string, logger *zap.Logger) {
	mcp.AddTool(server, parseTool(), parseHandler())
	mcp.AddTool(server, explainTool(), explainHandler())
	mcp.AddTool(server, runTool(), runHandler(workDir, logger))
	mcp.AddTool(server, protocolTool(), protocolHandler())
}

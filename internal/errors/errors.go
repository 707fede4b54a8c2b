package errors

import (
	stderrors "errors"
	"fmt"
)

// Error type constants
const (
	ValidationError  = "VALIDATION_ERROR"
	ParseAmbiguity   = "PARSE_AMBIGUITY"
	ExecutionFailure = "EXECUTION_FAILURE"
	TransportFailure = "TRANSPORT_FAILURE"
	Refused          = "REFUSED"
	ConfigError      = "CONFIG_ERROR"
	GateFailure      = "GATE_FAILURE"
)

// RunError is a structured error for both operators and the assistant.
type RunError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	StepID  string `json:"step_id,omitempty"`
	Hint    string `json:"hint,omitempty"`
	Err     error  `json:"-"`
}

func (e *RunError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.StepID != "" {
		return fmt.Sprintf("[%s] step %s: %s", e.Type, e.StepID, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg, hint string) *RunError {
	return &RunError{Type: ValidationError, Message: msg, Hint: hint}
}

func NewExecutionError(stepID, msg string, err error) *RunError {
	return &RunError{Type: ExecutionFailure, StepID: stepID, Message: msg, Err: err}
}

// NewTransportError wraps a failure talking to the conversational model.
// Transport errors are surfaced as-is and never retried.
func NewTransportError(msg string, err error) *RunError {
	return &RunError{Type: TransportFailure, Message: msg, Err: err, Hint: "Check the API key and network connection"}
}

func NewConfigError(msg string, err error) *RunError {
	return &RunError{Type: ConfigError, Message: msg, Err: err}
}

func NewGateError(err error) *RunError {
	return &RunError{Type: GateFailure, Message: "reading confirmation", Err: err}
}

// IsType reports whether err is (or wraps) a RunError of the given type.
func IsType(err error, typ string) bool {
	var re *RunError
	if stderrors.As(err, &re) {
		return re.Type == typ
	}
	return false
}

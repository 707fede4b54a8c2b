// Package action turns an assistant response into an ordered list of
// prose, shell command and file-write actions.
package action

import "fmt"

// Kind identifies the shape of an Action.
type Kind string

const (
	KindText      Kind = "text"
	KindCommand   Kind = "command"
	KindFileWrite Kind = "file_write"
)

// Span is a half-open byte range [Start, End) into the response text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Action is one unit of parsed intent. Body is set for text and command
// actions; Path and Content are set for file writes.
type Action struct {
	Kind    Kind   `json:"kind"`
	Body    string `json:"body,omitempty"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
	Span    Span   `json:"span"`
}

// Text returns a prose action.
func Text(body string) Action { return Action{Kind: KindText, Body: body} }

// Command returns a shell command action.
func Command(body string) Action { return Action{Kind: KindCommand, Body: body} }

// FileWrite returns a file-write action.
func FileWrite(path, content string) Action {
	return Action{Kind: KindFileWrite, Path: path, Content: content}
}

// Executable reports whether the action has side effects when run.
func (a Action) Executable() bool {
	return a.Kind == KindCommand || a.Kind == KindFileWrite
}

// Describe renders a one-line, human-readable summary of the action.
func (a Action) Describe() string {
	switch a.Kind {
	case KindCommand:
		return fmt.Sprintf("run command: %s", a.Body)
	case KindFileWrite:
		return fmt.Sprintf("write file: %s (%d bytes)", a.Path, len(a.Content))
	default:
		return a.Body
	}
}

// Package render prints assistant responses and outcome logs to the
// terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/engine"
	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

const wrapWidth = 80

type styles struct {
	title   lipgloss.Style
	command lipgloss.Style
	file    lipgloss.Style
	body    lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

// Renderer writes to Out. In plain mode no styling of any kind is applied.
type Renderer struct {
	Out   io.Writer
	plain bool
	md    *glamour.TermRenderer
	st    styles
}

// New creates a renderer. noColor selects plain output.
func New(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{Out: out, plain: noColor}
	if noColor {
		return r
	}
	r.md, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	r.st = styles{
		title:   lipgloss.NewStyle().Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		file:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		body:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		muted:   lipgloss.NewStyle().Faint(true),
	}
	return r
}

// Banner greets the user at the start of a chat session.
func (r *Renderer) Banner(model string) {
	title := "chatrun"
	help := fmt.Sprintf("model %s. Type exit, quit or bye to leave.", model)
	if !r.plain {
		title = r.st.title.Render(title)
		help = r.st.muted.Render(help)
	}
	fmt.Fprintf(r.Out, "%s\n%s\n\n", title, help)
}

// ThinkingMessage is shown while the model works on a reply.
const ThinkingMessage = "Thinking..."

// Thinking shows a status line and returns the func that clears it. Plain
// output keeps the line, since it cannot be erased from a pipe.
func (r *Renderer) Thinking() (done func()) {
	if r.plain {
		fmt.Fprintln(r.Out, ThinkingMessage)
		return func() {}
	}
	fmt.Fprint(r.Out, r.st.muted.Render(ThinkingMessage))
	return func() { fmt.Fprint(r.Out, "\r\x1b[K") }
}

// Actions prints a response in its original order: prose as markdown,
// directives highlighted.
func (r *Renderer) Actions(actions []action.Action) {
	for _, a := range actions {
		switch a.Kind {
		case action.KindText:
			r.text(a.Body)
		case action.KindCommand:
			r.command(a.Body)
		case action.KindFileWrite:
			r.fileWrite(a.Path, a.Content)
		}
	}
}

func (r *Renderer) text(body string) {
	if r.md != nil {
		if out, err := r.md.Render(body); err == nil {
			fmt.Fprint(r.Out, out)
			return
		}
	}
	fmt.Fprintln(r.Out, body)
}

func (r *Renderer) command(body string) {
	line := "$ " + body
	if !r.plain {
		line = r.st.command.Render(line)
	}
	fmt.Fprintln(r.Out, line)
}

func (r *Renderer) fileWrite(path, content string) {
	if r.plain {
		fmt.Fprintf(r.Out, "--- write %s ---\n%s\n--- end %s ---\n", path, content, path)
		return
	}
	fmt.Fprintln(r.Out, r.st.file.Render("write "+path))
	fmt.Fprintln(r.Out, r.st.body.Render(content))
}

// Log prints the outcome log of a turn. Empty logs print nothing.
func (r *Renderer) Log(log engine.Log, rendered string) {
	if rendered == "" {
		return
	}
	if r.plain {
		fmt.Fprintln(r.Out, rendered)
		return
	}
	switch log.Kind {
	case engine.LogRefused, engine.LogSkipped:
		fmt.Fprintln(r.Out, r.st.muted.Render(rendered))
	default:
		summary := fmt.Sprintf("%d step(s), %d failed", len(log.Outcomes), log.Failures())
		if log.Failures() > 0 {
			summary = r.st.fail.Render(summary)
		} else {
			summary = r.st.ok.Render(summary)
		}
		fmt.Fprintln(r.Out, strings.TrimRight(rendered, "\n"))
		fmt.Fprintln(r.Out, summary)
	}
}

// Error prints err on its own line, followed by its hint if it has one.
func (r *Renderer) Error(err error) {
	msg := "error: " + err.Error()
	if !r.plain {
		msg = r.st.fail.Render(msg)
	}
	fmt.Fprintln(r.Out, msg)

	var re *cerrors.RunError
	if errors.As(err, &re) && re.Hint != "" {
		hint := "hint: " + re.Hint
		if !r.plain {
			hint = r.st.muted.Render(hint)
		}
		fmt.Fprintln(r.Out, hint)
	}
}

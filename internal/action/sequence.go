package action

import "strings"

// Parse returns the ordered actions found in an assistant response.
// Each action is trimmed once; blank prose, empty commands and file
// blocks without a path are dropped.
func Parse(text string) []Action {
	var actions []Action
	for _, t := range Tokenize(text) {
		a, ok := fromToken(t)
		if ok {
			actions = append(actions, a)
		}
	}
	return actions
}

func fromToken(t Token) (Action, bool) {
	switch t.Kind {
	case KindCommand:
		body := strings.TrimSpace(t.Body)
		if body == "" {
			return Action{}, false
		}
		return Action{Kind: KindCommand, Body: body, Span: t.Span}, true
	case KindFileWrite:
		path := strings.TrimSpace(t.Path)
		if path == "" {
			return Action{}, false
		}
		return Action{Kind: KindFileWrite, Path: path, Content: strings.TrimSpace(t.Content), Span: t.Span}, true
	default:
		body := strings.TrimSpace(t.Body)
		if body == "" {
			return Action{}, false
		}
		return Action{Kind: KindText, Body: body, Span: t.Span}, true
	}
}

// Executables filters actions down to commands and file writes,
// preserving their relative order.
func Executables(actions []Action) []Action {
	var out []Action
	for _, a := range actions {
		if a.Executable() {
			out = append(out, a)
		}
	}
	return out
}

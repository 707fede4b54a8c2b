// Package oracle talks to the conversational model.
package oracle

import "context"

// Oracle takes one prompt and returns the assistant's full response.
// The conversation transcript is owned by the implementation.
type Oracle interface {
	Send(ctx context.Context, prompt string) (string, error)
}

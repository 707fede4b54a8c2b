package oracle

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

// Script is a canned conversation used for offline runs and tests.
type Script struct {
	Responses []string `yaml:"responses"`
}

// Scripted replays responses in order and records the prompts it got.
type Scripted struct {
	Responses []string
	Prompts   []string
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (*Scripted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(s.Responses) == 0 {
		return nil, fmt.Errorf("script has no responses")
	}
	return &Scripted{Responses: s.Responses}, nil
}

func (s *Scripted) Send(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", cerrors.NewTransportError("send message", err)
	}
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Prompts) > len(s.Responses) {
		return "", cerrors.NewTransportError("send message", fmt.Errorf("script exhausted after %d responses", len(s.Responses)))
	}
	return s.Responses[len(s.Prompts)-1], nil
}

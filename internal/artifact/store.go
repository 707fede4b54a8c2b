// Package artifact records chat sessions on disk, one directory per session
// with a set of files per turn.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/stevehiehn/chatrun/internal/engine"
)

// Store manages the transcript of one session.
type Store struct {
	SessionID string
	BaseDir   string // <dir>/<session_id>
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// New creates a store for sessionID rooted at dir.
func New(sessionID, dir string) (*Store, error) {
	base := filepath.Join(dir, sessionID)
	if err := os.MkdirAll(filepath.Join(base, "turns"), 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &Store{SessionID: sessionID, BaseDir: base}, nil
}

func (s *Store) turnPath(n int, ext string) string {
	return filepath.Join(s.BaseDir, "turns", fmt.Sprintf("%d.%s", n, ext))
}

// WriteExchange writes the prompt sent and the response received in turn n.
func (s *Store) WriteExchange(n int, prompt, response string) error {
	if err := os.WriteFile(s.turnPath(n, "prompt.md"), []byte(prompt), 0o644); err != nil {
		return err
	}
	return os.WriteFile(s.turnPath(n, "response.md"), []byte(response), 0o644)
}

// WriteOutcome writes the rendered outcome log and the structured result of
// turn n. An empty log produces no .log file.
func (s *Store) WriteOutcome(n int, log string, result *engine.Result) error {
	if log != "" {
		if err := os.WriteFile(s.turnPath(n, "log"), []byte(log), 0o644); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.turnPath(n, "json"), data, 0o644)
}

// WriteTurn records a whole turn.
func (s *Store) WriteTurn(n int, prompt, response, log string, result *engine.Result) error {
	if err := s.WriteExchange(n, prompt, response); err != nil {
		return fmt.Errorf("turn %d: %w", n, err)
	}
	if err := s.WriteOutcome(n, log, result); err != nil {
		return fmt.Errorf("turn %d: %w", n, err)
	}
	return nil
}

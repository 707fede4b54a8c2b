package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/stevehiehn/chatrun/internal/engine"
	"github.com/stevehiehn/chatrun/internal/gate"
	"github.com/stevehiehn/chatrun/internal/runner"
)

// readResponse returns the response text from the file named in args, or
// from in when no file (or "-") is given.
func readResponse(args []string, in io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading response file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func fromStdin(args []string) bool {
	return len(args) == 0 || args[0] == "-"
}

func newEngine(g gate.Confirmer) *engine.Engine {
	return engine.New(runner.Shell{WorkDir: cfg.WorkDir}, runner.Disk{BaseDir: cfg.WorkDir}, g, logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

// SecretReader reads one secret line from the user.
type SecretReader func() (string, error)

// TerminalSecret reads from f without echo. It fails when f is not a
// terminal.
func TerminalSecret(f *os.File) SecretReader {
	return func() (string, error) {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			return "", fmt.Errorf("stdin is not a terminal")
		}
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// EnsureAPIKey asks for the API key when none is configured and saves it to
// the .env file so later runs pick it up.
func EnsureAPIKey(cfg *Config, read SecretReader, out io.Writer) error {
	if cfg.APIKey != "" {
		return nil
	}
	if read == nil {
		return cerrors.NewConfigError(APIKeyEnv+" is not set", nil)
	}
	fmt.Fprint(out, "Gemini API key: ")
	key, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return cerrors.NewConfigError("reading API key", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return cerrors.NewConfigError("API key must not be empty", nil)
	}
	cfg.APIKey = key
	if cfg.EnvFile == "" {
		return nil
	}
	if err := SaveAPIKey(cfg.EnvFile, key); err != nil {
		return err
	}
	fmt.Fprintf(out, "API key saved to %s\n", cfg.EnvFile)
	return nil
}

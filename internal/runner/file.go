package runner

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter creates or overwrites a file with the given content.
type FileWriter interface {
	Write(path, content string) error
}

// Disk writes files to the local file system. Relative paths resolve
// against BaseDir, or the process working directory when BaseDir is empty.
// Parent directories are never created.
type Disk struct {
	BaseDir string
}

func (d Disk) Write(path, content string) error {
	if path == "" {
		return fmt.Errorf("file write: missing path")
	}
	if err := os.WriteFile(d.resolve(path), []byte(content), 0o644); err != nil {
		return fmt.Errorf("file write: %w", err)
	}
	return nil
}

func (d Disk) resolve(path string) string {
	if filepath.IsAbs(path) || d.BaseDir == "" {
		return path
	}
	return filepath.Join(d.BaseDir, path)
}

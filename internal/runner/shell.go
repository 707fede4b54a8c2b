package runner

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
)

// ShellResult holds the output of a shell command.
type ShellResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// CommandRunner executes one shell command to completion.
type CommandRunner interface {
	Run(command string) *ShellResult
}

// Shell runs commands through the platform shell so pipes, operators and
// redirection behave as written. There is no timeout: a command that never
// exits blocks the caller.
type Shell struct {
	WorkDir string
}

// Run executes a command via sh -c (cmd /C on Windows) and captures output.
func (s Shell) Run(command string) *ShellResult {
	return Run(command, s.WorkDir)
}

// Run executes a command via the platform shell and captures output.
func Run(command, workDir string) *ShellResult {
	name, flag := shellFor(runtime.GOOS)
	cmd := exec.Command(name, flag, command)
	if workDir != "" {
		cmd.Dir = workDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// The shell itself could not be started.
			exitCode = -1
			if stderr.Len() > 0 {
				stderr.WriteString("\n")
			}
			stderr.WriteString(err.Error())
		}
	}

	return &ShellResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

func shellFor(goos string) (string, string) {
	if goos == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

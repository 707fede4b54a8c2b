package runner

import "fmt"

// DryRun satisfies CommandRunner and FileWriter without touching the
// system. Every call is recorded as a human-readable line.
type DryRun struct {
	Lines []string
}

func (d *DryRun) Run(command string) *ShellResult {
	line := fmt.Sprintf("Would run: %s", command)
	d.Lines = append(d.Lines, line)
	return &ShellResult{Stdout: line + "\n"}
}

func (d *DryRun) Write(path, content string) error {
	d.Lines = append(d.Lines, fmt.Sprintf("Would write %d bytes to %s", len(content), path))
	return nil
}

// Recorder wraps a runner and a writer and counts how often each is used.
type Recorder struct {
	Runner   CommandRunner
	Writer   FileWriter
	Commands []string
	Writes   []string
}

func (r *Recorder) Run(command string) *ShellResult {
	r.Commands = append(r.Commands, command)
	return r.Runner.Run(command)
}

func (r *Recorder) Write(path, content string) error {
	r.Writes = append(r.Writes, path)
	return r.Writer.Write(path, content)
}

// Calls is the total number of side effects attempted.
func (r *Recorder) Calls() int {
	return len(r.Commands) + len(r.Writes)
}

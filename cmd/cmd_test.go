package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/engine"
)

const response = "I will create the file and show it.\n++nano note.txt++\nremember\n++EOF++\n++cat note.txt++"

// execute runs the CLI in-process and restores every flag afterwards.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHATRUN_LOG_FILE", filepath.Join(t.TempDir(), "chatrun.log"))
	t.Setenv("CHATRUN_DATA_DIR", t.TempDir())
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeResponse(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "response.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadResponse(t *testing.T) {
	path := writeResponse(t, "from file")
	got, err := readResponse([]string{path}, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readResponse(nil, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readResponse([]string{"-"}, strings.NewReader("dash"))
	require.NoError(t, err)
	assert.Equal(t, "dash", got)

	_, err = readResponse([]string{filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	out, err := execute(t, "", "parse", "--json", writeResponse(t, response))
	require.NoError(t, err)

	var actions []action.Action
	require.NoError(t, json.Unmarshal([]byte(out), &actions))
	require.Len(t, actions, 3)
	assert.Equal(t, action.KindFileWrite, actions[1].Kind)
	assert.Equal(t, "remember", actions[1].Content)
	assert.Equal(t, "cat note.txt", actions[2].Body)
}

func TestParsePlainFromStdin(t *testing.T) {
	out, err := execute(t, "++ls -la++", "parse", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "$ ls -la\n", out)
}

func TestExplain(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "explain", "--workdir", dir, writeResponse(t, response))
	require.NoError(t, err)
	assert.Contains(t, out, "The assistant wants to perform 2 action(s):")
	assert.Contains(t, out, "2. run command `cat note.txt`")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDryRun(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "dry-run", "--workdir", dir, writeResponse(t, response))
	require.NoError(t, err)
	assert.Contains(t, out, "1. Would write 8 bytes to note.txt")
	assert.Contains(t, out, "2. Would run: cat note.txt")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestExecAutoApprove(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "exec", "--auto-approve", "--no-color", "--workdir", dir, writeResponse(t, response))
	require.NoError(t, err)
	assert.Contains(t, out, "Execution results:")
	assert.Contains(t, out, "[1] write file note.txt: ok")
	assert.Contains(t, out, "stdout:\nremember\n")
	data, err := os.ReadFile(filepath.Join(dir, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "remember", string(data))
}

func TestExecAsksOnStdin(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "yes\n", "exec", "--json", "--workdir", dir, writeResponse(t, response))
	require.NoError(t, err)

	start := strings.Index(out, "{")
	require.GreaterOrEqual(t, start, 0)
	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &result))
	assert.True(t, result.Approved)
	assert.Equal(t, engine.LogExecuted, result.Log.Kind)
	assert.Len(t, result.Log.Outcomes, 2)
}

func TestExecFromStdinRefusesWithoutAutoApprove(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, response, "exec", "--no-color", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, engine.RefusalMessage)
	_, statErr := os.Stat(filepath.Join(dir, "note.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`responses:
  - |
    Creating it.
    ++nano note.txt++
    remember
    ++EOF++
  - Done, the file is there.
`), 0o644))
	return path
}

func TestChatWithScript(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "make a note\ny\nthanks\nbye\n",
		"chat", "--no-color", "--workdir", dir, "--script", writeScript(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Creating it.")
	assert.Contains(t, out, "Run these actions? [y/N]: ")
	assert.Contains(t, out, "[1] write file note.txt: ok")
	assert.Contains(t, out, "Done, the file is there.")
	assert.Contains(t, out, "Goodbye!")
	data, err := os.ReadFile(filepath.Join(dir, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "remember", string(data))
}

func TestRootRunsChatAndRecords(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "make a note\nn\nquit\n",
		"--no-color", "--workdir", dir, "--script", writeScript(t), "--record")
	require.NoError(t, err)
	assert.Contains(t, out, "Recording session to ")
	assert.Contains(t, out, engine.RefusalMessage)

	sessions, err := os.ReadDir(filepath.Join(os.Getenv("CHATRUN_DATA_DIR"), "sessions"))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	turnDir := filepath.Join(os.Getenv("CHATRUN_DATA_DIR"), "sessions", sessions[0].Name(), "turns")
	logData, err := os.ReadFile(filepath.Join(turnDir, "1.log"))
	require.NoError(t, err)
	assert.Equal(t, engine.RefusalMessage, string(logData))
}

func TestApplyFlagsLeavesUnchangedValues(t *testing.T) {
	t.Setenv("CHATRUN_MODEL", "env-model")
	_, err := execute(t, "", "parse", "--auto-approve", "-")
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Model)
	assert.True(t, cfg.AutoApprove)
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/artifact"
	"github.com/stevehiehn/chatrun/internal/config"
	"github.com/stevehiehn/chatrun/internal/engine"
	"github.com/stevehiehn/chatrun/internal/gate"
	"github.com/stevehiehn/chatrun/internal/oracle"
	"github.com/stevehiehn/chatrun/internal/render"
	"github.com/stevehiehn/chatrun/internal/runner"
	"github.com/stevehiehn/chatrun/internal/session"
)

var (
	recordSession bool
	scriptPath    string
	exitOnError   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session (default)",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func addChatFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&recordSession, "record", false, "Record every turn under the data directory")
	fs.StringVar(&scriptPath, "script", "", "Replay model responses from a YAML script instead of calling Gemini")
	fs.BoolVar(&exitOnError, "exit-on-error", true, "End the session when the model cannot be reached")
}

func init() {
	addChatFlags(rootCmd.Flags())
	addChatFlags(chatCmd.Flags())
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("record") {
		cfg.Record = recordSession
	}
	if flags.Changed("exit-on-error") {
		cfg.ExitOnError = exitOnError
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	// The chat loop and the confirmation gate share one reader.
	in := bufio.NewReader(cmd.InOrStdin())

	o, model, err := newOracle(ctx, out)
	if err != nil {
		return err
	}

	r := render.New(out, cfg.NoColor)
	g := &gate.Prompt{Reader: in, Out: out}
	e := engine.New(runner.Shell{WorkDir: cfg.WorkDir}, runner.Disk{BaseDir: cfg.WorkDir}, g, logger)

	s := session.New(o, e, r, in)
	s.Logger = logger
	s.Model = model
	s.MaxLogBytes = cfg.MaxLogBytes
	s.ExitOnError = cfg.ExitOnError
	s.Options = engine.Options{AutoApprove: cfg.AutoApprove}

	if cfg.Record {
		store, err := artifact.New(artifact.NewSessionID(), cfg.ArtifactDir())
		if err != nil {
			return err
		}
		s.Recorder = store
		fmt.Fprintf(out, "Recording session to %s\n", store.BaseDir)
		logger.Info("recording session", zap.String("session_id", store.SessionID))
	}
	return s.Run(ctx)
}

// newOracle returns the scripted oracle when --script is set and a Gemini
// chat otherwise, asking for the API key if none is configured.
func newOracle(ctx context.Context, out io.Writer) (oracle.Oracle, string, error) {
	if scriptPath != "" {
		o, err := oracle.LoadScript(scriptPath)
		if err != nil {
			return nil, "", err
		}
		return o, "script:" + scriptPath, nil
	}
	if err := config.EnsureAPIKey(cfg, config.TerminalSecret(os.Stdin), out); err != nil {
		return nil, "", err
	}
	g, err := oracle.NewGemini(ctx, oracle.GeminiConfig{
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		SystemInstruction: action.Protocol,
	}, logger)
	if err != nil {
		return nil, "", err
	}
	return g, g.Model(), nil
}

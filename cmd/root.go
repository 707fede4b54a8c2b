package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stevehiehn/chatrun/internal/config"
	"github.com/stevehiehn/chatrun/internal/logging"
)

var (
	jsonOutput  bool
	verbose     bool
	configPath  string
	autoApprove bool
	modelName   string
	noColor     bool
	workDir     string
	maxLogBytes int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chatrun",
	Short: "Chat assistant that runs the commands and file writes it proposes",
	Long: "chatrun talks to a Gemini model. Every ++command++ and ++nano file++ block in its\n" +
		"answers becomes a plan you confirm once before it runs in order.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(logging.Options{Verbose: cfg.Verbose, File: cfg.LogFile})
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("command", cmd.Name()),
			zap.String("model", cfg.Model),
			zap.Bool("auto_approve", cfg.AutoApprove))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output raw JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	flags.StringVar(&configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	flags.BoolVarP(&autoApprove, "auto-approve", "y", false, "Run proposed actions without asking")
	flags.StringVar(&modelName, "model", config.DefaultModel, "Gemini model name")
	flags.BoolVar(&noColor, "no-color", false, "Plain output without styling")
	flags.StringVar(&workDir, "workdir", "", "Directory commands and relative file paths resolve against")
	flags.IntVar(&maxLogBytes, "max-log-bytes", config.DefaultMaxLogBytes, "Cap on the outcome log fed into the next prompt (0 = no cap)")
}

// applyFlags overrides cfg with the flags given on the command line. Flags
// left at their defaults never override file or environment values.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		c.Verbose = verbose
	}
	if flags.Changed("auto-approve") {
		c.AutoApprove = autoApprove
	}
	if flags.Changed("model") {
		c.Model = modelName
	}
	if flags.Changed("no-color") {
		c.NoColor = noColor
	}
	if flags.Changed("workdir") {
		c.WorkDir = workDir
	}
	if flags.Changed("max-log-bytes") {
		c.MaxLogBytes = maxLogBytes
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/chatrun/internal/engine"
	"github.com/stevehiehn/chatrun/internal/gate"
	"github.com/stevehiehn/chatrun/internal/render"
)

var execCmd = &cobra.Command{
	Use:   "exec [response.txt]",
	Short: "Run the actions in a saved response",
	Long: "Runs the commands and file writes of one response, in order, after a single\n" +
		"confirmation. When the response is read from stdin there is no one to ask,\n" +
		"so the plan is refused unless --auto-approve is set.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResponse(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var g gate.Confirmer
		if !fromStdin(args) {
			var promptOut io.Writer = out
			if jsonOutput {
				promptOut = cmd.ErrOrStderr()
			}
			g = &gate.Prompt{Reader: bufio.NewReader(cmd.InOrStdin()), Out: promptOut}
		}

		result, err := newEngine(g).Turn(text, engine.Options{AutoApprove: cfg.AutoApprove})
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(out, result)
		}
		log := result.Log.String()
		if log == "" {
			fmt.Fprintln(out, result.Plan.Describe())
			return nil
		}
		render.New(out, cfg.NoColor).Log(result.Log, log)
		fmt.Fprintf(out, "Turn ID: %s\n", result.TurnID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}

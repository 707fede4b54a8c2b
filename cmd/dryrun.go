package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/chatrun/internal/engine"
	"github.com/stevehiehn/chatrun/internal/runner"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run [response.txt]",
	Short: "Walk through a response's plan without side effects",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResponse(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		dry := &runner.DryRun{}
		e := engine.New(dry, dry, nil, logger)
		result, err := e.Turn(text, engine.Options{AutoApprove: true})
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"result": result,
				"lines":  dry.Lines,
			})
		}
		out := cmd.OutOrStdout()
		if len(dry.Lines) == 0 {
			fmt.Fprintln(out, result.Plan.Describe())
			return nil
		}
		for i, line := range dry.Lines {
			fmt.Fprintf(out, "  %d. %s\n", i+1, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dryRunCmd)
}

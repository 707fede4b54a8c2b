package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/chatrun/internal/engine"
)

var explainCmd = &cobra.Command{
	Use:   "explain [response.txt]",
	Short: "Show the plan a response would run, without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResponse(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		result, err := newEngine(nil).Turn(text, engine.Options{Mode: engine.ModeExplain})
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Plan.Describe())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

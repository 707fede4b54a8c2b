package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stevehiehn/chatrun/internal/action"
	"github.com/stevehiehn/chatrun/internal/render"
)

var parseCmd = &cobra.Command{
	Use:   "parse [response.txt]",
	Short: "Split a response into text, command and file-write actions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResponse(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		actions := action.Parse(text)
		if jsonOutput {
			if actions == nil {
				actions = []action.Action{}
			}
			return writeJSON(cmd.OutOrStdout(), actions)
		}
		render.New(cmd.OutOrStdout(), cfg.NoColor).Actions(actions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

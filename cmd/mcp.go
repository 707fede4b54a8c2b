package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/chatrun/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd := cfg.WorkDir
		if wd == "" {
			wd, _ = os.Getwd()
		}
		return mcp.New(wd, logger).Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

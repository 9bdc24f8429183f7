package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lintwell/shell-ls/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Starts a Model Context Protocol server exposing the lint_script tool,
so agent hosts can lint shell script buffers over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer func() { _ = log.Sync() }()

		lin, _, err := newLinter(log)
		if err != nil {
			return err
		}

		return mcp.NewServer(lin, log, version).Run(cmd.Context())
	},
}

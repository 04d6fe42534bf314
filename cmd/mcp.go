package cmd

import (
	"github.com/huangsam/devscope/internal/ghclient"
	"github.com/huangsam/devscope/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the devscope MCP server",
	Long:  `Launch an MCP server that allows AI agents to explore GitHub profiles via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs already go to stderr, which keeps stdio free for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		client := ghclient.NewFromConfig(cfg, nil)
		return mcp.StartMCPServer(rootCtx, cfg, client, nil)
	},
}

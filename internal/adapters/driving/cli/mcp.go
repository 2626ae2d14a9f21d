package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the base path.

Tools:
  search_files  fuzzy file name search
  live_grep     paged content search with cursor tokens
  health_check  engine diagnostics

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  fff mcp serve --base-path ~/src/project

  # HTTP mode (for MCP Inspector, remote access)
  fff mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "fff": {
        "command": "/path/to/fff",
        "args": ["mcp", "serve", "--base-path", "/path/to/project"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if services == nil {
		return fmt.Errorf("services not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Finder:   services.Finder,
		Grep:     services.MCPGrep,
		Platform: services.Platform,
	})
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context) error {
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})
}

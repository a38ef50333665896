package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Run the MCP server over stdio",
	Long:  "Stdio MCP server exposing prepare_solve_context and update_cheatsheet. For clients that spawn the service as a child process.",
	RunE:  runMCPServer,
}

func runMCPServer(_ *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	srv := mcp.NewServer(mcp.NewToolHandler(a.orchestrator))
	return srv.Run(ctx)
}

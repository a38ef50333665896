package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/mcp"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cheatsheet HTTP server",
	Long:  `Start an HTTP server exposing the MCP tool surface, health, and metrics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config/MCP_PORT)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from config/MCP_HOST)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	host := a.cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := a.cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(a.cfg, mcp.NewToolHandler(a.orchestrator), a.metrics, a.logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	addr := fmt.Sprintf("%s:%d", host, port)
	return srv.Start(ctx, addr)
}

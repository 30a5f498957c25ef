package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/pkg/adapters/mcp"
	"github.com/aretw0/stepwise/pkg/domain"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes sessions as MCP tools so AI agents can start, drive and inspect
algorithm runs.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := newLogger(cfg)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		mgr, shutdown, err := newManager(sigCtx, cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer shutdown()

		srv := mcp.NewServer(mgr, mcp.WithBaseContext(sigCtx), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("Starting Stepwise MCP Server (Stdio)")
			err = srv.ServeStdio(sigCtx, os.Stdin, os.Stdout)
		case "sse":
			logger.Info("Starting Stepwise MCP Server (SSE)", "port", port)
			err = srv.ServeSSE(sigCtx, port)
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) && sigCtx.Err() == nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}

// ABOUTME: CLI command to run the HTTP API server
// ABOUTME: Builds the retrieval pipeline and serves it over chi
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dsamentor/dsa-mentor/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server exposing the retrieval pipeline.

Endpoints:
  POST /api/query         Answer a query as JSON
  POST /api/query/stream  Answer a query as a server-sent event stream
  GET  /healthz           Health check

Examples:
  mentor serve
  mentor serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	pipeline, cfg, cleanup, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Starting DSA Mentor API on %s\n", addr)
	}
	return server.New(pipeline, addr).ListenAndServe()
}

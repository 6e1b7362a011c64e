// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Wires serve, search, ingest, and version under one cobra tree
package commands

import (
	"github.com/spf13/cobra"
)

const banner = `
██████╗ ███████╗ █████╗     ███╗   ███╗███████╗███╗   ██╗████████╗ ██████╗ ██████╗
██╔══██╗██╔════╝██╔══██╗    ████╗ ████║██╔════╝████╗  ██║╚══██╔══╝██╔═══██╗██╔══██╗
██║  ██║███████╗███████║    ██╔████╔██║█████╗  ██╔██╗ ██║   ██║   ██║   ██║██████╔╝
██║  ██║╚════██║██╔══██║    ██║╚██╔╝██║██╔══╝  ██║╚██╗██║   ██║   ██║   ██║██╔══██╗
██████╔╝███████║██║  ██║    ██║ ╚═╝ ██║███████╗██║ ╚████║   ██║   ╚██████╔╝██║  ██║
╚═════╝ ╚══════╝╚═╝  ╚═╝    ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝
`

// Global flags shared by all commands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with global flags and subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "DSA learning assistant with semantic retrieval",
		Long: banner + `
DSA Mentor answers Data Structures and Algorithms questions by ranking
an embedded corpus with cosine similarity, classifying query intent,
and suggesting practice questions and videos.

Run 'mentor serve' to start the HTTP API or 'mentor search' for a
one-off answer from the terminal.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// ABOUTME: CLI command to answer a single query from the terminal
// ABOUTME: Runs the full retrieval pipeline and prints the assembled response
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

var searchTop int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Answer a DSA question",
		Long: `Answer a DSA question using semantic retrieval over the corpus.

The query is classified, embedded, and ranked against the content and
Q&A corpora. Greetings and chit-chat get short answers without touching
the corpus.

Examples:
  mentor search "how does merge sort work?"
  mentor search --format json "explain binary search trees"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTop, "top", 5, "Maximum related questions to display")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	// Validate top flag
	if err := validatePositiveInt(searchTop, "top"); err != nil {
		return err
	}

	pipeline, _, cleanup, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	resp, err := pipeline.Answer(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printResponse(cmd, resp)
	return nil
}

func printResponse(cmd *cobra.Command, resp *models.Response) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# %s\n\n", resp.BestBook.Title)
	if resp.BestBook.Similarity > 0 {
		fmt.Fprintf(out, "Similarity: %.3f\n\n", resp.BestBook.Similarity)
	}
	fmt.Fprintf(out, "%s\n", resp.BestBook.Content)

	if resp.Summary != "" {
		fmt.Fprintf(out, "\nSummary: %s\n", resp.Summary)
	}

	topQA := resp.TopQA
	if len(topQA) > searchTop {
		topQA = topQA[:searchTop]
	}
	if len(topQA) > 0 {
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSECTION\tQUESTION\n")
		fmt.Fprintf(w, "-----\t-------\t--------\n")
		for _, qa := range topQA {
			section := qa.Section
			if section == "" {
				section = "(no section)"
			}
			fmt.Fprintf(w, "%.3f\t%s\t%s\n",
				qa.Similarity,
				truncate(section, 20),
				truncate(qa.Question, 60))
		}
		w.Flush()
	}

	if len(resp.Videos) > 0 {
		fmt.Fprintf(out, "\nVideos:\n")
		for _, v := range resp.Videos {
			fmt.Fprintf(out, "  - %s (%s) %s\n", v.Title, v.Duration, v.VideoURL)
		}
	}

	if !quiet && len(resp.TopQA) > 0 {
		fmt.Fprintf(out, "\nFound %d related question(s)\n", len(resp.TopQA))
	}
}

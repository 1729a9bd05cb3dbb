package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search indexed schedule entries",
	Long: `Search the indexed schedule entries by similarity without asking the
model, for inspecting what the assistant would retrieve.

Examples:
  schedassist search -q "Wednesday afternoon"
  schedassist search -q "standup" -k 5 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer app.close()

	topK := cfg.Retrieve.SearchTopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	ranked, err := app.retriever.Rank(cmd.Context(), searchQuery, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]searchResult, len(ranked))
	for i, sc := range ranked {
		results[i] = searchResult{ID: sc.Record.ID, Score: sc.Score, Text: sc.Record.Text}
	}

	if searchJSON {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	for i, res := range results {
		fmt.Printf("%d. [%.3f] %s\n", i+1, res.Score, res.Text)
	}
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schedassist/internal/domain"
)

var (
	askQuery string
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask an availability question",
	Long: `Ask a natural-language availability question against the indexed
schedule.

Examples:
  schedassist ask -q "Am I free Wednesday at 3pm?"
  schedassist ask -q "What's on Monday morning?" --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question (required)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer app.close()

	ans, err := app.ask.Ask(cmd.Context(), askQuery)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return json.NewEncoder(os.Stdout).Encode(ans)
	}

	verdict := color.New(color.FgGreen, color.Bold).SprintFunc()
	if ans.Availability == domain.Busy {
		verdict = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	fmt.Printf("%s  %s\n", verdict(string(ans.Availability)), ans.NextSlot)
	return nil
}

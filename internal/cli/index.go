package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"schedassist/internal/adapter/fs"
)

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Bulk-index schedule files from disk",
	Long: `Index schedule documents found under the given paths (default: current
directory). Files matching the configured include globs are split into
line chunks, embedded, and written to the chunk store.

Examples:
  schedassist index ./schedules
  schedassist index week1.txt week2.pdf`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	app, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer app.close()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)

	var files []string
	for _, root := range roots {
		if isFile(root) {
			files = append(files, root)
			continue
		}
		found, err := walker.Walk(root)
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", root, err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		fmt.Println("No schedule files found.")
		return nil
	}

	totalChunks := 0
	for _, path := range files {
		var bar *progressbar.ProgressBar

		app.ingest.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Indexing[reset] %s", path)),
					progressbar.OptionOnCompletion(func() {
						fmt.Println()
					}),
				)
			}
			bar.Set(done)
		}

		count, err := app.ingest.IngestFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", path, err)
		}
		totalChunks += count
	}

	fmt.Printf("Indexed %d schedule entries from %d files\n", totalChunks, len(files))
	return nil
}

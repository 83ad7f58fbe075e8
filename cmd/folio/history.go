package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/history"
	"github.com/pdiddy/folio/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long: `History lists past conversions recorded by the convert command, newest
first: source directory, output path, page count, and fallback DPI.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of records to list (default 20)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")
	historyCmd.Flags().Bool("yaml", false, "output records as YAML")
	historyCmd.Flags().String("history-dir", "", "history database directory (default: ~/.local/share/folio)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viper.GetString("history_dir")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(types.HistoryConfig{HistoryDir: dir})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return store.ExportJSON(ctx, os.Stdout, limit)
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return store.ExportYAML(ctx, os.Stdout, limit)
	}

	recs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("%s  %s -> %s (%d pages, fallback DPI %d)\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.InputDir, rec.OutputPDF, rec.Pages, rec.FallbackDPI)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/enumerate"
	"github.com/pdiddy/folio/internal/history"
	"github.com/pdiddy/folio/internal/render"
	"github.com/pdiddy/folio/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <image-dir>",
	Short: "Merge a folder of images into a single PDF",
	Long: `Convert enumerates the supported images of a directory in natural order
and writes one PDF page per image. Each page is sized from the image's pixel
dimensions and DPI metadata (1 inch = 72 points); the image fills the page
exactly, without margins or aspect-ratio correction.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "destination PDF path (default: <image-dir>/output.pdf)")
	convertCmd.Flags().Int("fallback-dpi", 0, "DPI for images without density metadata, 72-600 (default 300)")
	convertCmd.Flags().Bool("skip-validate", false, "skip the structural check of the written PDF")
	convertCmd.Flags().Bool("no-history", false, "do not record the conversion in the history store")

	rootCmd.AddCommand(convertCmd)
}

// resolveFallbackDPI applies flag, config, and default precedence, then
// bounds-checks the result.
func resolveFallbackDPI(cmd *cobra.Command) (int, error) {
	dpi, _ := cmd.Flags().GetInt("fallback-dpi")
	if dpi == 0 {
		dpi = viper.GetInt("fallback_dpi")
	}
	if dpi < types.MinDPI || dpi > types.MaxDPI {
		return 0, fmt.Errorf("fallback DPI %d out of range [%d, %d]", dpi, types.MinDPI, types.MaxDPI)
	}
	return dpi, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("input directory %s does not exist or is not a directory", inputDir)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(inputDir, "output.pdf")
	}
	parent := filepath.Dir(output)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %s does not exist", parent)
	}

	dpi, err := resolveFallbackDPI(cmd)
	if err != nil {
		return err
	}
	skipValidate, _ := cmd.Flags().GetBool("skip-validate")

	cfg := types.ConvertConfig{
		InputDir:     inputDir,
		OutputPDF:    output,
		FallbackDPI:  dpi,
		SkipValidate: skipValidate,
	}

	res, err := render.Render(cfg, os.Stdout)
	if err != nil {
		if errors.Is(err, enumerate.ErrNoImages) {
			return fmt.Errorf("no supported images found in %s", inputDir)
		}
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordConversion(cmd.Context(), cfg, res)
	}

	fmt.Printf("Wrote %s (%d pages)\n", res.OutputPDF, res.Pages)
	return nil
}

// recordConversion logs the run in the history store. History failures are
// reported but never fail a conversion that already produced its PDF.
func recordConversion(ctx context.Context, cfg types.ConvertConfig, res render.Result) {
	store, err := history.NewStore(types.HistoryConfig{HistoryDir: viper.GetString("history_dir")})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	rec := types.ConversionRecord{
		InputDir:    cfg.InputDir,
		OutputPDF:   res.OutputPDF,
		Pages:       res.Pages,
		FallbackDPI: cfg.FallbackDPI,
	}
	if err := store.Record(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
	}
}

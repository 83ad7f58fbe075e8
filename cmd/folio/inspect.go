package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/folio/internal/enumerate"
	"github.com/pdiddy/folio/internal/render"
	"github.com/pdiddy/folio/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image-dir>",
	Short: "Show the page plan for a folder without writing a PDF",
	Long: `Inspect enumerates and orders the images the way convert would, computes
each page's dimensions in points, and prints the plan. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("fallback-dpi", 0, "DPI for images without density metadata, 72-600 (default 300)")
	inspectCmd.Flags().Bool("json", false, "output the page plan as JSON")
	inspectCmd.Flags().Bool("yaml", false, "output the page plan as YAML")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("input directory %s does not exist or is not a directory", inputDir)
	}

	dpi, err := resolveFallbackDPI(cmd)
	if err != nil {
		return err
	}

	cfg := types.InspectConfig{InputDir: inputDir, FallbackDPI: dpi}
	pages, err := render.PlanDir(cfg)
	if err != nil {
		if errors.Is(err, enumerate.ErrNoImages) {
			return fmt.Errorf("no supported images found in %s", inputDir)
		}
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		data, err := yaml.Marshal(pages)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	printPagePlan(pages, dpi)
	return nil
}

func printPagePlan(pages []types.PageInfo, fallbackDPI int) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tFILE\tPIXELS\tDPI\tPOINTS")
	for i, p := range pages {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%.0fx%.0f (%s)\t%.1f x %.1f\n",
			i+1, filepath.Base(p.Path), p.WidthPx, p.HeightPx,
			p.XDPI, p.YDPI, p.Source,
			p.Geometry.WidthPt, p.Geometry.HeightPt)
	}
	tw.Flush()
	fmt.Printf("\n%d pages, fallback DPI %d\n", len(pages), fallbackDPI)
}

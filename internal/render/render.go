// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles the output PDF: one page per image, page size
// derived from pixel dimensions and density.
package render

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/folio/internal/enumerate"
	"github.com/pdiddy/folio/internal/imagemeta"
	"github.com/pdiddy/folio/internal/normalize"
	"github.com/pdiddy/folio/pkg/types"
)

// Result summarizes a completed conversion.
type Result struct {
	Pages     int
	OutputPDF string
}

// Geometry converts pixel dimensions to page dimensions in points. Metadata
// density applies only when both axes are positive; otherwise the fallback
// DPI sizes both axes. points = pixels / dpi * 72.
func Geometry(widthPx, heightPx int, xdpi, ydpi float64, fallbackDPI int) (types.PageGeometry, types.DPISource) {
	source := types.DPIFromMetadata
	if xdpi <= 0 || ydpi <= 0 {
		xdpi = float64(fallbackDPI)
		ydpi = float64(fallbackDPI)
		source = types.DPIFromFallback
	}
	return types.PageGeometry{
		WidthPt:  float64(widthPx) / xdpi * types.PointsPerInch,
		HeightPt: float64(heightPx) / ydpi * types.PointsPerInch,
	}, source
}

// pageInfo builds the per-page record from measured dimensions and density.
func pageInfo(path string, widthPx, heightPx int, xdpi, ydpi float64, fallbackDPI int) types.PageInfo {
	geom, source := Geometry(widthPx, heightPx, xdpi, ydpi, fallbackDPI)
	if source == types.DPIFromFallback {
		xdpi = float64(fallbackDPI)
		ydpi = float64(fallbackDPI)
	}
	return types.PageInfo{
		Path:     path,
		WidthPx:  widthPx,
		HeightPx: heightPx,
		XDPI:     xdpi,
		YDPI:     ydpi,
		Source:   source,
		Geometry: geom,
	}
}

// Plan computes the page geometry for each file without producing a PDF.
// Files decode fully so EXIF rotation affects the reported dimensions the
// same way it does during conversion.
func Plan(files []string, fallbackDPI int) ([]types.PageInfo, error) {
	pages := make([]types.PageInfo, 0, len(files))
	for _, path := range files {
		img, _, err := normalize.Decode(path)
		if err != nil {
			return nil, err
		}
		xdpi, ydpi := imagemeta.Resolution(path)
		b := img.Bounds()
		pages = append(pages, pageInfo(path, b.Dx(), b.Dy(), xdpi, ydpi, fallbackDPI))
	}
	return pages, nil
}

// PlanDir enumerates cfg.InputDir and computes its page plan without
// producing a PDF. It propagates enumerate.ErrNoImages like Render does.
func PlanDir(cfg types.InspectConfig) ([]types.PageInfo, error) {
	files, err := enumerate.List(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	return Plan(files, cfg.FallbackDPI)
}

// Render converts cfg.InputDir into a single PDF at cfg.OutputPDF, one page
// per image in natural order, each image stretched to fill its page exactly.
// Per-file status lines stream to w. A decode or write failure propagates
// with the offending path; the destination may be left incomplete.
func Render(cfg types.ConvertConfig, w io.Writer) (Result, error) {
	files, err := enumerate.List(cfg.InputDir)
	if err != nil {
		return Result{}, err
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for i, path := range files {
		img, format, err := normalize.Decode(path)
		if err != nil {
			return Result{}, err
		}
		flat := normalize.Flatten(img)
		xdpi, ydpi := imagemeta.Resolution(path)
		b := flat.Bounds()
		page := pageInfo(path, b.Dx(), b.Dy(), xdpi, ydpi, cfg.FallbackDPI)

		data, tag, err := normalize.Encode(flat, format)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}

		doc.AddPageFormat("P", fpdf.SizeType{Wd: page.Geometry.WidthPt, Ht: page.Geometry.HeightPt})

		name := fmt.Sprintf("page%d", i+1)
		opts := fpdf.ImageOptions{ImageType: tag, ReadDpi: false}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		doc.ImageOptions(name, 0, 0, page.Geometry.WidthPt, page.Geometry.HeightPt, false, opts, 0, "")
		if doc.Err() {
			return Result{}, fmt.Errorf("%s: %w", path, doc.Error())
		}

		fmt.Fprintf(w, "page %d: %s (%dx%d px, %s %.0f dpi, %.1fx%.1f pt)\n",
			i+1, path, page.WidthPx, page.HeightPx, page.Source, page.XDPI,
			page.Geometry.WidthPt, page.Geometry.HeightPt)
	}

	if err := doc.OutputFileAndClose(cfg.OutputPDF); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", cfg.OutputPDF, err)
	}

	if !cfg.SkipValidate {
		if err := api.ValidateFile(cfg.OutputPDF, model.NewDefaultConfiguration()); err != nil {
			return Result{}, fmt.Errorf("validating %s: %w", cfg.OutputPDF, err)
		}
	}

	return Result{Pages: len(files), OutputPDF: cfg.OutputPDF}, nil
}

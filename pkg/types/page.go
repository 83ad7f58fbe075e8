// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PointsPerInch is the typographic conversion factor: 1 inch = 72 points.
const PointsPerInch = 72.0

// DPISource records where a page's density came from.
type DPISource string

const (
	DPIFromMetadata DPISource = "metadata"
	DPIFromFallback DPISource = "fallback"
)

// PageGeometry holds physical page dimensions in typographic points.
type PageGeometry struct {
	WidthPt  float64 `json:"width_pt" yaml:"width_pt"`
	HeightPt float64 `json:"height_pt" yaml:"height_pt"`
}

// PageInfo describes one planned PDF page: the source image, its pixel
// dimensions after orientation, the density used, and the resulting geometry.
type PageInfo struct {
	// Path is the source image file.
	Path string `json:"path" yaml:"path"`

	// WidthPx and HeightPx are pixel dimensions with EXIF rotation applied.
	WidthPx  int `json:"width_px" yaml:"width_px"`
	HeightPx int `json:"height_px" yaml:"height_px"`

	// XDPI and YDPI are the densities used for sizing; equal to the fallback
	// when Source is "fallback".
	XDPI float64 `json:"x_dpi" yaml:"x_dpi"`
	YDPI float64 `json:"y_dpi" yaml:"y_dpi"`

	// Source indicates whether the density came from file metadata or the
	// configured fallback.
	Source DPISource `json:"dpi_source" yaml:"dpi_source"`

	Geometry PageGeometry `json:"geometry" yaml:"geometry"`
}

// ConversionRecord holds one completed conversion for the history store.
type ConversionRecord struct {
	// InputDir is the source directory that was converted.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputPDF is the path the document was written to.
	OutputPDF string `json:"output_pdf" yaml:"output_pdf"`

	// Pages is the number of pages in the produced document.
	Pages int `json:"pages" yaml:"pages"`

	// FallbackDPI is the fallback density the run was configured with.
	FallbackDPI int `json:"fallback_dpi" yaml:"fallback_dpi"`

	// CreatedAt is when the conversion finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

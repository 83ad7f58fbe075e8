// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize decodes image files and flattens them into opaque 8-bit
// RGB suitable for PDF embedding.
package normalize

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	// Decoders for the supported formats beyond the stdlib set. TIFF and BMP
	// also come with the imaging library; registering twice is harmless.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegQuality is used when re-encoding JPEG sources for embedding.
const jpegQuality = 95

// Decode reads the image at path with EXIF orientation applied, so the pixel
// data matches the intended display orientation. It returns the image and
// the registered format name ("jpeg", "png", ...).
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	// Sniff the format first; imaging.Decode discards it.
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewinding %s: %w", path, err)
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// Flatten converts img to an opaque *image.NRGBA. The cases are closed and
// total: images with transparency are composited over an opaque white
// background of the same pixel dimensions; everything else (palette, CMYK,
// gray, YCbCr, RGB) converts directly to 8-bit RGBA with full alpha.
func Flatten(img image.Image) *image.NRGBA {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return imaging.Clone(img)
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// Encode serializes a flattened image for embedding. JPEG sources re-encode
// as JPEG to keep file sizes photographic; everything else embeds lossless
// PNG. The returned tag is the embedder's image-type name.
func Encode(img *image.NRGBA, sourceFormat string) ([]byte, string, error) {
	var buf bytes.Buffer
	if strings.EqualFold(sourceFormat, "jpeg") {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encoding JPEG: %w", err)
		}
		return buf.Bytes(), "JPEG", nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), "PNG", nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagemeta reads physical density (DPI) metadata from image files.
//
// Missing or malformed density is a normal condition, not an error: every
// reader degrades to (0, 0) and the caller applies its fallback DPI. Readers
// touch only headers and metadata segments, never pixel data.
package imagemeta

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
)

// inchesPerMetre converts pixels-per-metre densities (PNG pHYs, BMP header)
// to dots per inch.
const inchesPerMetre = 0.0254

// Resolution returns the per-axis density of the image at path in dots per
// inch, or (0, 0) when the file carries none. The extension selects the
// reader; WebP has no standard density field and always yields (0, 0).
func Resolution(path string) (xdpi, ydpi float64) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpegResolution(data)
	case ".png":
		return pngResolution(data)
	case ".tif", ".tiff":
		return tiffResolution(data)
	case ".bmp":
		return bmpResolution(data)
	}
	return 0, 0
}

// pngResolution reads the pHYs chunk: pixels per unit on each axis plus a
// unit byte (1 = metre). The scan stops at IDAT since pHYs must precede it.
func pngResolution(data []byte) (float64, float64) {
	const sigLen = 8
	if len(data) < sigLen || string(data[:4]) != "\x89PNG" {
		return 0, 0
	}
	pos := sigLen
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		ctype := string(data[pos+4 : pos+8])
		body := pos + 8
		if body+length > len(data) {
			return 0, 0
		}
		switch ctype {
		case "pHYs":
			if length < 9 {
				return 0, 0
			}
			ppuX := binary.BigEndian.Uint32(data[body : body+4])
			ppuY := binary.BigEndian.Uint32(data[body+4 : body+8])
			if data[body+8] != 1 { // unit: 1 = metre, 0 = aspect ratio only
				return 0, 0
			}
			return sanitize(float64(ppuX)*inchesPerMetre, float64(ppuY)*inchesPerMetre)
		case "IDAT", "IEND":
			return 0, 0
		}
		pos = body + length + 4 // skip CRC
	}
	return 0, 0
}

// bmpResolution reads biXPelsPerMeter/biYPelsPerMeter from the
// BITMAPINFOHEADER. Headers older than 40 bytes carry no density.
func bmpResolution(data []byte) (float64, float64) {
	const (
		fileHeaderLen = 14
		infoHeaderMin = 40
		xppmOffset    = fileHeaderLen + 24
		yppmOffset    = fileHeaderLen + 28
	)
	if len(data) < fileHeaderLen+infoHeaderMin || string(data[:2]) != "BM" {
		return 0, 0
	}
	if binary.LittleEndian.Uint32(data[fileHeaderLen:fileHeaderLen+4]) < infoHeaderMin {
		return 0, 0
	}
	xppm := int32(binary.LittleEndian.Uint32(data[xppmOffset : xppmOffset+4]))
	yppm := int32(binary.LittleEndian.Uint32(data[yppmOffset : yppmOffset+4]))
	return sanitize(float64(xppm)*inchesPerMetre, float64(yppm)*inchesPerMetre)
}

// sanitize zeroes non-finite or negative densities so callers only ever see
// usable values or the (0, 0) "absent" pair.
func sanitize(x, y float64) (float64, float64) {
	if x <= 0 || y <= 0 || x != x || y != y {
		return 0, 0
	}
	return x, y
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enumerate lists the image files of a directory in natural order.
package enumerate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoImages is returned by List when the directory contains no file with a
// supported image extension. Callers surface this distinctly from I/O errors.
var ErrNoImages = errors.New("no supported images found")

// supportedExt holds the extensions List accepts, lowercased with leading dot.
var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// Supported reports whether name has a supported image extension
// (case-insensitive).
func Supported(name string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(name))]
}

// List returns the paths of the supported image files directly inside dir,
// ordered by natural comparison of their base names: embedded digit runs
// compare as integers, so "img2" sorts before "img10". Subdirectories and
// files with other extensions are skipped. Returns ErrNoImages (wrapped with
// the directory) when nothing qualifies.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImages)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(filepath.Base(files[i]), filepath.Base(files[j]))
	})
	return files, nil
}

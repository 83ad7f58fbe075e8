// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG encodes img to a file under a temp dir and returns the path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDecode_PNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	path := writePNG(t, src)

	img, format, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420), nil))
	path := filepath.Join(t.TempDir(), "test.jpg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, format, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

// exifOrientationSegment builds a JPEG APP1 segment holding a little-endian
// TIFF block with a single Orientation tag.
func exifOrientationSegment(orientation uint16) []byte {
	var tiff bytes.Buffer
	tiff.WriteString("II")                                    // little-endian
	binary.Write(&tiff, binary.LittleEndian, uint16(42))      // TIFF magic
	binary.Write(&tiff, binary.LittleEndian, uint32(8))       // IFD0 offset
	binary.Write(&tiff, binary.LittleEndian, uint16(1))       // one entry
	binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))  // Orientation
	binary.Write(&tiff, binary.LittleEndian, uint16(3))       // SHORT
	binary.Write(&tiff, binary.LittleEndian, uint32(1))       // count
	binary.Write(&tiff, binary.LittleEndian, uint32(orientation))
	binary.Write(&tiff, binary.LittleEndian, uint32(0)) // no next IFD

	var seg bytes.Buffer
	seg.Write([]byte{0xff, 0xe1})
	binary.Write(&seg, binary.BigEndian, uint16(2+6+tiff.Len()))
	seg.WriteString("Exif\x00\x00")
	seg.Write(tiff.Bytes())
	return seg.Bytes()
}

func TestDecode_EXIFOrientation(t *testing.T) {
	// A 2x1 row, dark pixel left, bright pixel right.
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 20})
	src.SetGray(1, 0, color.Gray{Y: 235})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	// Splice an Orientation=6 APP1 (rotate 90 clockwise) after SOI.
	encoded := buf.Bytes()
	out := append([]byte{}, encoded[:2]...)
	out = append(out, exifOrientationSegment(6)...)
	out = append(out, encoded[2:]...)
	path := filepath.Join(t.TempDir(), "rotated.jpg")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	img, format, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	// The row becomes a column: dark on top, bright below.
	require.Equal(t, 1, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
	top, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	bottom, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y+1).RGBA()
	assert.Less(t, top, bottom)
}

func TestDecode_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	_, _, err := Decode(path)
	assert.Error(t, err)
}

func TestFlatten_CompositesAlphaOverWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255}) // opaque
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0})      // fully transparent

	out := Flatten(src)

	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			assert.EqualValues(t, 255, out.NRGBAAt(x, y).A, "pixel (%d,%d) alpha", x, y)
		}
	}
	// Opaque regions are unchanged; transparent ones become white.
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(1, 0))
}

func TestFlatten_PartialAlphaBlends(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	out := Flatten(src)
	got := out.NRGBAAt(0, 0)
	assert.EqualValues(t, 255, got.A)
	// Black at ~50% over white lands mid-gray.
	assert.InDelta(t, 127, int(got.R), 2)
	assert.InDelta(t, 127, int(got.G), 2)
	assert.InDelta(t, 127, int(got.B), 2)
}

func TestFlatten_OpaquePassthrough(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 100), G: uint8(y * 100), B: 50, A: 255})
		}
	}

	out := Flatten(src)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, src.NRGBAAt(x, y), out.NRGBAAt(x, y))
		}
	}
}

func TestFlatten_GrayAndPaletteConvert(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})
	out := Flatten(gray)
	assert.Equal(t, color.NRGBA{R: 77, G: 77, B: 77, A: 255}, out.NRGBAAt(0, 0))

	pal := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{
		color.NRGBA{R: 200, G: 100, B: 50, A: 255},
	})
	out = Flatten(pal)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out.NRGBAAt(0, 0))
}

func TestFlatten_NonZeroOriginBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 100})

	out := Flatten(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
}

func TestEncode_JPEGSourceStaysJPEG(t *testing.T) {
	img := Flatten(image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	data, tag, err := Encode(img, "jpeg")
	require.NoError(t, err)
	assert.Equal(t, "JPEG", tag)

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestEncode_OthersBecomePNG(t *testing.T) {
	img := Flatten(image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	for _, source := range []string{"png", "webp", "tiff", "bmp"} {
		data, tag, err := Encode(img, source)
		require.NoError(t, err)
		assert.Equal(t, "PNG", tag, "source %s", source)

		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	}
}

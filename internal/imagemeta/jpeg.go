package imagemeta

import (
	"bytes"
	"encoding/binary"

	"github.com/rwcarlsen/goexif/exif"
)

// JPEG markers relevant to the metadata scan.
const (
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerSOS  = 0xda
	markerAPP0 = 0xe0
)

// jpegResolution prefers the JFIF APP0 density and falls back to the EXIF
// resolution tags. Cameras typically write EXIF only; scanners and editors
// tend to fill in JFIF.
func jpegResolution(data []byte) (float64, float64) {
	if x, y := jfifDensity(data); x > 0 && y > 0 {
		return x, y
	}
	return exifResolution(data)
}

// jfifDensity walks the JPEG marker segments up to SOS and reads the density
// fields of a JFIF APP0 segment, if present. Unit byte: 1 = dots per inch,
// 2 = dots per centimetre, 0 = aspect ratio only (no physical density).
func jfifDensity(data []byte) (float64, float64) {
	if len(data) < 4 || data[0] != 0xff || data[1] != markerSOI {
		return 0, 0
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xff {
			return 0, 0
		}
		marker := data[pos+1]
		if marker == markerSOS || marker == markerEOI {
			return 0, 0
		}
		// Standalone markers (TEM, RSTn) carry no length field.
		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7) {
			pos += 2
			continue
		}
		segLen := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if segLen < 2 || pos+2+segLen > len(data) {
			return 0, 0
		}
		payload := data[pos+4 : pos+2+segLen]
		if marker == markerAPP0 && len(payload) >= 12 && bytes.Equal(payload[:5], []byte("JFIF\x00")) {
			unit := payload[7]
			xd := float64(binary.BigEndian.Uint16(payload[8:10]))
			yd := float64(binary.BigEndian.Uint16(payload[10:12]))
			switch unit {
			case 1:
				return sanitize(xd, yd)
			case 2:
				return sanitize(xd*2.54, yd*2.54)
			}
			return 0, 0
		}
		pos += 2 + segLen
	}
	return 0, 0
}

// tiffResolution reads the IFD0 resolution tags of a raw TIFF stream. The
// EXIF reader accepts bare TIFF headers as well as JPEG-embedded ones.
func tiffResolution(data []byte) (float64, float64) {
	return exifResolution(data)
}

// exifResolution reads XResolution/YResolution plus ResolutionUnit
// (2 = inches, 3 = centimetres; inches when the tag is missing).
func exifResolution(data []byte) (float64, float64) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}

	xdpi := ratTag(x, exif.XResolution)
	ydpi := ratTag(x, exif.YResolution)

	if tag, err := x.Get(exif.ResolutionUnit); err == nil {
		if unit, err := tag.Int(0); err == nil && unit == 3 {
			xdpi *= 2.54
			ydpi *= 2.54
		}
	}
	return sanitize(xdpi, ydpi)
}

// ratTag returns the named rational tag as a float, or 0.
func ratTag(x *exif.Exif, name exif.FieldName) float64 {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

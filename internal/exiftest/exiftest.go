// Package exiftest builds small JPEG fixtures carrying an EXIF
// DateTimeOriginal tag.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003

	typeASCII = 2
	typeLong  = 4
)

// Gradient returns a deterministic w×h test image.
func Gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 96,
				A: 255,
			})
		}
	}
	return img
}

// JPEG encodes a w×h image and, when dateTimeOriginal is not empty, inserts
// an APP1 segment whose EXIF sub-IFD holds it verbatim.
func JPEG(w, h int, dateTimeOriginal string) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Gradient(w, h), &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	if dateTimeOriginal == "" {
		return buf.Bytes(), nil
	}

	raw := buf.Bytes()
	app1 := App1(dateTimeOriginal)

	// SOI, then APP1, then the rest of the stream.
	out := make([]byte, 0, len(raw)+len(app1))
	out = append(out, raw[:2]...)
	out = append(out, app1...)
	out = append(out, raw[2:]...)
	return out, nil
}

// PNG encodes a w×h image without any metadata.
func PNG(w, h int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Gradient(w, h)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// App1 returns a complete JPEG APP1 segment (marker included).
func App1(dateTimeOriginal string) []byte {
	tiff := tiffWithDateTimeOriginal(dateTimeOriginal)

	var seg bytes.Buffer
	seg.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&seg, binary.BigEndian, uint16(2+6+len(tiff)))
	seg.WriteString("Exif\x00\x00")
	seg.Write(tiff)
	return seg.Bytes()
}

// tiffWithDateTimeOriginal lays out a big-endian TIFF structure:
//
//	0   header (8 bytes)
//	8   IFD0 with one entry pointing at the EXIF IFD (18 bytes)
//	26  EXIF IFD with one DateTimeOriginal entry (18 bytes)
//	44  NUL terminated value, unless it fits inline
func tiffWithDateTimeOriginal(value string) []byte {
	const (
		ifd0Offset  = 8
		exifOffset  = ifd0Offset + 2 + 12 + 4
		valueOffset = exifOffset + 2 + 12 + 4
	)
	data := append([]byte(value), 0)

	var b bytes.Buffer
	be := binary.BigEndian
	b.WriteString("MM")
	_ = binary.Write(&b, be, uint16(42))
	_ = binary.Write(&b, be, uint32(ifd0Offset))

	_ = binary.Write(&b, be, uint16(1))
	_ = binary.Write(&b, be, uint16(tagExifIFDPointer))
	_ = binary.Write(&b, be, uint16(typeLong))
	_ = binary.Write(&b, be, uint32(1))
	_ = binary.Write(&b, be, uint32(exifOffset))
	_ = binary.Write(&b, be, uint32(0))

	_ = binary.Write(&b, be, uint16(1))
	_ = binary.Write(&b, be, uint16(tagDateTimeOriginal))
	_ = binary.Write(&b, be, uint16(typeASCII))
	_ = binary.Write(&b, be, uint32(len(data)))
	if len(data) <= 4 {
		// Short values live inside the entry itself.
		var inline [4]byte
		copy(inline[:], data)
		b.Write(inline[:])
		_ = binary.Write(&b, be, uint32(0))
		return b.Bytes()
	}
	_ = binary.Write(&b, be, uint32(valueOffset))
	_ = binary.Write(&b, be, uint32(0))

	b.Write(data)
	return b.Bytes()
}

/*
Package texture implements a decoder and encoder for the nine texture
formats understood by the Nintendo 64 graphics microcode.

A texture is stored as raw pixel data with no header, so the format and
dimensions have to come from elsewhere. Pixels are packed in raster order,
top to bottom and left to right, with every multi-byte value big-endian.
Formats using four bits per pixel store two pixels per byte, the first in
the high nibble.

	Format  Bits  Layout
	I4      4     intensity, doubles as alpha
	I8      8     intensity, doubles as alpha
	IA4     4     3-bit intensity, 1-bit alpha
	IA8     8     4-bit intensity, 4-bit alpha
	IA16    16    8-bit intensity, 8-bit alpha
	CI4     4     index into a 16 entry palette
	CI8     8     index into a 256 entry palette
	RGBA16  16    5-5-5-1 packed color
	RGBA32  32    8 bits per channel
*/
package texture

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
)

var (
	// ErrTruncatedInput is returned when there is less pixel data than the
	// format and dimensions require.
	ErrTruncatedInput = errors.New("texture: truncated input")
	// ErrMissingPalette is returned when decoding a color indexed texture
	// without a palette.
	ErrMissingPalette = errors.New("texture: missing palette")
	// ErrPaletteIndexOutOfRange is returned when a pixel refers to a
	// palette entry that does not exist.
	ErrPaletteIndexOutOfRange = errors.New("texture: palette index out of range")
)

// Format is one of the native texture formats.
type Format int

// Supported formats
const (
	I4 Format = iota
	I8
	IA4
	IA8
	IA16
	CI4
	CI8
	RGBA16
	RGBA32
)

var formatNames = [...]string{"i4", "i8", "ia4", "ia8", "ia16", "ci4", "ci8", "rgba16", "rgba32"}

// Formats lists every supported format.
var Formats = []Format{I4, I8, IA4, IA8, IA16, CI4, CI8, RGBA16, RGBA32}

func (f Format) String() string {
	if f < I4 || f > RGBA32 {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format matching name, ignoring case.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("texture: unknown format %q", name)
}

// BitsPerPixel returns how many bits one pixel occupies.
func (f Format) BitsPerPixel() int {
	switch f {
	case I4, IA4, CI4:
		return 4
	case I8, IA8, CI8:
		return 8
	case IA16, RGBA16:
		return 16
	case RGBA32:
		return 32
	}
	return 0
}

// PackedSize returns the number of bytes needed to hold a width by height
// texture.
func (f Format) PackedSize(width, height int) int {
	return (width*height*f.BitsPerPixel() + 7) >> 3
}

// Indexed reports whether the format needs a palette.
func (f Format) Indexed() bool {
	return f == CI4 || f == CI8
}

// Image is a native texture.
type Image struct {
	Format Format
	Width  int
	Height int
	Data   []byte
}

// Read reads all of r as the pixel data of a texture.
func Read(r io.Reader, format Format, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture: invalid dimensions %dx%d", width, height)
	}

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &Image{
		Format: format,
		Width:  width,
		Height: height,
		Data:   b,
	}, nil
}

// ColorType is the color type of an external pixel buffer, using the same
// values as the PNG IHDR chunk.
type ColorType uint8

// Color types
const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale+alpha"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// BitDepth is the number of bits per sample of an external pixel buffer.
type BitDepth uint8

// Bit depths
const (
	Depth4 BitDepth = 4
	Depth8 BitDepth = 8
)

// Source is an external pixel buffer to be encoded. When the bit depth is
// four, two samples are packed into each byte in raster order with no
// padding between rows.
type Source struct {
	Pix       []byte
	ColorType ColorType
	BitDepth  BitDepth
}

// InvalidSourceShapeError is returned when a format cannot be encoded from
// a source with the given color type and bit depth.
type InvalidSourceShapeError struct {
	Format    Format
	ColorType ColorType
	BitDepth  BitDepth
}

func (e *InvalidSourceShapeError) Error() string {
	return fmt.Sprintf("texture: cannot encode %s from %s source with bit depth %d", e.Format, e.ColorType, e.BitDepth)
}

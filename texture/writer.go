package texture

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bodgit/n64tex/pixel"
)

type shape struct {
	format    Format
	colorType ColorType
	bitDepth  BitDepth
}

type encodeFunc func(w io.Writer, pix []byte) error

// Every source shape each format can be encoded from
var encoders = map[shape]encodeFunc{
	{RGBA32, RGBA, Depth8}: verbatim,
	{RGBA32, RGB, Depth8}:  groups(3, rgbToRGBA32),

	{RGBA16, RGBA, Depth8}: groups(4, rgbaToRGBA16),
	{RGBA16, RGB, Depth8}:  groups(3, rgbToRGBA16),

	{I4, Grayscale, Depth4}:      verbatim,
	{I4, Grayscale, Depth8}:      groups(2, grayToI4),
	{I4, GrayscaleAlpha, Depth8}: groups(4, grayAlphaToI4),
	{I4, RGB, Depth8}:            groups(6, rgbToI4),
	{I4, RGBA, Depth8}:           groups(8, rgbaToI4),

	{I8, Grayscale, Depth8}:      verbatim,
	{I8, Grayscale, Depth4}:      groups(1, gray4ToI8),
	{I8, GrayscaleAlpha, Depth8}: groups(2, grayAlphaToI8),
	{I8, RGB, Depth8}:            groups(3, rgbToI8),
	{I8, RGBA, Depth8}:           groups(4, rgbToI8),

	{IA4, GrayscaleAlpha, Depth8}: groups(4, grayAlphaToIA4),

	{IA8, GrayscaleAlpha, Depth8}: groups(2, grayAlphaToIA8),

	{IA16, GrayscaleAlpha, Depth8}: verbatim,

	{CI4, Indexed, Depth4}: verbatim,
	{CI4, Indexed, Depth8}: groups(2, foldNibbles),

	{CI8, Indexed, Depth8}: verbatim,
	{CI8, Indexed, Depth4}: groups(1, splitNibbles),
}

func verbatim(w io.Writer, pix []byte) error {
	_, err := w.Write(pix)
	return err
}

// groups applies fn to every complete group of n bytes, anything left over
// at the end is ignored
func groups(n int, fn func(dst, c []byte) []byte) encodeFunc {
	return func(w io.Writer, pix []byte) error {
		var tmp [4]byte
		for i := 0; i+n <= len(pix); i += n {
			if _, err := w.Write(fn(tmp[:0], pix[i:i+n])); err != nil {
				return err
			}
		}
		return nil
	}
}

func threshold(a byte) byte {
	if a > 0x7f {
		return 1
	}
	return 0
}

func rgbToRGBA32(dst, c []byte) []byte {
	return append(dst, c[0], c[1], c[2], 0xff)
}

func rgbaToRGBA16(dst, c []byte) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], pixel.Pack5551(c[0], c[1], c[2], c[3]))
	return append(dst, b[:]...)
}

func rgbToRGBA16(dst, c []byte) []byte {
	return rgbaToRGBA16(dst, []byte{c[0], c[1], c[2], 0xff})
}

// The first intensity is expected to already sit in the high nibble
func grayToI4(dst, c []byte) []byte {
	return append(dst, c[0]|c[1]>>4)
}

func grayAlphaToI4(dst, c []byte) []byte {
	return append(dst, c[0]|c[2]>>4)
}

func rgbToI4(dst, c []byte) []byte {
	return append(dst, pixel.Intensity(c[0], c[1], c[2])|pixel.Intensity(c[3], c[4], c[5])>>4)
}

func rgbaToI4(dst, c []byte) []byte {
	return append(dst, pixel.Intensity(c[0], c[1], c[2])|pixel.Intensity(c[4], c[5], c[6])>>4)
}

// Scale each 4-bit sample to the full 8-bit range
func gray4ToI8(dst, c []byte) []byte {
	hi, lo := upperNibble(c[0]), lowerNibble(c[0])
	return append(dst, hi|hi>>4, lo<<4|lo)
}

func grayAlphaToI8(dst, c []byte) []byte {
	return append(dst, c[0])
}

// Used for both RGB and RGBA, only the first three bytes are read
func rgbToI8(dst, c []byte) []byte {
	return append(dst, pixel.Intensity(c[0], c[1], c[2]))
}

func grayAlphaToIA4(dst, c []byte) []byte {
	hi := c[0]>>5<<1 | threshold(c[1])
	lo := c[2]>>5<<1 | threshold(c[3])
	return append(dst, hi<<4|lo)
}

func grayAlphaToIA8(dst, c []byte) []byte {
	return append(dst, c[0]|c[1]>>4)
}

func foldNibbles(dst, c []byte) []byte {
	return append(dst, c[0]<<4|c[1])
}

func splitNibbles(dst, c []byte) []byte {
	return append(dst, upperNibble(c[0])>>4, lowerNibble(c[0]))
}

// Accepts reports whether format f can be encoded from a source with the
// given color type and bit depth.
func Accepts(f Format, colorType ColorType, bitDepth BitDepth) bool {
	_, ok := encoders[shape{f, colorType, bitDepth}]
	return ok
}

// Encode writes the pixels in src to w in format f. Writes are streamed as
// each pixel is converted so a failed write can leave partial output in w.
func Encode(w io.Writer, src *Source, f Format) error {
	fn, ok := encoders[shape{f, src.ColorType, src.BitDepth}]
	if !ok {
		return &InvalidSourceShapeError{
			Format:    f,
			ColorType: src.ColorType,
			BitDepth:  src.BitDepth,
		}
	}

	bw := bufio.NewWriter(w)
	if err := fn(bw, src.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

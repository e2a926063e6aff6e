package n64tex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/ioutil"

	"github.com/bodgit/n64tex/pixel"
	"github.com/bodgit/n64tex/texture"
)

// Signature is the eight byte signature at the start of every PNG.
var Signature = [8]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

const (
	ihdrLength = 13
	headerSize = len(Signature) + 8 + ihdrLength
)

var (
	errNotPNG      = errors.New("n64tex: not a PNG image")
	errBadHeader   = errors.New("n64tex: invalid PNG header")
	errInterlaced  = errors.New("n64tex: interlaced PNG images are not supported")
	errUnsupported = errors.New("n64tex: unsupported PNG color type or bit depth")
)

// IsPNG reports whether b starts with the PNG signature.
func IsPNG(b []byte) bool {
	return len(b) >= len(Signature) && bytes.Equal(b[:len(Signature)], Signature[:])
}

type header struct {
	width     int
	height    int
	bitDepth  uint8
	colorType uint8
	interlace uint8
}

// The IHDR chunk always comes first, straight after the signature
func readHeader(b []byte) (header, error) {
	if !IsPNG(b) {
		return header{}, errNotPNG
	}
	if len(b) < headerSize {
		return header{}, errBadHeader
	}

	b = b[len(Signature):]
	if binary.BigEndian.Uint32(b[0:4]) != ihdrLength || string(b[4:8]) != "IHDR" {
		return header{}, errBadHeader
	}
	b = b[8:]

	return header{
		width:     int(binary.BigEndian.Uint32(b[0:4])),
		height:    int(binary.BigEndian.Uint32(b[4:8])),
		bitDepth:  b[8],
		colorType: b[9],
		interlace: b[12],
	}, nil
}

// PNG holds the pixels of a PNG image in the shape declared by its header.
type PNG struct {
	Width  int
	Height int
	Source texture.Source

	image image.Image
}

// ReadPNG reads a PNG image from r. Only non-interlaced images with a bit
// depth of four or eight are supported.
func ReadPNG(r io.Reader) (*PNG, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	h, err := readHeader(b)
	if err != nil {
		return nil, err
	}

	if h.interlace != 0 {
		return nil, errInterlaced
	}

	colorType, bitDepth := texture.ColorType(h.colorType), texture.BitDepth(h.bitDepth)
	switch {
	case bitDepth == texture.Depth8:
	case bitDepth == texture.Depth4 && (colorType == texture.Grayscale || colorType == texture.Indexed):
	default:
		return nil, fmt.Errorf("%w: %s with bit depth %d", errUnsupported, colorType, bitDepth)
	}

	m, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	pix, err := samples(m, colorType)
	if err != nil {
		return nil, err
	}
	if bitDepth == texture.Depth4 {
		pix = packNibbles(pix)
	}

	return &PNG{
		Width:  m.Bounds().Dx(),
		Height: m.Bounds().Dy(),
		Source: texture.Source{
			Pix:       pix,
			ColorType: colorType,
			BitDepth:  bitDepth,
		},
		image: m,
	}, nil
}

// samples flattens m back into the raw samples of the given color type, one
// byte per sample
func samples(m image.Image, colorType texture.ColorType) ([]byte, error) {
	b := m.Bounds()

	var pm *image.Paletted
	channels := 1
	switch colorType {
	case texture.Grayscale:
	case texture.Indexed:
		var ok bool
		if pm, ok = m.(*image.Paletted); !ok {
			return nil, fmt.Errorf("n64tex: indexed PNG decoded as %T", m)
		}
	case texture.GrayscaleAlpha:
		channels = 2
	case texture.RGB:
		channels = 3
	case texture.RGBA:
		channels = 4
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupported, colorType)
	}

	pix := make([]byte, 0, b.Dx()*b.Dy()*channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch colorType {
			case texture.Indexed:
				pix = append(pix, pm.ColorIndexAt(x, y))
			default:
				// A tRNS chunk turns grayscale into NRGBA, so the samples
				// are always taken before alpha is applied
				c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
				switch colorType {
				case texture.Grayscale:
					// 4-bit samples are scaled by 0x11 when decoded
					pix = append(pix, c.R)
				case texture.GrayscaleAlpha:
					pix = append(pix, c.R, c.A)
				case texture.RGB:
					pix = append(pix, c.R, c.G, c.B)
				case texture.RGBA:
					pix = append(pix, c.R, c.G, c.B, c.A)
				}
			}
		}
	}

	return pix, nil
}

// packNibbles packs 4-bit samples two to a byte, the first in the high
// nibble. Samples are either indices below 16 or gray levels scaled up to
// eight bits
func packNibbles(s []byte) []byte {
	b := make([]byte, (len(s)+1)>>1)
	for i, v := range s {
		if v > 0x0f {
			v >>= 4
		}
		if i&1 == 0 {
			b[i>>1] |= v << 4
		} else {
			b[i>>1] |= v
		}
	}
	return b
}

// Native writes the image to w in format f. The declared color type and
// bit depth of the PNG decide which conversions are allowed.
func (p *PNG) Native(w io.Writer, f texture.Format) error {
	return texture.Encode(w, &p.Source, f)
}

// GrayAlpha returns a copy of the image converted to 8-bit grayscale with
// alpha, taking the intensity of each pixel.
func (p *PNG) GrayAlpha() *PNG {
	b := p.image.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(p.image.At(x, y)).(color.NRGBA)
			pix = append(pix, pixel.Intensity(c.R, c.G, c.B), c.A)
		}
	}

	return &PNG{
		Width:  p.Width,
		Height: p.Height,
		Source: texture.Source{
			Pix:       pix,
			ColorType: texture.GrayscaleAlpha,
			BitDepth:  texture.Depth8,
		},
		image: p.image,
	}
}

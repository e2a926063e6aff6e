package texture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/n64tex/pixel"
	"github.com/bodgit/n64tex/tlut"
)

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// nibble returns the 4-bit value of pixel i
func nibble(b []byte, i int) byte {
	if i&1 == 0 {
		return upperNibble(b[i>>1]) >> 4
	}
	return lowerNibble(b[i>>1])
}

type decoder struct {
	palette []byte
	out     []byte
}

func (d *decoder) put(r, g, b, a uint8) {
	d.out = append(d.out, r, g, b, a)
}

func (d *decoder) gray(i, a uint8) {
	d.put(i, i, i, a)
}

func (d *decoder) lookup(index uint8) error {
	r, g, b, a, ok := tlut.Lookup(d.palette, index)
	if !ok {
		return ErrPaletteIndexOutOfRange
	}
	d.put(r, g, b, a)
	return nil
}

func (d *decoder) decode(m *Image) error {
	p := m.Data

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x

			switch m.Format {
			case RGBA32:
				d.put(p[i*4], p[i*4+1], p[i*4+2], p[i*4+3])
			case RGBA16:
				d.put(pixel.Unpack5551(binary.BigEndian.Uint16(p[i*2:])))
			case CI4:
				if err := d.lookup(nibble(p, i)); err != nil {
					return err
				}
			case CI8:
				if err := d.lookup(p[i]); err != nil {
					return err
				}
			case IA4:
				// Packed as IIIA
				v := nibble(p, i)
				d.gray(v>>1*32, v&0x01*0xff)
			case IA8:
				// Packed as IIIIAAAA
				d.gray(upperNibble(p[i]), lowerNibble(p[i])<<4)
			case IA16:
				d.gray(p[i*2], p[i*2+1])
			case I4:
				v := nibble(p, i) << 4
				d.gray(v, v)
			case I8:
				d.gray(p[i], p[i])
			default:
				return fmt.Errorf("texture: unknown format %d", int(m.Format))
			}
		}
	}

	return nil
}

func (m *Image) checkSize() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("texture: invalid dimensions %dx%d", m.Width, m.Height)
	}
	if len(m.Data) < m.Format.PackedSize(m.Width, m.Height) {
		return ErrTruncatedInput
	}
	return nil
}

// Decode returns the texture as width*height pixels of R, G, B and A. The
// palette is a table returned by (*tlut.TLUT).Decode and is only used by
// the color indexed formats, for which it is required.
func (m *Image) Decode(palette []byte) ([]byte, error) {
	if m.Format.Indexed() && palette == nil {
		return nil, ErrMissingPalette
	}

	if err := m.checkSize(); err != nil {
		return nil, err
	}

	d := decoder{
		palette: palette,
		out:     make([]byte, 0, m.Width*m.Height*4),
	}
	if err := d.decode(m); err != nil {
		return nil, err
	}

	return d.out, nil
}

// Indices returns the palette index of every pixel of a color indexed
// texture, one byte per pixel.
func (m *Image) Indices() ([]byte, error) {
	if !m.Format.Indexed() {
		return nil, fmt.Errorf("texture: %s is not color indexed", m.Format)
	}

	if err := m.checkSize(); err != nil {
		return nil, err
	}

	n := m.Width * m.Height
	if m.Format == CI8 {
		return append([]byte(nil), m.Data[:n]...), nil
	}

	indices := make([]byte, n)
	for i := range indices {
		indices[i] = nibble(m.Data, i)
	}
	return indices, nil
}

// NRGBA decodes the texture and returns it as an image.Image.
func (m *Image) NRGBA(palette []byte) (*image.NRGBA, error) {
	pix, err := m.Decode(palette)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}, nil
}

// Paletted returns a color indexed texture as an image.Image using the
// colors in p.
func (m *Image) Paletted(p color.Palette) (*image.Paletted, error) {
	indices, err := m.Indices()
	if err != nil {
		return nil, err
	}
	return &image.Paletted{
		Pix:     indices,
		Stride:  m.Width,
		Rect:    image.Rect(0, 0, m.Width, m.Height),
		Palette: p,
	}, nil
}

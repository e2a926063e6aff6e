package n64tex

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/bodgit/n64tex/texture"
	"github.com/bodgit/n64tex/tlut"
)

// maxPNGPalette is the most entries a PNG palette can hold
const maxPNGPalette = 256

// Header returns the PNG color type and bit depth used when writing a
// texture of format f.
func Header(f texture.Format) (texture.ColorType, texture.BitDepth) {
	if f.Indexed() {
		return texture.Indexed, texture.Depth8
	}
	return texture.RGBA, texture.Depth8
}

// PaletteSize returns the table size addressed by a color indexed format.
func PaletteSize(f texture.Format) tlut.Size {
	if f == texture.CI4 {
		return tlut.S4B
	}
	return tlut.S8B
}

// placeholderPalette maps every index to the matching gray level
func placeholderPalette() color.Palette {
	p := make(color.Palette, maxPNGPalette)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 0xff}
	}
	return p
}

// Always return a full palette so the PNG is written with a bit depth of 8
func pngPalette(t *tlut.TLUT) (color.Palette, error) {
	p := placeholderPalette()
	if t == nil {
		return p, nil
	}

	colors, err := t.Palette()
	if err != nil {
		return nil, err
	}
	copy(p, colors)

	return p, nil
}

// WritePNG writes the texture m to w as a PNG image. Color indexed textures
// are written with their raw indices using the colors from t as the PNG
// palette, or a grayscale placeholder if t is nil. If expand is set they
// are instead decoded through t to full color.
func WritePNG(w io.Writer, m *texture.Image, t *tlut.TLUT, expand bool) error {
	var (
		img image.Image
		err error
	)

	switch colorType, _ := Header(m.Format); {
	case colorType == texture.Indexed && !expand:
		var p color.Palette
		if p, err = pngPalette(t); err != nil {
			return err
		}
		img, err = m.Paletted(p)
	default:
		var table []byte
		if m.Format.Indexed() && t != nil {
			if table, err = t.Decode(); err != nil {
				return err
			}
		}
		img, err = m.NRGBA(table)
	}
	if err != nil {
		return err
	}

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

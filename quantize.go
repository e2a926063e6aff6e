package n64tex

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/n64tex/texture"
	"github.com/bodgit/n64tex/tlut"
	"github.com/ericpauley/go-quantize/quantize"
)

// Palettize returns the image as 8-bit palette indices suitable for the
// color indexed format f, along with the matching palette. Images that are
// already indexed keep their indices and palette, anything else is reduced
// with a median cut quantizer to 16 or 256 colors. Colors beyond what f can
// address are dropped from the palette.
func (p *PNG) Palettize(f texture.Format) (*PNG, *tlut.TLUT, error) {
	if !f.Indexed() {
		return nil, nil, fmt.Errorf("n64tex: %s is not color indexed", f)
	}

	size := PaletteSize(f)

	if pm, ok := p.image.(*image.Paletted); ok && p.Source.ColorType == texture.Indexed {
		// Palettes are often padded, only the indices in use have to fit
		if p.Source.BitDepth == texture.Depth8 {
			for _, i := range p.Source.Pix {
				if int(i) >= size.Entries() {
					return nil, nil, fmt.Errorf("n64tex: palette index %d out of range for %s", i, f)
				}
			}
		}
		return p, tlut.New(pm.Palette, size), nil
	}

	b := p.image.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, size.Entries()), p.image))
	draw.Draw(pm, b, p.image, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return &PNG{
		Width:  p.Width,
		Height: p.Height,
		Source: texture.Source{
			Pix:       pm.Pix,
			ColorType: texture.Indexed,
			BitDepth:  texture.Depth8,
		},
		image: pm,
	}, tlut.New(pm.Palette, size), nil
}

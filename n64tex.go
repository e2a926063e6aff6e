/*
Package n64tex is a library for converting Nintendo 64 textures to and from
PNG images.

Textures carry no header so converting one to PNG needs the format and
dimensions up front, either passed in Options or taken from a filename of
the form <name>.<width>x<height>.<format>. Color indexed textures also need
their palette (TLUT) to be decoded to full color.
*/
package n64tex

import (
	"errors"
	"io/ioutil"

	"github.com/bodgit/n64tex/texture"
	"github.com/bodgit/n64tex/tlut"
	log "github.com/sirupsen/logrus"
)

// ErrMissingDimensions is returned when converting a texture without
// knowing its width and height.
var ErrMissingDimensions = errors.New("n64tex: converting a texture requires a width and height")

// Options control a single conversion.
type Options struct {
	// Format is the format of the input texture, or the format to
	// convert a PNG image to.
	Format texture.Format
	Width  int
	Height int

	// Palette is the path to a TLUT file for color indexed textures and
	// PaletteSize its size. A nil size uses the size addressed by Format.
	Palette     string
	PaletteSize *tlut.Size

	// Expand decodes color indexed textures through the palette to a full
	// color PNG instead of keeping the indices.
	Expand bool

	// Quantize reduces full color PNG images to a palette when converting
	// to a color indexed format.
	Quantize bool
	// GrayAlpha converts PNG images to grayscale with alpha first, as
	// required by the IA formats.
	GrayAlpha bool
	// PaletteOut is where to write the TLUT when converting a PNG image to
	// a color indexed format.
	PaletteOut string
	// WritePalette writes the TLUT next to the output as <output>.tlut
	// when PaletteOut is empty.
	WritePalette bool
}

func (o *Options) paletteOut(out string) string {
	switch {
	case o.PaletteOut != "":
		return o.PaletteOut
	case o.WritePalette:
		return out + paletteExt
	}
	return ""
}

func (o *Options) paletteSize() tlut.Size {
	if o.PaletteSize != nil {
		return *o.PaletteSize
	}
	return PaletteSize(o.Format)
}

// Converter converts files between texture formats and PNG.
type Converter struct {
	logger *log.Logger
}

// New returns a Converter logging to logger. A nil logger discards
// everything.
func New(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New()
		logger.SetOutput(ioutil.Discard)
	}
	return &Converter{
		logger: logger,
	}
}

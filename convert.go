package n64tex

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"

	"github.com/bodgit/n64tex/texture"
	"github.com/bodgit/n64tex/tlut"
	log "github.com/sirupsen/logrus"
)

// ConvertFile converts the file in to out. PNG images are converted to
// o.Format, anything else is treated as a texture of o.Format and converted
// to PNG. If out is empty, OutputName is used. Nothing is written unless
// the whole conversion succeeds.
func (c *Converter) ConvertFile(in, out string, o Options) error {
	b, err := ioutil.ReadFile(in)
	if err != nil {
		return err
	}

	isPNG := IsPNG(b)
	if out == "" {
		out = OutputName(in, isPNG, o.Format)
	}

	logger := c.logger.WithFields(log.Fields{
		"input":  in,
		"output": out,
		"format": o.Format,
	})

	var (
		buf bytes.Buffer
		t   *tlut.TLUT
	)
	if isPNG {
		t, err = c.toNative(&buf, b, o, logger)
	} else {
		err = c.toPNG(&buf, in, b, o, logger)
	}
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(out, buf.Bytes(), 0666); err != nil {
		return err
	}

	if file := o.paletteOut(out); t != nil && file != "" {
		if err := writeTLUT(file, t); err != nil {
			return err
		}
		logger.WithField("palette", file).Debug("wrote palette")
	}

	logger.Info("converted")

	return nil
}

func (c *Converter) toNative(w io.Writer, b []byte, o Options, logger *log.Entry) (*tlut.TLUT, error) {
	p, err := ReadPNG(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"color_type": p.Source.ColorType,
		"bit_depth":  p.Source.BitDepth,
		"width":      p.Width,
		"height":     p.Height,
	}).Debug("read png")

	if o.GrayAlpha {
		p = p.GrayAlpha()
	}

	var t *tlut.TLUT
	if o.Format.Indexed() && (o.Quantize || p.Source.ColorType == texture.Indexed) {
		if p, t, err = p.Palettize(o.Format); err != nil {
			return nil, err
		}
	}

	if err := p.Native(w, o.Format); err != nil {
		return nil, err
	}

	return t, nil
}

func (c *Converter) toPNG(w io.Writer, in string, b []byte, o Options, logger *log.Entry) error {
	width, height := o.Width, o.Height
	if width == 0 || height == 0 {
		if _, nw, nh, ok := ParseName(in); ok {
			width, height = nw, nh
		}
	}
	if width == 0 || height == 0 {
		return ErrMissingDimensions
	}

	m, err := texture.Read(bytes.NewReader(b), o.Format, width, height)
	if err != nil {
		return err
	}

	var t *tlut.TLUT
	if o.Palette != "" && m.Format.Indexed() {
		size := o.paletteSize()
		if !size.Addressable() {
			logger.Warnf("palette size %s has %d entries, only the first %d are used", size, size.Entries(), PaletteSize(m.Format).Entries())
		}
		if t, err = readTLUT(o.Palette, size); err != nil {
			return err
		}
	}

	logger.WithFields(log.Fields{
		"width":   width,
		"height":  height,
		"palette": t != nil,
	}).Debug("read texture")

	return WritePNG(w, m, t, o.Expand)
}

func readTLUT(file string, size tlut.Size) (*tlut.TLUT, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tlut.Read(f, size)
}

func writeTLUT(file string, t *tlut.TLUT) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := t.WriteTo(f); err != nil {
		return err
	}

	return f.Close()
}

package n64tex

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/n64tex/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOutput(t *testing.T) {
	assert.True(t, isOutput("logo.32x16.rgba16.png"))
	assert.True(t, isOutput("/a/b/font.8x8.i4.PNG"))
	assert.False(t, isOutput("logo.png"))
	assert.False(t, isOutput("logo.32x16.png"))
}

func TestScan(t *testing.T) {
	dir := tempDir(t)
	c := New(nil)

	sub := filepath.Join(dir, "sub")
	require.Nil(t, os.Mkdir(sub, 0777))
	hidden := filepath.Join(dir, ".hidden")
	require.Nil(t, os.Mkdir(hidden, 0777))

	writeFile(t, filepath.Join(dir, "a.4x2.i8"), make([]byte, 8))
	writeFile(t, filepath.Join(sub, "b.4x4.ia16"), make([]byte, 32))
	writeFile(t, filepath.Join(hidden, "c.4x4.i8"), make([]byte, 16))
	writeFile(t, filepath.Join(dir, "readme.txt"), []byte("hello"))

	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	m.SetNRGBA(0, 0, color.NRGBA{0x00, 0x00, 0x00, 0x80})
	writeFile(t, filepath.Join(sub, "d.png"), encodePNG(t, m))

	require.Nil(t, c.Scan(dir, Options{Format: texture.RGBA32}, 4))

	for _, file := range []string{
		filepath.Join(dir, "a.4x2.i8.png"),
		filepath.Join(sub, "b.4x4.ia16.png"),
		filepath.Join(sub, "d.png.rgba32"),
	} {
		_, err := os.Stat(file)
		assert.Nil(t, err, file)
	}

	for _, file := range []string{
		filepath.Join(hidden, "c.4x4.i8.png"),
		filepath.Join(dir, "readme.txt.png"),
		filepath.Join(dir, "a.4x2.i8.png.rgba32"),
	} {
		_, err := os.Stat(file)
		assert.True(t, os.IsNotExist(err), file)
	}

	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x80, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}, readFile(t, filepath.Join(sub, "d.png.rgba32")))

	// A second scan finds nothing new to do
	require.Nil(t, c.Scan(dir, Options{Format: texture.RGBA32}, 1))
}

func TestScanError(t *testing.T) {
	dir := tempDir(t)
	c := New(nil)

	writeFile(t, filepath.Join(dir, "e.png"), encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 2, 2))))

	err := c.Scan(dir, Options{Format: texture.IA4}, 2)

	var shapeErr *texture.InvalidSourceShapeError
	assert.True(t, errors.As(err, &shapeErr))

	_, err = os.Stat(filepath.Join(dir, "e.png.ia4"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanMissing(t *testing.T) {
	c := New(nil)
	assert.NotNil(t, c.Scan(filepath.Join(tempDir(t), "missing"), Options{Format: texture.I8}, 1))
}

func TestScanPalettes(t *testing.T) {
	dir := tempDir(t)
	c := New(nil)

	for i, name := range []string{"red.png", "green.png", "blue.png"} {
		m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				v := uint8(x * 0x40)
				px := color.NRGBA{0x00, 0x00, 0x00, 0xff}
				switch i {
				case 0:
					px.R = v
				case 1:
					px.G = v
				case 2:
					px.B = v
				}
				m.SetNRGBA(x, y, px)
			}
		}
		writeFile(t, filepath.Join(dir, name), encodePNG(t, m))
	}

	shared := filepath.Join(dir, "shared.tlut")
	o := Options{Format: texture.CI4, Quantize: true, PaletteOut: shared, WritePalette: true}
	require.Nil(t, c.Scan(dir, o, 3))

	_, err := os.Stat(shared)
	assert.True(t, os.IsNotExist(err))

	for _, name := range []string{"red.png", "green.png", "blue.png"} {
		out := filepath.Join(dir, name+".ci4")
		assert.Len(t, readFile(t, out), 8)
		assert.Len(t, readFile(t, out+".tlut"), 32)
	}
}

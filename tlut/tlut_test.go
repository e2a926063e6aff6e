package tlut

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/bodgit/n64tex/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name        string
		size        Size
		entries     int
		addressable bool
	}{
		{"s4b", S4B, 16, true},
		{"s8b", S8B, 256, true},
		{"s16b", S16B, 4096, false},
		{"s32b", S32B, 65536, false},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			assert.Equal(t, x.entries, x.size.Entries())
			assert.Equal(t, x.addressable, x.size.Addressable())
			assert.Equal(t, x.name, x.size.String())

			s, err := ParseSize(x.name)
			require.Nil(t, err)
			assert.Equal(t, x.size, s)
		})
	}

	s, err := ParseSize("S8B")
	require.Nil(t, err)
	assert.Equal(t, S8B, s)

	_, err = ParseSize("s64b")
	assert.NotNil(t, err)
}

func TestDecode(t *testing.T) {
	data := make([]byte, 32)
	data[0], data[1] = 0xf8, 0x01 // red, opaque
	data[2], data[3] = 0x07, 0xc0 // green, transparent
	data[30], data[31] = 0xff, 0xff

	tl, err := Read(bytes.NewReader(data), S4B)
	require.Nil(t, err)

	table, err := tl.Decode()
	require.Nil(t, err)
	assert.Len(t, table, 16*4)
	assert.Equal(t, []byte{0xf8, 0x00, 0x00, 0xff}, table[0:4])
	assert.Equal(t, []byte{0x00, 0xf8, 0x00, 0x00}, table[4:8])
	assert.Equal(t, []byte{0xf8, 0xf8, 0xf8, 0xff}, table[60:64])

	t.Run("truncated", func(t *testing.T) {
		tl := &TLUT{Size: S4B, Data: data[:31]}
		_, err := tl.Decode()
		assert.Equal(t, ErrTruncated, err)

		_, err = tl.Palette()
		assert.Equal(t, ErrTruncated, err)
	})

	t.Run("extra data", func(t *testing.T) {
		tl := &TLUT{Size: S4B, Data: append(append([]byte{}, data...), 0x12, 0x34)}
		table, err := tl.Decode()
		require.Nil(t, err)
		assert.Len(t, table, 16*4)
	})
}

func TestLookup(t *testing.T) {
	table := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
	}

	r, g, b, a, ok := Lookup(table, 1)
	assert.True(t, ok)
	assert.Equal(t, []uint8{0x05, 0x06, 0x07, 0x08}, []uint8{r, g, b, a})

	_, _, _, _, ok = Lookup(table, 2)
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	p := color.Palette{
		color.NRGBA{0xff, 0x00, 0x00, 0xff},
		color.NRGBA{0x00, 0x00, 0xff, 0x80},
	}

	tl := New(p, S4B)
	assert.Equal(t, S4B, tl.Size)
	assert.Len(t, tl.Data, 32)
	assert.Equal(t, []byte{0xf8, 0x01, 0x00, 0x3e}, tl.Data[:4])
	assert.Equal(t, make([]byte, 28), tl.Data[4:])

	decoded, err := tl.Palette()
	require.Nil(t, err)
	assert.Len(t, decoded, 16)
	assert.Equal(t, pixel.RGBA5551(0xf801), decoded[0])
	assert.Equal(t, pixel.RGBA5551(0x003e), decoded[1])

	var b bytes.Buffer
	n, err := tl.WriteTo(&b)
	require.Nil(t, err)
	assert.Equal(t, int64(32), n)
	assert.Equal(t, tl.Data, b.Bytes())

	t.Run("too many colors", func(t *testing.T) {
		p := make(color.Palette, 20)
		for i := range p {
			p[i] = color.Gray{uint8(i * 8)}
		}
		tl := New(p, S4B)
		assert.Len(t, tl.Data, 32)
	})
}

/*
Package tlut implements the texture look-up tables (palettes) used by the
Nintendo 64 color indexed texture formats.

A table is stored as a headerless sequence of big-endian 16-bit colors
packed as 5-5-5-1. The number of entries is not recorded in the data so it
has to be supplied by the caller.
*/
package tlut

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/ioutil"
	"strings"

	"github.com/bodgit/n64tex/pixel"
)

// ErrTruncated is returned when the table data holds fewer entries than
// its size requires.
var ErrTruncated = errors.New("tlut: truncated palette")

// Size is the number of entries in a table.
type Size int

// The S16B and S32B sizes are larger than any CI4 or CI8 index can reach;
// only the first 16 or 256 entries are ever looked up.
const (
	S4B Size = iota
	S8B
	S16B
	S32B
)

var sizeNames = [...]string{"s4b", "s8b", "s16b", "s32b"}

// Entries returns the number of colors in a table of this size.
func (s Size) Entries() int {
	switch s {
	case S4B:
		return 0x10
	case S8B:
		return 0x100
	case S16B:
		return 0x1000
	case S32B:
		return 0x10000
	}
	return 0
}

// Addressable reports whether every entry can be reached by a CI4 or CI8
// index.
func (s Size) Addressable() bool {
	return s == S4B || s == S8B
}

func (s Size) String() string {
	if s < S4B || s > S32B {
		return fmt.Sprintf("Size(%d)", int(s))
	}
	return sizeNames[s]
}

// ParseSize returns the Size matching name, ignoring case.
func ParseSize(name string) (Size, error) {
	for i, n := range sizeNames {
		if strings.EqualFold(name, n) {
			return Size(i), nil
		}
	}
	return 0, fmt.Errorf("tlut: unknown palette size %q", name)
}

// TLUT is a raw texture look-up table.
type TLUT struct {
	Size Size
	Data []byte
}

// Read reads all of r as the data of a table of the given size.
func Read(r io.Reader, size Size) (*TLUT, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &TLUT{
		Size: size,
		Data: b,
	}, nil
}

// New packs the colors in p into a table of the given size. Missing
// entries are left as transparent black and any extra colors are dropped.
func New(p color.Palette, size Size) *TLUT {
	b := make([]byte, size.Entries()*2)
	for i, c := range p {
		if i >= size.Entries() {
			break
		}
		binary.BigEndian.PutUint16(b[i*2:], uint16(pixel.RGBA5551Model.Convert(c).(pixel.RGBA5551)))
	}
	return &TLUT{
		Size: size,
		Data: b,
	}
}

// Decode expands each entry to four bytes of R, G, B and A.
func (t *TLUT) Decode() ([]byte, error) {
	n := t.Size.Entries()
	if len(t.Data) < n*2 {
		return nil, ErrTruncated
	}

	decoded := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		r, g, b, a := pixel.Unpack5551(binary.BigEndian.Uint16(t.Data[i*2:]))
		decoded = append(decoded, r, g, b, a)
	}
	return decoded, nil
}

// Palette returns the entries of the table as colors.
func (t *TLUT) Palette() (color.Palette, error) {
	n := t.Size.Entries()
	if len(t.Data) < n*2 {
		return nil, ErrTruncated
	}

	p := make(color.Palette, n)
	for i := range p {
		p[i] = pixel.RGBA5551(binary.BigEndian.Uint16(t.Data[i*2:]))
	}
	return p, nil
}

// WriteTo writes the raw table data to w.
func (t *TLUT) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Data)
	return int64(n), err
}

// Lookup returns the color at index in a table returned by Decode. ok is
// false if the table does not have that many entries.
func Lookup(table []byte, index uint8) (r, g, b, a uint8, ok bool) {
	i := int(index) * 4
	if i+4 > len(table) {
		return 0, 0, 0, 0, false
	}
	return table[i], table[i+1], table[i+2], table[i+3], true
}

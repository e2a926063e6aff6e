/*
Package pixel implements the color conversions used by the Nintendo 64
texture formats.

Colors are either packed into a 16-bit word with five bits each for red,
green and blue followed by a single alpha bit, or reduced to a single
intensity value using the ITU-R BT.709 luma weights.
*/
package pixel

import "image/color"

// Pack5551 packs 8-bit channels into a 5-5-5-1 word. The low three bits of
// each color channel are discarded and alpha is only set when a is 0xff.
func Pack5551(r, g, b, a uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)<<1 | uint16(a/0xff)
}

// Unpack5551 extracts the channels of a 5-5-5-1 word. Color channels are
// shifted back up by three bits, so 0xff comes back as 0xf8.
func Unpack5551(p uint16) (r, g, b, a uint8) {
	r = uint8(p&0xf800>>11) << 3
	g = uint8(p&0x07c0>>6) << 3
	b = uint8(p&0x003e>>1) << 3
	a = uint8(p&0x0001) * 0xff
	return
}

// Weights are BT.709 luma coefficients scaled by 10000
const (
	weightR     = 2126
	weightG     = 7152
	weightB     = 722
	weightTotal = weightR + weightG + weightB
)

// Intensity returns floor(0.2126*r + 0.7152*g + 0.0722*b).
func Intensity(r, g, b uint8) uint8 {
	return uint8((weightR*uint32(r) + weightG*uint32(g) + weightB*uint32(b)) / weightTotal)
}

// RGBA5551 is a color packed as 5-5-5-1, stored as the big-endian word
// found in texture and palette data.
type RGBA5551 uint16

// RGBA implements the color.Color interface.
func (c RGBA5551) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b, a := Unpack5551(uint16(c))
	return color.NRGBA{r, g, b, a}.RGBA()
}

// RGBA5551Model converts any color to the nearest RGBA5551 color.
var RGBA5551Model = color.ModelFunc(rgba5551Model)

func rgba5551Model(c color.Color) color.Color {
	if _, ok := c.(RGBA5551); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA5551(Pack5551(n.R, n.G, n.B, n.A))
}

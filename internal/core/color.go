package core

import "image/color"

// Color represents a foreground color for a screen cell or a window shape.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorRed
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
)

// palette holds the RGB value shared by every renderer.
var palette = [...]color.RGBA{
	ColorDefault:      {R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
	ColorWhite:        {R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	ColorGray:         {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
	ColorRed:          {R: 0xaa, G: 0x00, B: 0x00, A: 0xff},
	ColorYellow:       {R: 0xaa, G: 0xaa, B: 0x00, A: 0xff},
	ColorCyan:         {R: 0x00, G: 0xaa, B: 0xaa, A: 0xff},
	ColorBrightRed:    {R: 0xff, G: 0x20, B: 0x20, A: 0xff},
	ColorBrightYellow: {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	ColorBrightCyan:   {R: 0x40, G: 0xff, B: 0xff, A: 0xff},
	ColorBrightWhite:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// RGBA returns the color's RGB value. Unknown colors map to ColorDefault.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorDefault]
	}
	return palette[c]
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	rgb := c.RGBA()
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{rgb.R, rgb.G, rgb.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

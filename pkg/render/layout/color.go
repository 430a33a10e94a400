package layout

import (
	"fmt"
	"image/color"
)

// Color is an opaque RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex returns the colour as #RRGGBB.
func (c Color) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

// ToRGBA converts to the standard library colour type.
func (c Color) ToRGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// Palette used by [Project].
var (
	ColorOutline = Color{60, 60, 60}
	ColorCarcass = Color{245, 245, 245}
	ColorDoor    = Color{222, 184, 135}
	ColorHandle  = Color{50, 50, 50}
	ColorPlinth  = Color{50, 50, 50}
	ColorText    = Color{0, 0, 0}
	ColorMuted   = Color{0x77, 0x77, 0x77}
)

func ptr(c Color) *Color { return &c }

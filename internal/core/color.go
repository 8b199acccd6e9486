package core

import "fmt"

// RGB is a 24-bit color. Entities, the background and screen cells all use it.
type RGB struct {
	R, G, B uint8
}

// Predefined colors used by the platform chrome and tests.
var (
	ColorBlack      = RGB{0, 0, 0}
	ColorWhite      = RGB{255, 255, 255}
	ColorRed        = RGB{255, 0, 0}
	ColorGreen      = RGB{0, 255, 0}
	ColorBlue       = RGB{0, 0, 255}
	ColorBackground = RGB{20, 20, 20} // Default clear color
)

// NewRGB builds a color from integer channels, clamping each into [0, 255].
// Scripts hand us arbitrary numbers; out-of-range channels saturate.
func NewRGB(r, g, b int) RGB {
	return RGB{
		R: uint8(Clamp(r, 0, 255)),
		G: uint8(Clamp(g, 0, 255)),
		B: uint8(Clamp(b, 0, 255)),
	}
}

// Hex returns the color as "#rrggbb", the form lipgloss accepts.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

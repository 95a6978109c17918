package render

import "weekcal/internal/layout"

// Font names a face and size for text primitives.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

// Paint is a color plus opacity in [0, 1].
type Paint struct {
	Color layout.Color
	Alpha float64
}

// Solid returns c at full opacity.
func Solid(c layout.Color) Paint {
	return Paint{Color: c, Alpha: 1}
}

// Surface is the minimal drawing backend the renderer needs. Coordinates
// are page units with a bottom-left origin; text is anchored at its
// baseline start.
type Surface interface {
	Line(x1, y1, x2, y2, width float64, stroke Paint)
	RoundRect(x, y, w, h, radius float64, fill Paint)
	Text(x, y float64, s string, font Font, fill Paint)
	// TextBlock draws lines top-down starting at baseline (x, y), leading apart.
	TextBlock(x, y float64, lines []string, font Font, leading float64, fill Paint)
}

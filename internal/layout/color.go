package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"weekcal/internal/model"
)

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	Black     = Color{}
	GridGray  = Color{R: 189.0 / 255, G: 195.0 / 255, B: 199.0 / 255}
	ShadowDim = Color{R: 0.3, G: 0.3, B: 0.3}
)

// DefaultPaletteHex is the ordered fill palette used when the config names none.
var DefaultPaletteHex = []string{
	"#e74c3c",
	"#e67e22",
	"#f1c40f",
	"#2ecc71",
	"#1abc9c",
	"#3498db",
	"#9b59b6",
	"#34495e",
}

// DefaultPalette returns a fresh copy of the default palette.
func DefaultPalette() []Color {
	p, _ := ParsePalette(DefaultPaletteHex)
	return p
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("layout: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("layout: invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// ParsePalette parses every entry; the first bad entry fails the whole palette.
func ParsePalette(hexes []string) ([]Color, error) {
	out := make([]Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// TextColor darkens fill by amount per channel, floored at 0. Fill channels
// are already <= 1 so there is no upper clamp.
func TextColor(fill Color, amount float64) Color {
	return Color{
		R: math.Max(0, fill.R-amount),
		G: math.Max(0, fill.G-amount),
		B: math.Max(0, fill.B-amount),
	}
}

// ColorAssignment maps event names to palette entries in first-seen order.
type ColorAssignment struct {
	palette []Color
	names   []string
	index   map[string]int
}

// AssignColors walks events in order and gives each new name the next
// palette entry, wrapping around when names outnumber colors. An empty
// palette falls back to DefaultPalette.
func AssignColors(events []model.Event, palette []Color) *ColorAssignment {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	a := &ColorAssignment{
		palette: palette,
		index:   make(map[string]int),
	}
	for _, ev := range events {
		if _, ok := a.index[ev.Name]; ok {
			continue
		}
		a.index[ev.Name] = len(a.names)
		a.names = append(a.names, ev.Name)
	}
	return a
}

// Color returns the fill for name and whether name was seen.
func (a *ColorAssignment) Color(name string) (Color, bool) {
	i, ok := a.index[name]
	if !ok {
		return Color{}, false
	}
	return a.palette[i%len(a.palette)], true
}

// Names returns the distinct names in first-seen order.
func (a *ColorAssignment) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Len reports how many distinct names received a color.
func (a *ColorAssignment) Len() int {
	return len(a.names)
}

// Package render draws a layout.Plan onto a Surface and writes the weekly
// page to disk as SVG.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"weekcal/internal/layout"
	appLog "weekcal/internal/log"
	"weekcal/internal/model"
)

// DefaultFontFamily approximates the Helvetica Bold used for every label.
const DefaultFontFamily = "Helvetica, Arial, sans-serif"

// RenderError reports a failure producing or saving an output artifact.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: cannot write %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Page is what one render pass drew.
type Page struct {
	Width, Height float64
	Plan          layout.Plan
}

// Boxes returns the event boxes in draw order.
func (p Page) Boxes() []layout.Box {
	return p.Plan.Boxes
}

// Renderer turns events into a weekly page.
type Renderer struct {
	Config     layout.Config
	Palette    []layout.Color
	FontFamily string
}

// New returns a Renderer with cfg normalized. An empty palette uses
// layout.DefaultPalette.
func New(cfg layout.Config, palette []layout.Color) *Renderer {
	cfg.Normalize()
	if len(palette) == 0 {
		palette = layout.DefaultPalette()
	}
	return &Renderer{
		Config:     cfg,
		Palette:    palette,
		FontFamily: DefaultFontFamily,
	}
}

// Draw lays out events and issues every draw call on s: grid lines, day
// headers, then one box per event inside the grid window. It never fails;
// out-of-window events are skipped and degenerate boxes are drawn as is.
func (r *Renderer) Draw(s Surface, events []model.Event) Page {
	plan := r.Config.Layout(events, r.Palette)

	r.drawGrid(s)
	for _, b := range plan.Boxes {
		r.drawBox(s, b)
	}

	appLog.Debug("page drawn", "events", len(events), "boxes", len(plan.Boxes), "skipped", plan.Skipped, "skipped_all_day", plan.SkippedAllDay, "colors", plan.Colors.Len())
	return Page{
		Width:  r.Config.PageWidth,
		Height: r.Config.PageHeight,
		Plan:   plan,
	}
}

func (r *Renderer) font(size float64) Font {
	return Font{Family: r.FontFamily, Bold: true, Size: size}
}

func (r *Renderer) drawGrid(s Surface) {
	c := r.Config

	for _, hl := range c.HourLines() {
		s.Line(hl.X1, hl.Y, hl.X2, hl.Y, 1, Solid(layout.GridGray))
	}

	headerFont := r.font(c.HeaderFontSize)
	shadow := Paint{Color: layout.ShadowDim, Alpha: 0.5}
	for _, h := range c.Headers() {
		s.Text(h.X-c.HeaderShadow, h.Y-c.HeaderShadow, h.Label, headerFont, shadow)
		s.Text(h.X, h.Y, h.Label, headerFont, Solid(layout.Black))
	}
}

func (r *Renderer) drawBox(s Surface, b layout.Box) {
	c := r.Config

	s.RoundRect(b.X, b.Y, b.Width, b.Height, c.CornerRadius, Paint{Color: b.Fill, Alpha: c.FillAlpha})
	s.RoundRect(b.X, b.Y, c.AccentWidth, b.Height, c.CornerRadius, Solid(b.Fill))

	text := Solid(b.Text)
	s.Text(b.X+b.Width/2-c.TimeLabelInset, b.Top()-c.TimeLabelDrop, b.TimeLabel, r.font(c.TimeFontSize), text)
	s.TextBlock(b.X+c.TextInset, b.Top()-c.TextDrop, b.Lines, r.font(c.BodyFontSize), c.LineHeight, text)
}

// RenderFile draws events into an SVG page at path. The page is written to
// a temp file in the same directory and renamed into place, so a failed
// render never leaves a truncated page behind. The temp handle is closed
// on every path.
func (r *Renderer) RenderFile(path string, events []model.Event) (Page, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".weekcal-page-*.tmp")
	if err != nil {
		return Page{}, &RenderError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	svg := NewSVGSurface(tmp, r.Config.PageWidth, r.Config.PageHeight)
	page := r.Draw(svg, events)

	err = svg.Close()
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		return page, &RenderError{Path: path, Err: err}
	}

	appLog.Info("page saved", "path", path, "boxes", len(page.Boxes()))
	return page, nil
}

package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVGSurface writes an SVG 1.1 document. It flips y so callers keep the
// bottom-left origin. The first write error is latched; later calls are
// no-ops and Close reports it.
type SVGSurface struct {
	w      *bufio.Writer
	width  float64
	height float64
	err    error
	closed bool
}

// NewSVGSurface writes the document header for a width x height page.
func NewSVGSurface(w io.Writer, width, height float64) *SVGSurface {
	s := &SVGSurface{
		w:      bufio.NewWriter(w),
		width:  width,
		height: height,
	}
	s.printf(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	s.printf(`<rect x="0" y="0" width="%s" height="%s" fill="#ffffff"/>`+"\n", num(width), num(height))
	return s
}

func (s *SVGSurface) printf(format string, args ...any) {
	if s.err != nil || s.closed {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *SVGSurface) flipY(y float64) float64 {
	return s.height - y
}

func (s *SVGSurface) Line(x1, y1, x2, y2, width float64, stroke Paint) {
	s.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"%s stroke-width="%s"/>`+"\n",
		num(x1), num(s.flipY(y1)), num(x2), num(s.flipY(y2)),
		stroke.Color.Hex(), opacity("stroke-opacity", stroke.Alpha), num(width))
}

func (s *SVGSurface) RoundRect(x, y, w, h, radius float64, fill Paint) {
	// SVG rejects negative sizes; draw the same area with a positive extent.
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r := math.Min(radius, math.Min(w, h)/2)
	s.printf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s"%s/>`+"\n",
		num(x), num(s.flipY(y+h)), num(w), num(h), num(r), num(r),
		fill.Color.Hex(), opacity("fill-opacity", fill.Alpha))
}

func (s *SVGSurface) Text(x, y float64, text string, font Font, fill Paint) {
	s.printf(`<text x="%s" y="%s"%s fill="%s"%s>%s</text>`+"\n",
		num(x), num(s.flipY(y)), fontAttrs(font),
		fill.Color.Hex(), opacity("fill-opacity", fill.Alpha), escape(text))
}

func (s *SVGSurface) TextBlock(x, y float64, lines []string, font Font, leading float64, fill Paint) {
	if len(lines) == 0 {
		return
	}
	s.printf(`<text x="%s" y="%s"%s fill="%s"%s xml:space="preserve">`,
		num(x), num(s.flipY(y)), fontAttrs(font),
		fill.Color.Hex(), opacity("fill-opacity", fill.Alpha))
	for i, line := range lines {
		dy := "0"
		if i > 0 {
			dy = num(leading)
		}
		s.printf(`<tspan x="%s" dy="%s">%s</tspan>`, num(x), dy, escape(line))
	}
	s.printf("</text>\n")
}

// Close writes the closing tag and flushes. It does not close the
// underlying writer.
func (s *SVGSurface) Close() error {
	if s.closed {
		return s.err
	}
	s.printf("</svg>\n")
	s.closed = true
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

func fontAttrs(f Font) string {
	var b strings.Builder
	if f.Family != "" {
		b.WriteString(` font-family="`)
		b.WriteString(escape(f.Family))
		b.WriteString(`"`)
	}
	if f.Bold {
		b.WriteString(` font-weight="bold"`)
	}
	if f.Size > 0 {
		b.WriteString(` font-size="`)
		b.WriteString(num(f.Size))
		b.WriteString(`"`)
	}
	return b.String()
}

func opacity(attr string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return " " + attr + `="` + num(math.Max(0, alpha)) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

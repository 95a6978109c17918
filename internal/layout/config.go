// Package layout computes the weekly timetable geometry: grid lines, day
// headers, event boxes, fill colors and wrapped box text.
//
// Coordinates use a bottom-left origin in page units, the way page
// description formats do; surfaces that draw top-down flip y themselves.
// Nothing in this package draws, so every rule here can be tested without
// a rendering backend.
package layout

// Config is the single home for every layout constant. Zero-valued fields
// are filled from DefaultConfig by Normalize, so a partial YAML block only
// overrides what it names.
type Config struct {
	PageWidth    float64 `yaml:"page_width" json:"page_width"`
	PageHeight   float64 `yaml:"page_height" json:"page_height"`
	Margin       float64 `yaml:"margin" json:"margin"`
	HeaderHeight float64 `yaml:"header_height" json:"header_height"`

	// HourUnit is the height of one hour row.
	HourUnit  float64 `yaml:"hour_unit" json:"hour_unit"`
	FirstHour int     `yaml:"first_hour" json:"first_hour"`
	LastHour  int     `yaml:"last_hour" json:"last_hour"`
	// Days is the number of rendered weekday columns starting on Monday.
	Days int `yaml:"days" json:"days"`

	CornerRadius float64 `yaml:"corner_radius" json:"corner_radius"`
	AccentWidth  float64 `yaml:"accent_width" json:"accent_width"`
	FillAlpha    float64 `yaml:"fill_alpha" json:"fill_alpha"`
	// TextDarken is subtracted from each fill channel to get the text color.
	TextDarken float64 `yaml:"text_darken" json:"text_darken"`

	// CharWidth is the average glyph advance used to estimate line width.
	CharWidth     float64 `yaml:"char_width" json:"char_width"`
	WrapPadding   float64 `yaml:"wrap_padding" json:"wrap_padding"`
	LineHeight    float64 `yaml:"line_height" json:"line_height"`
	TextTopOffset float64 `yaml:"text_top_offset" json:"text_top_offset"`

	HeaderFontSize float64 `yaml:"header_font_size" json:"header_font_size"`
	TimeFontSize   float64 `yaml:"time_font_size" json:"time_font_size"`
	BodyFontSize   float64 `yaml:"body_font_size" json:"body_font_size"`

	HeaderInset    float64 `yaml:"header_inset" json:"header_inset"`
	HeaderBaseline float64 `yaml:"header_baseline" json:"header_baseline"`
	HeaderShadow   float64 `yaml:"header_shadow" json:"header_shadow"`
	TimeLabelInset float64 `yaml:"time_label_inset" json:"time_label_inset"`
	TimeLabelDrop  float64 `yaml:"time_label_drop" json:"time_label_drop"`
	TextInset      float64 `yaml:"text_inset" json:"text_inset"`
	TextDrop       float64 `yaml:"text_drop" json:"text_drop"`
}

// DefaultConfig returns the 800x800 page with a 08:00-20:00 grid.
func DefaultConfig() Config {
	return Config{
		PageWidth:    800,
		PageHeight:   800,
		Margin:       10,
		HeaderHeight: 80,

		HourUnit:  60,
		FirstHour: 8,
		LastHour:  20,
		Days:      len(DayNames),

		CornerRadius: 3,
		AccentWidth:  4,
		FillAlpha:    0.6,
		TextDarken:   0.5,

		CharWidth:     8,
		WrapPadding:   14,
		LineHeight:    16,
		TextTopOffset: 10,

		HeaderFontSize: 20,
		TimeFontSize:   16,
		BodyFontSize:   14,

		HeaderInset:    42.5,
		HeaderBaseline: 50,
		HeaderShadow:   2,
		TimeLabelInset: 50,
		TimeLabelDrop:  20,
		TextInset:      2.5,
		TextDrop:       37.5,
	}
}

// Normalize fills zero or out-of-range values from DefaultConfig.
func (c *Config) Normalize() {
	d := DefaultConfig()

	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&c.PageWidth, d.PageWidth)
	fill(&c.PageHeight, d.PageHeight)
	fill(&c.Margin, d.Margin)
	fill(&c.HeaderHeight, d.HeaderHeight)
	fill(&c.HourUnit, d.HourUnit)
	fill(&c.CornerRadius, d.CornerRadius)
	fill(&c.AccentWidth, d.AccentWidth)
	fill(&c.TextDarken, d.TextDarken)
	fill(&c.CharWidth, d.CharWidth)
	fill(&c.WrapPadding, d.WrapPadding)
	fill(&c.LineHeight, d.LineHeight)
	fill(&c.TextTopOffset, d.TextTopOffset)
	fill(&c.HeaderFontSize, d.HeaderFontSize)
	fill(&c.TimeFontSize, d.TimeFontSize)
	fill(&c.BodyFontSize, d.BodyFontSize)
	fill(&c.HeaderInset, d.HeaderInset)
	fill(&c.HeaderBaseline, d.HeaderBaseline)
	fill(&c.HeaderShadow, d.HeaderShadow)
	fill(&c.TimeLabelInset, d.TimeLabelInset)
	fill(&c.TimeLabelDrop, d.TimeLabelDrop)
	fill(&c.TextInset, d.TextInset)
	fill(&c.TextDrop, d.TextDrop)

	if c.FillAlpha <= 0 || c.FillAlpha > 1 {
		c.FillAlpha = d.FillAlpha
	}
	if c.FirstHour <= 0 && c.LastHour <= 0 {
		c.FirstHour, c.LastHour = d.FirstHour, d.LastHour
	}
	if c.FirstHour < 0 || c.LastHour > 24 || c.FirstHour >= c.LastHour {
		c.FirstHour, c.LastHour = d.FirstHour, d.LastHour
	}
	if c.Days <= 0 || c.Days > len(DayNames) {
		c.Days = d.Days
	}
}

// ColumnWidth is the width of one day column.
func (c Config) ColumnWidth() float64 {
	return (c.PageWidth - 2*c.Margin) / float64(c.Days)
}

// GridTop is the y of the FirstHour line, just below the header band.
func (c Config) GridTop() float64 {
	return c.PageHeight - c.HeaderHeight
}

// HourSpan is the number of hour rows between FirstHour and LastHour.
func (c Config) HourSpan() int {
	return c.LastHour - c.FirstHour
}

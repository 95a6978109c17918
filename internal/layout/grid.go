package layout

import (
	"time"

	"weekcal/internal/model"
)

// DayNames are the column headers, Monday first.
var DayNames = []string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì"}

// HourLine is one horizontal hour boundary of the grid.
type HourLine struct {
	Hour   int
	Y      float64
	X1, X2 float64
}

// Header is one day-column label.
type Header struct {
	Label string
	X, Y  float64
}

// HourLines returns FirstHour..LastHour inclusive, top to bottom.
func (c Config) HourLines() []HourLine {
	out := make([]HourLine, 0, c.HourSpan()+1)
	for h := c.FirstHour; h <= c.LastHour; h++ {
		out = append(out, HourLine{
			Hour: h,
			Y:    c.GridTop() - float64(h-c.FirstHour)*c.HourUnit,
			X1:   c.Margin,
			X2:   c.PageWidth - c.Margin,
		})
	}
	return out
}

// Headers returns one label anchor per rendered day column.
func (c Config) Headers() []Header {
	out := make([]Header, 0, c.Days)
	for i := 0; i < c.Days; i++ {
		out = append(out, Header{
			Label: DayNames[i],
			X:     c.Margin + float64(i)*c.ColumnWidth() + c.HeaderInset,
			Y:     c.PageHeight - c.HeaderBaseline,
		})
	}
	return out
}

// DayIndex maps t to a column index with Monday = 0 and Sunday = 6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Place computes the box rectangle for ev. It reports false when ev starts
// outside the rendered columns or outside [FirstHour, LastHour). The
// height follows the full duration and is not guarded, so degenerate
// events produce zero or negative heights.
func (c Config) Place(ev model.Event) (Box, bool) {
	day := DayIndex(ev.Start)
	if day >= c.Days {
		return Box{}, false
	}
	hour := ev.Start.Hour()
	if hour < c.FirstHour || hour >= c.LastHour {
		return Box{}, false
	}

	offset := float64(hour-c.FirstHour) + float64(ev.Start.Minute())/60
	top := c.GridTop() - offset*c.HourUnit
	height := ev.Duration().Hours() * c.HourUnit

	return Box{
		Event:  ev,
		Day:    day,
		X:      c.Margin + float64(day)*c.ColumnWidth(),
		Y:      top - height,
		Width:  c.ColumnWidth(),
		Height: height,
	}, true
}

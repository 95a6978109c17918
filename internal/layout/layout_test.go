package layout

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekcal/internal/model"
)

// 2024-01-08 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, 8+day, hour, minute, 0, 0, time.UTC)
}

func event(name string, day, sh, sm, eh, em int) model.Event {
	return model.Event{
		Name:     name,
		Location: "Room1",
		Start:    at(day, sh, sm),
		End:      at(day, eh, em),
	}
}

func TestDefaultConfigGeometry(t *testing.T) {
	c := DefaultConfig()
	assert.InDelta(t, 156.0, c.ColumnWidth(), 1e-9)
	assert.InDelta(t, 720.0, c.GridTop(), 1e-9)

	lines := c.HourLines()
	require.Len(t, lines, 13)
	assert.Equal(t, 8, lines[0].Hour)
	assert.Equal(t, 20, lines[12].Hour)
	assert.InDelta(t, 720.0, lines[0].Y, 1e-9)
	assert.InDelta(t, 0.0, lines[12].Y, 1e-9)
	for i := 1; i < len(lines); i++ {
		assert.InDelta(t, c.HourUnit, lines[i-1].Y-lines[i].Y, 1e-9)
	}

	headers := c.Headers()
	require.Len(t, headers, 5)
	assert.Equal(t, "Lunedì", headers[0].Label)
	assert.Equal(t, "Venerdì", headers[4].Label)
	assert.InDelta(t, 52.5, headers[0].X, 1e-9)
	assert.InDelta(t, 750.0, headers[0].Y, 1e-9)
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	c := Config{PageWidth: 1000, Days: 9, FirstHour: 10, LastHour: 9}
	c.Normalize()

	assert.Equal(t, 1000.0, c.PageWidth)
	assert.Equal(t, 800.0, c.PageHeight)
	assert.Equal(t, 5, c.Days)
	assert.Equal(t, 8, c.FirstHour)
	assert.Equal(t, 20, c.LastHour)
	assert.Equal(t, 0.6, c.FillAlpha)
}

func TestPlaceWindow(t *testing.T) {
	c := DefaultConfig()

	cases := []struct {
		name string
		ev   model.Event
		want bool
	}{
		{"monday morning", event("a", 0, 9, 0, 10, 0), true},
		{"friday last slot", event("a", 4, 19, 30, 20, 30), true},
		{"first hour", event("a", 2, 8, 0, 9, 0), true},
		{"before grid", event("a", 1, 7, 59, 9, 0), false},
		{"at last hour", event("a", 3, 20, 0, 21, 0), false},
		{"saturday", event("a", 5, 9, 0, 10, 0), false},
		{"sunday", event("a", 6, 9, 0, 10, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := c.Place(tc.ev)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestPlaceGeometry(t *testing.T) {
	c := DefaultConfig()

	box, ok := c.Place(event("a", 2, 8, 30, 9, 0))
	require.True(t, ok)
	assert.Equal(t, 2, box.Day)
	assert.InDelta(t, 322.0, box.X, 1e-9)
	assert.InDelta(t, 156.0, box.Width, 1e-9)
	assert.InDelta(t, 30.0, box.Height, 1e-9)
	assert.InDelta(t, 690.0, box.Top(), 1e-9)
	assert.InDelta(t, 660.0, box.Y, 1e-9)
}

func TestPlaceDegenerateDurationIsNotGuarded(t *testing.T) {
	c := DefaultConfig()

	zero, ok := c.Place(event("a", 0, 9, 0, 9, 0))
	require.True(t, ok)
	assert.Zero(t, zero.Height)

	neg, ok := c.Place(event("a", 0, 10, 0, 9, 0))
	require.True(t, ok)
	assert.InDelta(t, -60.0, neg.Height, 1e-9)
	assert.InDelta(t, 600.0, neg.Top(), 1e-9)
}

func TestConsecutiveEventsStackWithoutGap(t *testing.T) {
	c := DefaultConfig()

	first, ok := c.Place(event("Math", 0, 9, 0, 10, 0))
	require.True(t, ok)
	second, ok := c.Place(event("Math", 0, 10, 0, 11, 30))
	require.True(t, ok)

	assert.InDelta(t, first.Y, second.Top(), 1e-9)
	assert.InDelta(t, 90.0, second.Height, 1e-9)
	assert.Less(t, second.Y, first.Y)
}

func TestAssignColorsFirstSeenOrder(t *testing.T) {
	palette := DefaultPalette()
	events := []model.Event{
		event("B", 0, 9, 0, 10, 0),
		event("A", 0, 10, 0, 11, 0),
		event("B", 1, 9, 0, 10, 0),
	}

	a := AssignColors(events, palette)
	assert.Equal(t, []string{"B", "A"}, a.Names())

	b, ok := a.Color("B")
	require.True(t, ok)
	assert.Equal(t, palette[0], b)

	got, ok := a.Color("A")
	require.True(t, ok)
	assert.Equal(t, palette[1], got)

	_, ok = a.Color("missing")
	assert.False(t, ok)
}

func TestAssignColorsCyclesPalette(t *testing.T) {
	palette := DefaultPalette()
	require.Len(t, palette, 8)

	var events []model.Event
	for i := 1; i <= 9; i++ {
		events = append(events, event(fmt.Sprintf("course-%d", i), 0, 9, 0, 10, 0))
	}

	a := AssignColors(events, palette)
	assert.Equal(t, 9, a.Len())

	first, _ := a.Color("course-1")
	ninth, _ := a.Color("course-9")
	eighth, _ := a.Color("course-8")
	assert.Equal(t, first, ninth)
	assert.NotEqual(t, first, eighth)
}

func TestAssignColorsIsDeterministic(t *testing.T) {
	var events []model.Event
	for _, n := range []string{"x", "y", "z", "w", "x", "q"} {
		events = append(events, event(n, 0, 9, 0, 10, 0))
	}
	want := AssignColors(events, nil)
	for i := 0; i < 20; i++ {
		got := AssignColors(events, nil)
		for _, n := range want.Names() {
			wc, _ := want.Color(n)
			gc, _ := got.Color(n)
			assert.Equal(t, wc, gc, n)
		}
	}
}

func TestHexRoundTripAndErrors(t *testing.T) {
	c, err := ParseHex("#e74c3c")
	require.NoError(t, err)
	assert.InDelta(t, 231.0/255, c.R, 1e-9)
	assert.Equal(t, "#e74c3c", c.Hex())

	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("zzzzzz")
	assert.Error(t, err)

	_, err = ParsePalette([]string{"#ffffff", "nope"})
	assert.Error(t, err)
}

func TestTextColorFloorsAtZero(t *testing.T) {
	fill, err := ParseHex("#e74c3c")
	require.NoError(t, err)

	got := TextColor(fill, 0.5)
	assert.InDelta(t, 231.0/255-0.5, got.R, 1e-9)
	assert.Zero(t, got.G)
	assert.Zero(t, got.B)
}

func TestMaxLines(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 0, c.MaxLines(30))
	assert.Equal(t, 0, c.MaxLines(42))
	assert.Equal(t, 2, c.MaxLines(60))
	assert.Equal(t, 3, c.MaxLines(90))
	assert.Equal(t, 0, c.MaxLines(-60))
}

func TestWrap(t *testing.T) {
	c := DefaultConfig()

	cases := []struct {
		name   string
		texts  []string
		height float64
		want   []string
	}{
		{
			name:   "breaks between words",
			texts:  []string{"Analisi Matematica Uno", "Aula Magna"},
			height: 120,
			want:   []string{"Analisi", "Matematica Uno", "Aula Magna"},
		},
		{
			name:   "truncates to box height",
			texts:  []string{"Analisi Matematica Uno", "Aula Magna"},
			height: 60,
			want:   []string{"Analisi", "Matematica Uno"},
		},
		{
			name:   "splits overlong word",
			texts:  []string{"Supercalifragilistic"},
			height: 120,
			want:   []string{"Supercalifragilis", "tic"},
		},
		{
			name:   "too short for any line",
			texts:  []string{"Math", "Room1"},
			height: 30,
			want:   nil,
		},
		{
			name:   "skips empty text",
			texts:  []string{"", "Room1"},
			height: 120,
			want:   []string{"Room1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Wrap(tc.texts, c.ColumnWidth(), tc.height)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapNeverOverflows(t *testing.T) {
	c := DefaultConfig()
	texts := []string{
		"Laboratorio di Programmazione Avanzata e Sistemi Distribuiti",
		"Edificio U14 Aula Seminari Piano Terra",
		"Antidisestablishmentarianism",
		"à è ì ò ù Mercoledì",
	}

	for _, width := range []float64{30, 60, 100, 156, 300} {
		for _, height := range []float64{0, 20, 45, 60, 90, 150, 400} {
			name := fmt.Sprintf("w%.0f_h%.0f", width, height)
			t.Run(name, func(t *testing.T) {
				lines := c.Wrap(texts, width, height)
				assert.LessOrEqual(t, len(lines), c.MaxLines(height))
				if len(lines) > 0 {
					assert.Less(t, float64(len(lines)+1)*c.LineHeight+c.TextTopOffset, height)
				}
				for _, l := range lines {
					assert.LessOrEqual(t, c.EstimateWidth(l), width-c.WrapPadding, l)
					assert.NotEmpty(t, strings.TrimSpace(l))
				}
			})
		}
	}
}

func TestLayoutEmitsBoxesOnlyInsideWindow(t *testing.T) {
	c := DefaultConfig()
	events := []model.Event{
		event("Math", 0, 9, 0, 10, 0),
		event("Art", 5, 9, 0, 10, 0),
		event("Math", 0, 10, 0, 11, 30),
		event("Late", 2, 21, 0, 22, 0),
	}

	plan := c.Layout(events, nil)
	require.Len(t, plan.Boxes, 2)
	assert.Equal(t, 2, plan.Skipped)
	assert.Equal(t, []string{"Math", "Art", "Late"}, plan.Colors.Names())

	a, b := plan.Boxes[0], plan.Boxes[1]
	assert.Equal(t, a.Fill, b.Fill)
	assert.Equal(t, TextColor(a.Fill, c.TextDarken), a.Text)
	assert.Equal(t, "09:00 - 10:00", a.TimeLabel)
	assert.Equal(t, "10:00 - 11:30", b.TimeLabel)
	assert.Equal(t, []string{"Math", "Room1"}, a.Lines)
	assert.InDelta(t, a.Y, b.Top(), 1e-9)
}

func TestLayoutCountsSkippedAllDayEvents(t *testing.T) {
	c := DefaultConfig()
	holiday := model.Event{
		Name:   "Festa",
		AllDay: true,
		Start:  at(2, 0, 0),
		End:    at(3, 0, 0),
	}
	events := []model.Event{
		event("Math", 0, 9, 0, 10, 0),
		holiday,
		event("Late", 2, 21, 0, 22, 0),
	}

	plan := c.Layout(events, nil)
	assert.Len(t, plan.Boxes, 1)
	assert.Equal(t, 2, plan.Skipped)
	assert.Equal(t, 1, plan.SkippedAllDay)
}

package layout

import "weekcal/internal/model"

// Box is the rendered rectangle for one event, bottom-left anchored.
type Box struct {
	Event model.Event
	Day   int

	X, Y          float64
	Width, Height float64

	Fill      Color
	Text      Color
	TimeLabel string
	Lines     []string
}

// Top is the y of the box's upper edge, where the event starts.
func (b Box) Top() float64 {
	return b.Y + b.Height
}

// Plan is the full result of laying out one set of events.
type Plan struct {
	Colors *ColorAssignment
	Boxes  []Box
	// Skipped counts events outside the rendered day/hour window.
	Skipped int
	// SkippedAllDay is the share of Skipped that were all-day events.
	SkippedAllDay int
}

// Layout assigns colors over every event first, then places, colors and
// wraps each event that falls inside the grid, preserving input order.
func (c Config) Layout(events []model.Event, palette []Color) Plan {
	plan := Plan{Colors: AssignColors(events, palette)}

	for _, ev := range events {
		box, ok := c.Place(ev)
		if !ok {
			plan.Skipped++
			if ev.AllDay {
				plan.SkippedAllDay++
			}
			continue
		}
		box.Fill, _ = plan.Colors.Color(ev.Name)
		box.Text = TextColor(box.Fill, c.TextDarken)
		box.TimeLabel = TimeLabel(ev)
		box.Lines = c.Wrap([]string{ev.Name, ev.Location}, box.Width, box.Height)
		plan.Boxes = append(plan.Boxes, box)
	}
	return plan
}

// TimeLabel formats "HH:MM - HH:MM".
func TimeLabel(ev model.Event) string {
	return ev.Start.Format("15:04") + " - " + ev.End.Format("15:04")
}

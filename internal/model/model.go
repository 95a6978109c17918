package model

import "time"

// DefaultLocation is used when a VEVENT carries no LOCATION property.
const DefaultLocation = "Location not specified"

// Event is one calendar item as seen by the timetable renderer.
//
// Name is the color-grouping key: two events with the exact same Name
// always share a fill color. Start/End are already converted into the
// display timezone. End > Start is expected but not enforced.
type Event struct {
	Name     string
	Location string

	// AllDay is set for DATE-valued starts; those land at midnight and
	// fall outside any daytime grid.
	AllDay bool

	Start time.Time
	End   time.Time
}

// Duration returns End - Start. It may be zero or negative for
// malformed input.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

package ics

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"

	appLog "weekcal/internal/log"
	"weekcal/internal/model"
)

// ParseError reports an input that is missing, unreadable or not valid
// calendar data. Nothing is rendered when extraction fails.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ics: cannot parse %s: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// The library has already unescaped TEXT values; only real line breaks
// are folded so labels stay on one line.
var lineFolder = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ExtractFile reads the calendar at path and extracts its events.
func ExtractFile(path string, loc *time.Location) ([]model.Event, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Input: path, Err: err}
	}
	return Extract(Source{ID: path}, body, loc)
}

// Extract parses one ICS payload into events in file order, with start and
// end converted to loc (time.Local when nil).
//
//   - SUMMARY becomes Name; LOCATION defaults to model.DefaultLocation.
//   - A VEVENT without a usable DTSTART makes the whole payload invalid.
//   - A missing DTEND yields a zero-length event.
//   - Floating times are read as wall clock in loc; all-day dates become
//     midnight in loc.
func Extract(src Source, body []byte, loc *time.Location) ([]model.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ParseError{Input: src.label(), Err: errors.New("empty ICS body")}
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "input", src.label())
		return nil, &ParseError{Input: src.label(), Err: err}
	}

	events := make([]model.Event, 0)
	for i, ve := range cal.Events() {
		ev, err := convertVEvent(ve, loc)
		if err != nil {
			return nil, &ParseError{Input: src.label(), Err: fmt.Errorf("vevent %d: %w", i, err)}
		}
		events = append(events, ev)
	}

	appLog.Info("ics parse completed", "input", src.label(), "event_count", len(events), "timezone", loc.String())
	return events, nil
}

func convertVEvent(ve *ical.VEvent, loc *time.Location) (model.Event, error) {
	var out model.Event

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Name = lineFolder.Replace(p.Value)
	}
	out.Location = model.DefaultLocation
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = lineFolder.Replace(p.Value)
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return out, errors.New("missing DTSTART")
	}
	libStart, libErr := ve.GetStartAt()
	start, allDay, err := resolveTime(startProp, libStart, libErr, loc)
	if err != nil {
		return out, fmt.Errorf("DTSTART: %w", err)
	}
	out.Start = start
	out.AllDay = allDay
	out.End = start

	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		libEnd, libErr := ve.GetEndAt()
		end, _, err := resolveTime(endProp, libEnd, libErr, loc)
		if err != nil {
			return out, fmt.Errorf("DTEND: %w", err)
		}
		out.End = end
	}

	return out, nil
}

// resolveTime turns a DTSTART/DTEND property into an instant in loc. The
// library's own timezone handling is preferred; parseICSTime covers
// values it rejects, such as TZIDs it cannot load.
func resolveTime(p *ical.IANAProperty, libTime time.Time, libErr error, loc *time.Location) (time.Time, bool, error) {
	val := strings.TrimSpace(p.Value)
	tzid := param(p, "TZID")

	if isDateOnly(p) {
		t, err := time.ParseInLocation("20060102", val, loc)
		if err != nil {
			return time.Time{}, true, err
		}
		return t, true, nil
	}

	// Floating time: wall clock in the display zone.
	if tzid == "" && !strings.HasSuffix(val, "Z") {
		t, err := time.ParseInLocation("20060102T150405", val, loc)
		return t, false, err
	}

	if libErr == nil && !libTime.IsZero() {
		return libTime.In(loc), false, nil
	}

	t, err := parseICSTime(val, tzid, loc)
	if err != nil {
		if libErr != nil {
			return time.Time{}, false, errors.Join(libErr, err)
		}
		return time.Time{}, false, err
	}
	return t.In(loc), false, nil
}

func isDateOnly(p *ical.IANAProperty) bool {
	if strings.EqualFold(param(p, "VALUE"), "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func param(p *ical.IANAProperty, name string) string {
	if p.ICalParameters == nil {
		return ""
	}
	if vs, ok := p.ICalParameters[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// parseICSTime parses a DATE-TIME value. UTC values end in Z; otherwise the
// TZID zone is used when it loads, and fallback when it does not.
func parseICSTime(v, tzid string, fallback *time.Location) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}

	zone := fallback
	if tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			zone = l
		} else {
			appLog.Warn("unknown TZID; using display timezone", "tzid", tzid, "timezone", fallback.String())
		}
	}
	return time.ParseInLocation("20060102T150405", v, zone)
}

// ResolveLocation loads an IANA zone name, falling back to time.Local.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

package datemath

import (
	"strings"
	"time"
)

// Parser converts raw candidate strings into structured Suggestions in a
// single fixed local zone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string,
// e.g. "Asia/Tokyo".
func NewParser(timezone string) (*Parser, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's local zone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Clock returns a reference clock at now, expressed in the parser's zone.
func (p *Parser) Clock(now time.Time) Clock {
	return NewClock(now.In(p.location))
}

// Parse converts one raw candidate into a Suggestion. It returns nil when no
// valid month and day can be found; the caller drops such candidates.
func (p *Parser) Parse(raw string, clock Clock) *Suggestion {
	text := Normalize(strings.TrimSpace(raw))
	if text == "" {
		return nil
	}

	dm, ok := firstDate(text)
	if !ok {
		return nil
	}

	year := clock.Now().In(p.location).Year()
	if dm.parts.hasYear {
		year = dm.parts.year
	}
	date := time.Date(year, time.Month(dm.parts.month), dm.parts.day, 0, 0, 0, 0, p.location)
	if int(date.Month()) != dm.parts.month || date.Day() != dm.parts.day {
		return nil
	}

	s := &Suggestion{
		OriginalText: raw,
		Year:         year,
		Month:        dm.parts.month,
		Day:          dm.parts.day,
		Weekday:      MondayIndex(date),
		Date:         date,
	}

	// Blank out the date so its digits cannot be read as a time.
	masked := text[:dm.start] + strings.Repeat(" ", dm.end-dm.start) + text[dm.end:]
	if tm, ok := firstTime(masked); ok {
		if start, end, ok := resolveTimeRange(date, tm.parts, strings.Contains(text, markerPM)); ok {
			s.HasTime = true
			s.Start = start
			s.End = end
		}
	}

	return s
}

// ParseAll parses every raw candidate, dropping failures and duplicates.
func (p *Parser) ParseAll(raws []string, clock Clock) []Suggestion {
	seen := make(map[string]bool, len(raws))
	out := make([]Suggestion, 0, len(raws))
	for _, raw := range raws {
		s := p.Parse(raw, clock)
		if s == nil {
			continue
		}
		if k := s.key(); !seen[k] {
			seen[k] = true
			out = append(out, *s)
		}
	}
	return out
}

func firstDate(text string) (dateMatch, bool) {
	for _, pat := range datePatterns {
		for _, idx := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			if !boundaryOK(text, idx[0], idx[1]) {
				continue
			}
			parts := pat.extract(submatches(text, idx))
			if !validMonthDay(parts.month, parts.day) {
				continue
			}
			return dateMatch{span: span{start: idx[0], end: idx[1]}, text: text[idx[0]:idx[1]], parts: parts}, true
		}
	}
	return dateMatch{}, false
}

func firstTime(text string) (timeMatch, bool) {
	for _, pat := range timePatterns {
		for _, idx := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			if !boundaryOK(text, idx[0], idx[1]) {
				continue
			}
			return timeMatch{span: span{start: idx[0], end: idx[1]}, text: text[idx[0]:idx[1]], parts: pat.extract(submatches(text, idx))}, true
		}
	}
	return timeMatch{}, false
}

// resolveTimeRange anchors tp on date. A single time becomes a one-hour window.
// pmHint applies 午後 to sides without an explicit marker.
func resolveTimeRange(date time.Time, tp timeParts, pmHint bool) (time.Time, time.Time, bool) {
	startMarker, endMarker := tp.startMarker, tp.endMarker
	if tp.hasEnd {
		if endMarker == "" {
			endMarker = startMarker
		}
		if startMarker == "" && (endMarker == markerEnAM || endMarker == markerEnPM) {
			startMarker = endMarker
		}
	}
	if pmHint {
		if startMarker == "" {
			startMarker = markerPM
		}
		if endMarker == "" {
			endMarker = markerPM
		}
	}

	sh := applyMarker(tp.startHour, startMarker)
	if !validClock(sh, tp.startMinute) {
		return time.Time{}, time.Time{}, false
	}
	start := date.Add(time.Duration(sh)*time.Hour + time.Duration(tp.startMinute)*time.Minute)

	if !tp.hasEnd {
		return start, start.Add(time.Hour), true
	}

	eh := applyMarker(tp.endHour, endMarker)
	if !validClock(eh, tp.endMinute) {
		return time.Time{}, time.Time{}, false
	}
	end := date.Add(time.Duration(eh)*time.Hour + time.Duration(tp.endMinute)*time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

func applyMarker(hour int, marker string) int {
	switch marker {
	case markerPM, markerEnPM:
		if hour < 12 {
			return hour + 12
		}
	case markerAM, markerEnAM:
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func validClock(hour, minute int) bool {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return false
	}
	return hour < 24 || minute == 0
}

package datemath

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var weekdayKanji = [7]string{"月", "火", "水", "木", "金", "土", "日"}

const (
	markerAM   = "午前"
	markerPM   = "午後"
	markerEnAM = "am"
	markerEnPM = "pm"
)

// Building blocks shared by the pattern table.
const (
	weekdaySuffix = `(?:\s*[(（][月火水木金土日](?:曜日?)?[)）])?`
	meridiem      = `(?:(午前|午後)\s*)?`
	rangeDash     = `\s*(?:[〜~～\-－ー–]|から)\s*`
	connective    = `\s*(?:[のはに、,]\s*)?`
)

// datePattern is one capability entry of the date pattern table.
type datePattern struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) dateParts
}

// timePattern is one capability entry of the time pattern table.
type timePattern struct {
	name    string
	re      *regexp.Regexp
	isRange bool
	extract func(m []string) timeParts
}

// datePatterns is evaluated in priority order: full, partial, slash.
var datePatterns = []datePattern{
	{
		name: "full",
		re:   regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日` + weekdaySuffix),
		extract: func(m []string) dateParts {
			return dateParts{year: atoi(m[1]), month: atoi(m[2]), day: atoi(m[3]), hasYear: true}
		},
	},
	{
		name: "partial",
		re:   regexp.MustCompile(`(\d{1,2})月\s*(\d{1,2})日` + weekdaySuffix),
		extract: func(m []string) dateParts {
			return dateParts{month: atoi(m[1]), day: atoi(m[2])}
		},
	},
	{
		name: "slash",
		re:   regexp.MustCompile(`(\d{1,2})/(\d{1,2})` + weekdaySuffix),
		extract: func(m []string) dateParts {
			return dateParts{month: atoi(m[1]), day: atoi(m[2])}
		},
	},
}

// timePatterns is evaluated in priority order: ranges before single times,
// AM/PM forms before bare colon forms so the suffix is not lost.
var timePatterns = []timePattern{
	{
		name:    "ampm_range",
		re:      regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm])?` + rangeDash + `(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm])\b`),
		isRange: true,
		extract: func(m []string) timeParts {
			return timeParts{
				startHour: atoi(m[1]), startMinute: atoi(m[2]), startMarker: strings.ToLower(m[3]),
				hasEnd:  true,
				endHour: atoi(m[4]), endMinute: atoi(m[5]), endMarker: strings.ToLower(m[6]),
			}
		},
	},
	{
		name:    "colon_range",
		re:      regexp.MustCompile(meridiem + `(\d{1,2}):(\d{2})` + rangeDash + meridiem + `(\d{1,2}):(\d{2})`),
		isRange: true,
		extract: func(m []string) timeParts {
			return timeParts{
				startMarker: m[1], startHour: atoi(m[2]), startMinute: atoi(m[3]),
				hasEnd:    true,
				endMarker: m[4], endHour: atoi(m[5]), endMinute: atoi(m[6]),
			}
		},
	},
	{
		name:    "kanji_range",
		re:      regexp.MustCompile(meridiem + `(\d{1,2})時(?:(\d{1,2})分|(半))?` + rangeDash + meridiem + `(\d{1,2})時(?:(\d{1,2})分|(半))?`),
		isRange: true,
		extract: func(m []string) timeParts {
			return timeParts{
				startMarker: m[1], startHour: atoi(m[2]), startMinute: kanjiMinute(m[3], m[4]),
				hasEnd:    true,
				endMarker: m[5], endHour: atoi(m[6]), endMinute: kanjiMinute(m[7], m[8]),
			}
		},
	},
	{
		name: "ampm_single",
		re:   regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm])\b`),
		extract: func(m []string) timeParts {
			return timeParts{startHour: atoi(m[1]), startMinute: atoi(m[2]), startMarker: strings.ToLower(m[3])}
		},
	},
	{
		name: "colon_single",
		re:   regexp.MustCompile(meridiem + `(\d{1,2}):(\d{2})`),
		extract: func(m []string) timeParts {
			return timeParts{startMarker: m[1], startHour: atoi(m[2]), startMinute: atoi(m[3])}
		},
	},
	{
		name: "kanji_single",
		re:   regexp.MustCompile(meridiem + `(\d{1,2})時(?:(\d{1,2})分|(半))?`),
		extract: func(m []string) timeParts {
			return timeParts{startMarker: m[1], startHour: atoi(m[2]), startMinute: kanjiMinute(m[3], m[4])}
		},
	},
}

// combinedPatterns holds every "date immediately followed by time" adjacency,
// built once from the two tables above.
var combinedPatterns = buildCombinedPatterns()

func buildCombinedPatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(datePatterns)*len(timePatterns))
	for _, d := range datePatterns {
		for _, t := range timePatterns {
			out = append(out, regexp.MustCompile(d.re.String()+connective+t.re.String()))
		}
	}
	return out
}

var normalizer = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	"：", ":", "／", "/", "　", " ",
)

// Normalize folds full-width digits and separators to their ASCII forms.
func Normalize(text string) string {
	return normalizer.Replace(text)
}

// boundaryOK rejects matches glued to surrounding digits or slashes: the "24/12"
// inside "2024/12/25", the "5/10" inside "5/100".
func boundaryOK(text string, start, end int) bool {
	if start > 0 {
		if c := text[start-1]; isDigit(c) || c == '/' {
			return false
		}
	}
	if end < len(text) {
		c := text[end]
		if c == '/' || (isDigit(c) && isDigit(text[end-1])) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func kanjiMinute(minute, half string) int {
	if half != "" {
		return 30
	}
	return atoi(minute)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// submatches expands index pairs into strings, "" for unmatched groups.
func submatches(text string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// findDates returns every date match, suppressing lower-priority hits that
// overlap an already accepted span.
func findDates(text string) []dateMatch {
	var out []dateMatch
	var accepted []span
	for _, p := range datePatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			sp := span{start: idx[0], end: idx[1]}
			if !boundaryOK(text, sp.start, sp.end) || overlapsAny(sp, accepted) {
				continue
			}
			parts := p.extract(submatches(text, idx))
			if !validMonthDay(parts.month, parts.day) {
				continue
			}
			accepted = append(accepted, sp)
			out = append(out, dateMatch{span: sp, text: text[sp.start:sp.end], parts: parts})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// findTimes returns every time match sorted by position, ranges first, with the
// same overlap suppression as findDates.
func findTimes(text string) []timeMatch {
	var out []timeMatch
	var accepted []span
	for _, p := range timePatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			sp := span{start: idx[0], end: idx[1]}
			if !boundaryOK(text, sp.start, sp.end) || overlapsAny(sp, accepted) {
				continue
			}
			accepted = append(accepted, sp)
			out = append(out, timeMatch{span: sp, text: text[sp.start:sp.end], parts: p.extract(submatches(text, idx))})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func overlapsAny(sp span, spans []span) bool {
	for _, o := range spans {
		if sp.overlaps(o) {
			return true
		}
	}
	return false
}

package datemath

import (
	"sort"
	"strings"
)

// DefaultProximityChars is the maximum rune distance at which a separate date
// and time mention are paired into one candidate.
const DefaultProximityChars = 100

// Extractor scans free text for date and time mentions and returns raw
// candidate strings for the Parser.
type Extractor struct {
	proximityChars int
}

// NewExtractor creates an Extractor. A non-positive proximity selects
// DefaultProximityChars.
func NewExtractor(proximityChars int) *Extractor {
	if proximityChars <= 0 {
		proximityChars = DefaultProximityChars
	}
	return &Extractor{proximityChars: proximityChars}
}

// Extract returns deduplicated raw candidates found in text. A non-empty
// preExtracted list from an upstream structured step is returned as is and
// pattern scanning is skipped.
func (e *Extractor) Extract(text string, preExtracted []string) []string {
	if pre := nonBlank(preExtracted); len(pre) > 0 {
		return pre
	}

	text = Normalize(text)

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, c := range combinedMatches(text) {
		add(c)
	}

	dates := findDates(text)
	times := findTimes(text)

	for _, d := range dates {
		add(d.text)
	}

	runeAt := runeOffsets(text)
	timePos := make([]int, len(times))
	for i, t := range times {
		timePos[i] = runeAt[t.start]
	}
	for _, d := range dates {
		i, dist, ok := nearestTime(runeAt[d.start], timePos)
		if ok && dist < e.proximityChars {
			add(d.text + " " + times[i].text)
		}
	}

	return out
}

// combinedMatches returns every date immediately followed by a time. Later
// (lower priority) adjacencies overlapping an accepted one are dropped.
func combinedMatches(text string) []string {
	var accepted []span
	var out []string
	for _, re := range combinedPatterns {
		for _, idx := range re.FindAllStringIndex(text, -1) {
			sp := span{start: idx[0], end: idx[1]}
			if !boundaryOK(text, sp.start, sp.end) || overlapsAny(sp, accepted) {
				continue
			}
			accepted = append(accepted, sp)
			out = append(out, text[sp.start:sp.end])
		}
	}
	return out
}

// runeOffsets maps the byte offset of every rune in text to its rune index.
// Offsets inside a multi-byte rune are left zero.
func runeOffsets(text string) []int {
	out := make([]int, len(text)+1)
	n := 0
	for i := range text {
		out[i] = n
		n++
	}
	out[len(text)] = n
	return out
}

// nearestTime returns the index into the ascending positions of the time closest
// to pos and its rune distance. On a tie the earlier time wins.
func nearestTime(pos int, positions []int) (int, int, bool) {
	if len(positions) == 0 {
		return 0, 0, false
	}
	i := sort.SearchInts(positions, pos)
	if i == len(positions) {
		return i - 1, pos - positions[i-1], true
	}
	if i == 0 {
		return 0, positions[0] - pos, true
	}
	before, after := pos-positions[i-1], positions[i]-pos
	if before <= after {
		return i - 1, before, true
	}
	return i, after, true
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

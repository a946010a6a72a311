package selector

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches an optionally signed number with an optional
// '.' or ',' decimal separator. Only the first match on a line is used.
var numberPattern = regexp.MustCompile(`[-+]?[0-9]*[.,]?[0-9]+`)

// ParseEntries turns raw multi-line text into entries. Blank lines and
// lines without a number are skipped without error; positions are
// assigned to the produced entries in input order.
func ParseEntries(raw string) ([]Entry, ParseStats) {
	lines := strings.Split(raw, "\n")

	stats := ParseStats{Lines: len(lines)}
	entries := make([]Entry, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			stats.Blank++
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			stats.Dropped++
			continue
		}
		entry.Position = len(entries)
		entry.Line = i + 1
		entries = append(entries, entry)
	}

	return entries, stats
}

// parseLine extracts the first number on an already trimmed line
func parseLine(line string) (Entry, bool) {
	loc := numberPattern.FindStringIndex(line)
	if loc == nil {
		return Entry{}, false
	}

	value, ok := parseNumber(line[loc[0]:loc[1]])
	if !ok {
		return Entry{}, false
	}

	name := line[:loc[0]] + line[loc[1]:]

	return Entry{
		Name:     strings.TrimSpace(name),
		Value:    value,
		Original: line,
	}, true
}

// parseNumber parses a number using either '.' or ',' as the decimal
// separator. Values that are not finite are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

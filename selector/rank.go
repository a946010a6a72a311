package selector

import (
	"cmp"
	"math"
	"slices"
)

// rankedEntry pairs an entry with its precomputed distance
type rankedEntry struct {
	entry    Entry
	distance float64
}

// rankByDistance sorts entries by distance to target, breaking exact
// ties by input position.
func rankByDistance(entries []Entry, target float64) []rankedEntry {
	ranked := make([]rankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = rankedEntry{entry: e, distance: math.Abs(e.Value - target)}
	}

	slices.SortStableFunc(ranked, func(a, b rankedEntry) int {
		if a.distance != b.distance {
			return cmp.Compare(a.distance, b.distance)
		}
		return cmp.Compare(a.entry.Position, b.entry.Position)
	})

	return ranked
}

// Rank returns the winnerCount entries closest to target. With
// TiesIncludeAll, entries following the window at exactly the same
// distance as the last selected one are appended. A winnerCount larger
// than the number of entries selects all of them.
func Rank(entries []Entry, target float64, winnerCount int, ties TieMode) []Winner {
	ranked := rankByDistance(entries, target)

	n := min(max(winnerCount, 0), len(ranked))

	if ties == TiesIncludeAll && n > 0 {
		cutoff := ranked[n-1].distance
		for n < len(ranked) && ranked[n].distance == cutoff {
			n++
		}
	}

	winners := make([]Winner, 0, n)
	for _, r := range ranked[:n] {
		winners = append(winners, Winner{Entry: r.entry, Distance: r.distance})
	}
	return winners
}

// ExactMatches returns the entries whose value equals target, in the
// order given.
func ExactMatches(entries []Entry, target float64) []Winner {
	var winners []Winner
	for _, e := range entries {
		if e.Value == target {
			winners = append(winners, Winner{Entry: e, Distance: 0})
		}
	}
	return winners
}

// Package selector implements the winner selection engine.
//
// The selector reads free form "name number" lines, collapses repeated
// names and picks the entries whose numbers are closest to a target.
// Each call is independent: entries are parsed fresh from the raw input
// and nothing is kept between calls.
//
// # Pipeline
//
// A selection runs five steps in order:
//   - Parse: every non-blank line with a number becomes an Entry
//   - Whitelist: names exempt from duplicate collapsing
//   - Deduplicate: one entry per name, keeping the first or last
//   - Rank: sort by distance to the target, ties by input order
//   - Format: display names and the copy-ready text blocks
//
// # Modes
//
// In ranked mode the closest WinnerCount entries win. With TiesIncludeAll
// every entry at the same distance as the last winner wins as well.
// ExactMatchMode skips ranking and returns entries equal to the target.
// Both comparisons use exact float equality.
//
// # Usage
//
//	sl := selector.NewSelector(log, nil)
//	res, err := sl.SelectRaw(ctx, input, selector.RawConfig{
//	    Target:      "10",
//	    WinnerCount: "1",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.WinnersText())
package selector

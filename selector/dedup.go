package selector

// FilterDuplicates collapses entries sharing a name to one entry per
// name. Whitelisted names keep every occurrence. The returned slice has
// the whitelisted entries in input order followed by the retained
// entries in the order their names were first seen; removed is the
// number of entries dropped.
func FilterDuplicates(entries []Entry, wl Whitelist, mode DuplicateMode) (filtered []Entry, removed int) {
	filtered = make([]Entry, 0, len(entries))

	seen := make(map[string]int) // name -> index into retained
	var retained []Entry

	for _, e := range entries {
		if wl.Contains(e.Name) {
			filtered = append(filtered, e)
			continue
		}

		idx, ok := seen[e.Name]
		if !ok {
			seen[e.Name] = len(retained)
			retained = append(retained, e)
			continue
		}

		removed++
		if mode == KeepLast {
			retained[idx] = e
		}
	}

	filtered = append(filtered, retained...)
	return filtered, removed
}

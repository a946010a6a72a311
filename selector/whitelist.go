package selector

import (
	"strings"
)

// Whitelist is a set of names exempt from duplicate filtering
type Whitelist struct {
	names    map[string]struct{}
	foldCase bool
}

// WhitelistOptions controls how a whitelist string is split and matched
type WhitelistOptions struct {
	Newlines bool // also split on newlines, not just commas
	FoldCase bool // match names case-insensitively
}

// ParseWhitelist splits s on commas (and newlines when enabled), trims
// each token and drops empty ones.
func ParseWhitelist(s string, opts WhitelistOptions) Whitelist {
	seps := ","
	if opts.Newlines {
		seps = ",\n"
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})

	wl := Whitelist{
		names:    make(map[string]struct{}, len(tokens)),
		foldCase: opts.FoldCase,
	}
	for _, tok := range tokens {
		wl.Add(tok)
	}
	return wl
}

// NewWhitelist builds a case-sensitive whitelist from names
func NewWhitelist(names ...string) Whitelist {
	wl := Whitelist{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		wl.Add(n)
	}
	return wl
}

// Add inserts a trimmed name; empty names are ignored
func (wl *Whitelist) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if wl.names == nil {
		wl.names = map[string]struct{}{}
	}
	wl.names[wl.key(name)] = struct{}{}
}

// Contains reports whether name is whitelisted
func (wl Whitelist) Contains(name string) bool {
	if len(wl.names) == 0 {
		return false
	}
	_, ok := wl.names[wl.key(name)]
	return ok
}

// Len returns the number of distinct names
func (wl Whitelist) Len() int {
	return len(wl.names)
}

func (wl Whitelist) key(name string) string {
	if wl.foldCase {
		return strings.ToLower(name)
	}
	return name
}

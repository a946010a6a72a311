package selector

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode is either RankedMode or ExactMatchMode
type Mode interface {
	mode() string
}

// RankedMode selects the WinnerCount entries closest to the target
type RankedMode struct {
	WinnerCount int
	Ties        TieMode
}

// ExactMatchMode selects every entry equal to the target
type ExactMatchMode struct{}

func (RankedMode) mode() string     { return "ranked" }
func (ExactMatchMode) mode() string { return "exact" }

// ModeName returns "ranked" or "exact" for logging and metrics
func ModeName(m Mode) string {
	if m == nil {
		return "none"
	}
	return m.mode()
}

// Config is a validated selection configuration
type Config struct {
	Target        float64
	Mode          Mode
	Duplicates    DuplicateMode
	Whitelist     Whitelist
	MessageFilter bool
}

// Exact reports whether the configuration uses exact matching
func (cfg Config) Exact() bool {
	_, ok := cfg.Mode.(ExactMatchMode)
	return ok
}

// validate checks a Config built directly rather than through RawConfig
func (cfg Config) validate(ve *ValidationError) {
	if math.IsNaN(cfg.Target) || math.IsInf(cfg.Target, 0) {
		ve.add(FieldTarget, "target must be a finite number", ErrInvalidTarget)
	}

	switch m := cfg.Mode.(type) {
	case ExactMatchMode:
	case RankedMode:
		if m.WinnerCount < 1 {
			ve.add(FieldWinners, "number of winners must be at least 1", ErrInvalidWinnerCount)
		}
		if m.Ties != TiesIncludeAll && m.Ties != TiesFirstOnly {
			ve.add(FieldTies, fmt.Sprintf("unknown tie mode %q", m.Ties), ErrInvalidMode)
		}
	default:
		ve.add(FieldWinners, "no selection mode configured", ErrInvalidMode)
	}

	if cfg.Duplicates != KeepFirst && cfg.Duplicates != KeepLast {
		ve.add(FieldDuplicates, fmt.Sprintf("unknown duplicate mode %q", cfg.Duplicates), ErrInvalidMode)
	}
}

// RawConfig holds the selection settings as a caller enters them
type RawConfig struct {
	Target            string
	WinnerCount       string // ignored when ExactMatch is set
	TieMode           string // "all" (default) or "first"
	DuplicateMode     string // "first" (default) or "last"
	ExactMatch        bool
	Whitelist         string
	WhitelistNewlines bool
	WhitelistFoldCase bool
	MessageFilter     bool
}

// Parse validates every field and returns the resulting Config. All
// failing fields are reported together in a *ValidationError.
func (rc RawConfig) Parse() (Config, error) {
	ve := &ValidationError{}
	cfg := rc.parse(ve)
	if err := ve.errOrNil(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (rc RawConfig) parse(ve *ValidationError) Config {
	cfg := Config{
		Whitelist: ParseWhitelist(rc.Whitelist, WhitelistOptions{
			Newlines: rc.WhitelistNewlines,
			FoldCase: rc.WhitelistFoldCase,
		}),
		MessageFilter: rc.MessageFilter,
	}

	target, ok := ParseTarget(rc.Target)
	if !ok {
		ve.add(FieldTarget, "please provide a valid numeric winning number", ErrInvalidTarget)
	}
	cfg.Target = target

	dups, err := ParseDuplicateMode(rc.DuplicateMode)
	if err != nil {
		ve.add(FieldDuplicates, err.Error(), ErrInvalidMode)
	}
	cfg.Duplicates = dups

	if rc.ExactMatch {
		cfg.Mode = ExactMatchMode{}
		return cfg
	}

	ranked := RankedMode{}
	count, ok := ParseWinnerCount(rc.WinnerCount)
	if !ok {
		ve.add(FieldWinners, "please provide a valid number of winners (>=1)", ErrInvalidWinnerCount)
	}
	ranked.WinnerCount = count

	ties, err := ParseTieMode(rc.TieMode)
	if err != nil {
		ve.add(FieldTies, err.Error(), ErrInvalidMode)
	}
	ranked.Ties = ties

	cfg.Mode = ranked
	return cfg
}

// ParseTarget parses a finite number, accepting ',' as the decimal separator
func ParseTarget(s string) (float64, bool) {
	return parseNumber(s)
}

// ParseWinnerCount parses a positive integer. Counts too large for an
// int are clamped to math.MaxInt, which selects every entry.
func ParseWinnerCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) && isUnsignedDigits(strings.TrimPrefix(s, "+")) {
		return math.MaxInt, true
	}
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func isUnsignedDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseTieMode accepts "all"/"includeAll" and "first"/"firstOnly".
// The empty string selects TiesIncludeAll.
func ParseTieMode(s string) (TieMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "includeall", "include-all":
		return TiesIncludeAll, nil
	case "first", "firstonly", "first-only":
		return TiesFirstOnly, nil
	}
	return "", fmt.Errorf("unknown tie mode %q", s)
}

// ParseDuplicateMode accepts "first"/"keepFirst" and "last"/"keepLast".
// The empty string selects KeepFirst.
func ParseDuplicateMode(s string) (DuplicateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first", "keepfirst", "keep-first":
		return KeepFirst, nil
	case "last", "keeplast", "keep-last":
		return KeepLast, nil
	}
	return "", fmt.Errorf("unknown duplicate mode %q", s)
}

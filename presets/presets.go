// Package presets provides named selection settings.
//
// Three presets are built in: "default" restores the initial settings,
// "promo" picks two winners keeping each name's first entry without tie
// extension, and "classic" picks a single winner keeping each name's
// last entry and including everyone tied with it. More presets can be
// loaded from a YAML file:
//
//	presets:
//	  raffle:
//	    description: three winners, latest entry counts
//	    winners: 3
//	    ties: first
//	    duplicates: last
package presets

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"go.ntppool.org/whowon/selector"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named set of selection settings
type Preset struct {
	Name        string `yaml:"-"`
	Description string `yaml:"description"`
	Winners     int    `yaml:"winners"`
	Ties        string `yaml:"ties"`
	Duplicates  string `yaml:"duplicates"`
	Exact       bool   `yaml:"exact"`
}

// Set maps preset names to presets
type Set map[string]Preset

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Builtin returns the presets every installation has
func Builtin() Set {
	return Set{
		"default": {
			Name:        "default",
			Description: "include all ties, keep first duplicate",
			Ties:        string(selector.TiesIncludeAll),
			Duplicates:  string(selector.KeepFirst),
		},
		"promo": {
			Name:        "promo",
			Description: "2 winners, keep first duplicate, first tie only",
			Winners:     2,
			Ties:        string(selector.TiesFirstOnly),
			Duplicates:  string(selector.KeepFirst),
		},
		"classic": {
			Name:        "classic",
			Description: "1 winner, keep last duplicate, include all ties",
			Winners:     1,
			Ties:        string(selector.TiesIncludeAll),
			Duplicates:  string(selector.KeepLast),
		},
	}
}

// Load returns the builtin presets, extended or overridden by the
// presets in path. An empty path returns only the builtin presets.
func Load(path string) (Set, error) {
	set := Builtin()
	if path == "" {
		return set, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	extra, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for name, p := range extra {
		set[name] = p
	}
	return set, nil
}

// Parse decodes and validates a YAML presets document
func Parse(b []byte) (Set, error) {
	var pf presetFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	set := make(Set, len(pf.Presets))
	for name, p := range pf.Presets {
		p.Name = name
		if err := p.validate(); err != nil {
			return nil, err
		}
		set[name] = p
	}
	return set, nil
}

// Names returns the preset names in sorted order
func (s Set) Names() []string {
	names := maps.Keys(s)
	slices.Sort(names)
	return names
}

// Lookup returns the named preset
func (s Set) Lookup(name string) (Preset, error) {
	p, ok := s[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Apply copies the preset's settings onto rc. Fields the preset leaves
// empty are not changed; the message filter is never touched.
func (p Preset) Apply(rc *selector.RawConfig) {
	if p.Winners > 0 {
		rc.WinnerCount = strconv.Itoa(p.Winners)
	}
	if p.Ties != "" {
		rc.TieMode = p.Ties
	}
	if p.Duplicates != "" {
		rc.DuplicateMode = p.Duplicates
	}
	rc.ExactMatch = p.Exact
}

func (p Preset) validate() error {
	if p.Winners < 0 {
		return fmt.Errorf("preset %q: winners must not be negative", p.Name)
	}
	if _, err := selector.ParseTieMode(p.Ties); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if _, err := selector.ParseDuplicateMode(p.Duplicates); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// Package cli implements the whowon command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/version"

	"go.ntppool.org/whowon/presets"
	"go.ntppool.org/whowon/selector"
)

// Cmd is the root command
type Cmd struct {
	Pick    PickCmd    `cmd:"" default:"withargs" help:"pick winners from input files or stdin"`
	Watch   WatchCmd   `cmd:"" help:"pick winners again whenever the input file changes"`
	Presets PresetsCmd `cmd:"" help:"list selection presets"`
	Version VersionCmd `cmd:"" help:"show version"`
}

// SelectionFlags are shared by the commands that run a selection
type SelectionFlags struct {
	Target        string `short:"t" env:"WHOWON_TARGET" help:"Winning number to compare entries against"`
	Winners       string `short:"n" env:"WHOWON_WINNERS" help:"Number of winners (ignored with --exact)"`
	Ties          string `env:"WHOWON_TIES" placeholder:"all|first" help:"Include all entries tied with the last winner, or only the first"`
	Duplicates    string `env:"WHOWON_DUPLICATES" placeholder:"first|last" help:"Which entry of a repeated name is kept"`
	Exact         bool   `short:"x" env:"WHOWON_EXACT" help:"Only entries exactly equal to the target win"`
	Whitelist     string `short:"w" env:"WHOWON_WHITELIST" help:"Comma separated names that may have several entries"`
	WhitelistFile string `type:"existingfile" help:"File with whitelisted names, one per line or comma separated"`
	FoldCase      bool   `help:"Match whitelisted names case-insensitively"`
	MessageFilter bool   `default:"true" negatable:"" help:"Shorten names to first word and an initial"`

	Preset      string `short:"p" default:"default" env:"WHOWON_PRESET" help:"Preset to start from (see 'presets')"`
	PresetsFile string `type:"existingfile" env:"WHOWON_PRESETS_FILE" help:"YAML file with additional presets"`

	Format      string `short:"f" default:"text" enum:"text,json,yaml,winners" help:"Output format (${enum})"`
	MetricsFile string `env:"WHOWON_METRICS_FILE" help:"Write prometheus metrics to this textfile after each run"`
	Debug       bool   `short:"d" help:"Enable debug logging"`
}

// rawConfig resolves the preset and applies the command line flags on top
func (f *SelectionFlags) rawConfig() (selector.RawConfig, error) {
	set, err := presets.Load(f.PresetsFile)
	if err != nil {
		return selector.RawConfig{}, err
	}
	p, err := set.Lookup(f.Preset)
	if err != nil {
		return selector.RawConfig{}, err
	}

	rc := selector.RawConfig{}
	p.Apply(&rc)

	rc.Target = f.Target
	if f.Winners != "" {
		rc.WinnerCount = f.Winners
	}
	if f.Ties != "" {
		rc.TieMode = f.Ties
	}
	if f.Duplicates != "" {
		rc.DuplicateMode = f.Duplicates
	}
	if f.Exact {
		rc.ExactMatch = true
	}
	rc.MessageFilter = f.MessageFilter
	rc.WhitelistFoldCase = f.FoldCase

	rc.Whitelist = f.Whitelist
	if f.WhitelistFile != "" {
		b, err := os.ReadFile(f.WhitelistFile)
		if err != nil {
			return selector.RawConfig{}, fmt.Errorf("reading whitelist: %w", err)
		}
		rc.Whitelist = strings.Join([]string{rc.Whitelist, string(b)}, "\n")
		rc.WhitelistNewlines = true
	}

	return rc, nil
}

// setup returns a context carrying the command's logger and a selector
// with its metrics registry
func (f *SelectionFlags) setup(ctx context.Context) (context.Context, *selector.Selector, *prometheus.Registry) {
	log := logger.FromContext(ctx)

	if f.Debug {
		debugHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		log = slog.New(debugHandler)
		ctx = logger.NewContext(ctx, log)
	}

	reg := prometheus.NewRegistry()
	version.RegisterMetric("whowon", reg)
	metrics := selector.NewMetrics(reg)

	return ctx, selector.NewSelector(log, metrics), reg
}

// writeMetrics saves the registry for the node exporter textfile collector
func (f *SelectionFlags) writeMetrics(ctx context.Context, reg *prometheus.Registry) {
	if f.MetricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(f.MetricsFile, reg); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "could not write metrics", "file", f.MetricsFile, "err", err)
	}
}

// VersionCmd prints the version
type VersionCmd struct {
	out io.Writer
}

func (cmd *VersionCmd) Run() error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "whowon %s\n", version.Version())
	return err
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/tracing"
	"golang.org/x/sync/errgroup"

	"go.ntppool.org/whowon/report"
	"go.ntppool.org/whowon/selector"
)

// PickCmd runs one selection per input
type PickCmd struct {
	SelectionFlags `embed:""`

	Files []string `arg:"" optional:"" help:"Input files with one name and number per line ('-' or none for stdin)"`

	stdin  io.Reader
	stdout io.Writer
}

func (cmd *PickCmd) Run(ctx context.Context) error {
	ctx, span := tracing.Start(ctx, "whowon.pick")
	defer span.End()

	ctx, sl, reg := cmd.setup(ctx)
	defer cmd.writeMetrics(ctx, reg)

	log := logger.FromContext(ctx)

	rc, err := cmd.rawConfig()
	if err != nil {
		return err
	}

	files := cmd.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	raw, err := cmd.readInputs(files)
	if err != nil {
		return err
	}

	results := make([]*selector.Result, len(files))

	// each input is an independent selection
	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		g.Go(func() error {
			res, err := sl.SelectRaw(gctx, raw[i], rc)
			if err != nil {
				return fmt.Errorf("%s: %w", inputName(files[i]), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.stdout
	if out == nil {
		out = os.Stdout
	}

	for i, res := range results {
		if len(files) > 1 && !report.Structured(cmd.Format) {
			if err := writeHeader(out, i, files[i]); err != nil {
				return err
			}
		}
		if err := report.Write(cmd.Format, out, res); err != nil {
			return err
		}
		log.InfoContext(ctx, "picked winners",
			"input", inputName(files[i]),
			"id", res.ID.String(),
			"winners", len(res.Winners))
	}

	return nil
}

// readInputs reads every file; "-" reads stdin once
func (cmd *PickCmd) readInputs(files []string) ([]string, error) {
	raw := make([]string, len(files))

	var stdin *string
	for i, f := range files {
		if f != "-" {
			b, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("reading input: %w", err)
			}
			raw[i] = string(b)
			continue
		}

		if stdin == nil {
			r := cmd.stdin
			if r == nil {
				r = os.Stdin
			}
			b, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			s := string(b)
			stdin = &s
		}
		raw[i] = *stdin
	}

	return raw, nil
}

// writeHeader separates the reports of several inputs
func writeHeader(w io.Writer, i int, file string) error {
	if i > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "==> %s <==\n", inputName(file))
	return err
}

func inputName(f string) string {
	if f == "-" {
		return "stdin"
	}
	return f
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"go.ntppool.org/common/logger"

	"go.ntppool.org/whowon/report"
	"go.ntppool.org/whowon/selector"
)

// WatchCmd re-runs the selection every time the input file is saved
type WatchCmd struct {
	SelectionFlags `embed:""`

	File string `arg:"" type:"existingfile" help:"Input file to watch"`

	stdout io.Writer
}

const (
	watchDebounce = 100 * time.Millisecond
	readMaxTries  = 5
)

func (cmd *WatchCmd) Run(ctx context.Context) error {
	ctx, sl, reg := cmd.setup(ctx)
	log := logger.FromContext(ctx).WithGroup("watch")

	rc, err := cmd.rawConfig()
	if err != nil {
		return err
	}

	path, err := filepath.Abs(cmd.File)
	if err != nil {
		return err
	}
	dir, name := filepath.Dir(path), filepath.Base(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch the directory
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	log.InfoContext(ctx, "watching input for changes", "dir", dir, "file", name)

	if err := cmd.runOnce(ctx, sl, rc, path, reg); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	var debounce <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.DebugContext(ctx, "input changed", "event", event.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(watchDebounce)
			debounce = debounceTimer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "file watcher error", "err", err)

		case <-debounce:
			debounce = nil
			if err := cmd.runOnce(ctx, sl, rc, path, reg); err != nil {
				return err
			}

		case <-ctx.Done():
			log.InfoContext(ctx, "watch stopped")
			return nil
		}
	}
}

// runOnce selects winners from the current file contents. Unreadable or
// invalid input is logged and the watch continues; only output errors
// are returned.
func (cmd *WatchCmd) runOnce(ctx context.Context, sl *selector.Selector, rc selector.RawConfig, path string, reg *prometheus.Registry) error {
	log := logger.FromContext(ctx)
	defer cmd.writeMetrics(ctx, reg)

	raw, err := readWithRetry(ctx, path)
	if err != nil {
		log.WarnContext(ctx, "could not read input", "file", path, "err", err)
		return nil
	}

	res, err := sl.SelectRaw(ctx, raw, rc)
	if err != nil {
		log.WarnContext(ctx, "input rejected", "file", path, "err", err)
		return nil
	}

	out := cmd.stdout
	if out == nil {
		out = os.Stdout
	}
	return report.Write(cmd.Format, out, res)
}

// readWithRetry reads path, retrying briefly when the file is missing
// while an editor replaces it.
func readWithRetry(ctx context.Context, path string) (string, error) {
	expback := backoff.NewExponentialBackOff()
	expback.InitialInterval = 50 * time.Millisecond
	expback.MaxInterval = time.Second

	for try := 1; ; try++ {
		b, err := os.ReadFile(path)
		if err == nil {
			return string(b), nil
		}
		if try >= readMaxTries {
			return "", err
		}

		wait := expback.NextBackOff()
		if wait == backoff.Stop {
			wait = expback.MaxInterval
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
}

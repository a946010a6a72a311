package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.ntppool.org/common/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Selector runs winner selections. It holds no per-selection state and
// can be shared.
type Selector struct {
	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewSelector creates a new selector instance; metrics may be nil
func NewSelector(log *slog.Logger, metrics *Metrics) *Selector {
	if log == nil {
		log = slog.Default()
	}
	return &Selector{log: log, metrics: metrics, now: time.Now}
}

// SelectRaw validates rc and the input together and runs the selection.
// Every invalid field is reported in the returned *ValidationError.
func (sl *Selector) SelectRaw(ctx context.Context, raw string, rc RawConfig) (*Result, error) {
	ve := &ValidationError{}
	cfg := rc.parse(ve)
	return sl.selectWinners(ctx, raw, cfg, ve)
}

// Select runs a selection over raw with an already built Config
func (sl *Selector) Select(ctx context.Context, raw string, cfg Config) (*Result, error) {
	ve := &ValidationError{}
	cfg.validate(ve)
	return sl.selectWinners(ctx, raw, cfg, ve)
}

func (sl *Selector) selectWinners(ctx context.Context, raw string, cfg Config, ve *ValidationError) (*Result, error) {
	ctx, span := tracing.Start(ctx, "selector.Select")
	defer span.End()

	start := time.Now()
	mode := ModeName(cfg.Mode)
	span.SetAttributes(attribute.String("mode", mode))

	entries, stats := ParseEntries(raw)
	switch {
	case stats.NonBlank() == 0:
		ve.add(FieldInput, "no data provided, please enter at least one name/number pair", ErrEmptyInput)
	case len(entries) == 0:
		ve.add(FieldInput, "no line contains a number", ErrEmptyInput)
	}

	if err := ve.errOrNil(); err != nil {
		if sl.metrics != nil {
			sl.metrics.TrackValidationError(ve)
		}
		span.SetStatus(codes.Error, "validation failed")
		sl.log.DebugContext(ctx, "selection rejected", "mode", mode, "err", err)
		return nil, err
	}

	filtered, removed := FilterDuplicates(entries, cfg.Whitelist, cfg.Duplicates)
	if len(filtered) == 0 {
		sl.log.WarnContext(ctx, "no entries left after duplicate filtering",
			"entries", len(entries))
	}

	var winners []Winner
	extended := 0

	switch m := cfg.Mode.(type) {
	case ExactMatchMode:
		winners = ExactMatches(filtered, cfg.Target)
	case RankedMode:
		winners = Rank(filtered, cfg.Target, m.WinnerCount, m.Ties)
		extended = len(winners) - min(m.WinnerCount, len(filtered))
	default:
		// validate rejects any other mode
		return nil, fmt.Errorf("unsupported selection mode %T", cfg.Mode)
	}

	for i := range winners {
		winners[i].DisplayName = DisplayName(winners[i].Name, cfg.MessageFilter)
	}

	now := sl.now()
	id, err := makeULID(now)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("could not create result id: %w", err)
	}

	res := &Result{
		ID:       id,
		Time:     now,
		Target:   cfg.Target,
		Exact:    cfg.Exact(),
		Winners:  winners,
		Lines:    stats.NonBlank(),
		Entries:  len(entries),
		Filtered: len(filtered),
	}

	span.SetAttributes(
		attribute.Int("entries", len(entries)),
		attribute.Int("filtered", len(filtered)),
		attribute.Int("winners", len(winners)),
	)

	if sl.metrics != nil {
		sl.metrics.RecordSelection(mode, time.Since(start).Seconds(),
			stats, len(entries), removed, extended, len(winners))
	}

	sl.log.DebugContext(ctx, "selection complete",
		"id", id.String(),
		"mode", mode,
		"target", cfg.Target,
		"lines", stats.NonBlank(),
		"dropped", stats.Dropped,
		"entries", len(entries),
		"duplicates", removed,
		"winners", len(winners),
		"tieExtended", extended)

	return res, nil
}

// IsValidationError reports whether err was caused by invalid input or
// configuration
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package selector

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the prometheus metrics for the selector
type Metrics struct {
	Selections        *prometheus.CounterVec
	ValidationErrors  *prometheus.CounterVec
	LinesDropped      prometheus.Counter
	EntriesParsed     prometheus.Counter
	DuplicatesRemoved prometheus.Counter
	TieExtensions     prometheus.Counter
	Winners           *prometheus.HistogramVec
	SelectDuration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the selector metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whowon_selections_total",
				Help: "Total number of completed selections",
			},
			[]string{"mode"},
		),

		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whowon_validation_errors_total",
				Help: "Total number of rejected fields by field name",
			},
			[]string{"field"},
		),

		LinesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "whowon_lines_dropped_total",
				Help: "Non-blank input lines without a usable number",
			},
		),

		EntriesParsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "whowon_entries_parsed_total",
				Help: "Total number of entries parsed from input",
			},
		),

		DuplicatesRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "whowon_duplicates_removed_total",
				Help: "Entries removed by duplicate name filtering",
			},
		),

		TieExtensions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "whowon_tie_extensions_total",
				Help: "Winners added beyond the winner count because of ties",
			},
		),

		Winners: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "whowon_winners",
				Help:    "Number of winners per selection",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 100},
			},
			[]string{"mode"},
		),

		SelectDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "whowon_select_duration_seconds",
				Help:    "Time spent in a selection in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"mode"},
		),
	}

	reg.MustRegister(
		m.Selections,
		m.ValidationErrors,
		m.LinesDropped,
		m.EntriesParsed,
		m.DuplicatesRemoved,
		m.TieExtensions,
		m.Winners,
		m.SelectDuration,
	)

	return m
}

// TrackValidationError counts every rejected field
func (m *Metrics) TrackValidationError(ve *ValidationError) {
	for _, fe := range ve.Fields {
		m.ValidationErrors.WithLabelValues(fe.Field).Inc()
	}
}

// RecordSelection records the outcome of a successful selection
func (m *Metrics) RecordSelection(
	mode string,
	duration float64,
	stats ParseStats,
	entries, removed, extended, winners int,
) {
	m.Selections.WithLabelValues(mode).Inc()
	m.LinesDropped.Add(float64(stats.Dropped))
	m.EntriesParsed.Add(float64(entries))
	m.DuplicatesRemoved.Add(float64(removed))
	m.TieExtensions.Add(float64(extended))
	m.Winners.WithLabelValues(mode).Observe(float64(winners))
	m.SelectDuration.WithLabelValues(mode).Observe(duration)
}

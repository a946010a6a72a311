// Package report renders selection results for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/MakeNowJust/heredoc"
	"gopkg.in/yaml.v3"

	"go.ntppool.org/whowon/selector"
)

// WriterFunc renders a result to w
type WriterFunc func(w io.Writer, res *selector.Result) error

var writers = map[string]WriterFunc{
	"text":    writeText,
	"json":    writeJSON,
	"winners": writeWinners,
	"yaml":    writeYAML,
}

// Structured reports whether format is meant for programs rather than
// people
func Structured(format string) bool {
	return format == "json" || format == "yaml"
}

// Formats returns the registered output format names
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Write renders res in the named format
func Write(format string, w io.Writer, res *selector.Result) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}
	return fn(w, res)
}

// TimeLayout is used for the human readable timestamp
const TimeLayout = "2006-01-02 15:04:05 MST"

func writeText(w io.Writer, res *selector.Result) error {
	winners := res.WinnersText()
	if len(res.Winners) == 0 {
		winners = "(no winners)"
	}

	_, err := fmt.Fprint(w, heredoc.Docf(`
		Winners (%d of %d entries, %s):
		%s

		Original data:
		%s

		Differences:
		%s

		Picked %s, id %s
		`,
		len(res.Winners), res.Filtered, targetLabel(res),
		winners,
		res.OriginalText(),
		res.DifferencesText(),
		res.Time.Format(TimeLayout), res.ID,
	))
	return err
}

func writeWinners(w io.Writer, res *selector.Result) error {
	if len(res.Winners) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, res.WinnersText())
	return err
}

func targetLabel(res *selector.Result) string {
	if res.Exact {
		return "exactly " + selector.FormatValue(res.Target)
	}
	return "closest to " + selector.FormatValue(res.Target)
}

type docWinner struct {
	Name        string  `json:"name" yaml:"name"`
	DisplayName string  `json:"display_name" yaml:"display_name"`
	Value       float64 `json:"value" yaml:"value"`
	Original    string  `json:"original" yaml:"original"`
	Distance    float64 `json:"distance" yaml:"distance"`
	Position    int     `json:"position" yaml:"position"`
	Line        int     `json:"line" yaml:"line"`
}

type docResult struct {
	ID       string      `json:"id" yaml:"id"`
	Time     time.Time   `json:"time" yaml:"time"`
	Target   float64     `json:"target" yaml:"target"`
	Exact    bool        `json:"exact" yaml:"exact"`
	Lines    int         `json:"lines" yaml:"lines"`
	Entries  int         `json:"entries" yaml:"entries"`
	Filtered int         `json:"filtered" yaml:"filtered"`
	Winners  []docWinner `json:"winners" yaml:"winners"`
}

// document is the structured form of res shared by json and yaml
func document(res *selector.Result) docResult {
	out := docResult{
		ID:       res.ID.String(),
		Time:     res.Time,
		Target:   res.Target,
		Exact:    res.Exact,
		Lines:    res.Lines,
		Entries:  res.Entries,
		Filtered: res.Filtered,
		Winners:  make([]docWinner, 0, len(res.Winners)),
	}
	for _, wn := range res.Winners {
		out.Winners = append(out.Winners, docWinner{
			Name:        wn.Name,
			DisplayName: wn.DisplayName,
			Value:       wn.Value,
			Original:    wn.Original,
			Distance:    wn.Distance,
			Position:    wn.Position,
			Line:        wn.Line,
		})
	}
	return out
}

func writeJSON(w io.Writer, res *selector.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document(res))
}

func writeYAML(w io.Writer, res *selector.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document(res)); err != nil {
		return err
	}
	return enc.Close()
}

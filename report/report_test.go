package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.ntppool.org/whowon/selector"
)

func pick(t *testing.T, input string, rc selector.RawConfig) *selector.Result {
	t.Helper()
	res, err := selector.NewSelector(nil, nil).SelectRaw(context.Background(), input, rc)
	require.NoError(t, err)
	return res
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "text", "winners", "yaml"}, Formats())
}

func TestWriteText(t *testing.T) {
	res := pick(t, "Alice 8\nBob 12\nCarol 8,5\nBen Bcool98 9",
		selector.RawConfig{Target: "10", WinnerCount: "2", TieMode: "first", MessageFilter: true})

	var buf bytes.Buffer
	require.NoError(t, Write("text", &buf, res))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Winners (2 of 4 entries, closest to 10):\n"), out)
	assert.Contains(t, out, ":W: Ben B - 9 :W:\n:W: Carol - 8.5 :W:\n\n")
	assert.Contains(t, out, "Original data:\nBen Bcool98 9\nCarol 8,5\n\n")
	assert.Contains(t, out, "Differences:\nName: Ben B, Difference: 1.00\nName: Carol, Difference: 1.50\n")
	assert.Contains(t, out, "id "+res.ID.String())
}

func TestWriteTextNoWinners(t *testing.T) {
	res := pick(t, "Eve 7", selector.RawConfig{Target: "8", ExactMatch: true})

	var buf bytes.Buffer
	require.NoError(t, Write("text", &buf, res))
	assert.Contains(t, buf.String(), "Winners (0 of 1 entries, exactly 8):\n(no winners)\n")
}

func TestWriteWinners(t *testing.T) {
	res := pick(t, "Alice 10\nBob 12", selector.RawConfig{Target: "10", WinnerCount: "1"})

	var buf bytes.Buffer
	require.NoError(t, Write("winners", &buf, res))
	assert.Equal(t, ":W: Alice - 10 :W:\n", buf.String())

	empty := pick(t, "Alice 10", selector.RawConfig{Target: "11", ExactMatch: true})
	buf.Reset()
	require.NoError(t, Write("winners", &buf, empty))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	res := pick(t, "Alice 8\n\nAlice 9\nBob 12", selector.RawConfig{Target: "10", WinnerCount: "1", DuplicateMode: "last"})

	var buf bytes.Buffer
	require.NoError(t, Write("json", &buf, res))

	var out struct {
		ID       string    `json:"id"`
		Time     time.Time `json:"time"`
		Target   float64   `json:"target"`
		Exact    bool      `json:"exact"`
		Entries  int       `json:"entries"`
		Filtered int       `json:"filtered"`
		Winners  []struct {
			Name     string  `json:"name"`
			Value    float64 `json:"value"`
			Original string  `json:"original"`
			Distance float64 `json:"distance"`
			Position int     `json:"position"`
			Line     int     `json:"line"`
		} `json:"winners"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, res.ID.String(), out.ID)
	assert.Equal(t, 10.0, out.Target)
	assert.Equal(t, 3, out.Entries)
	assert.Equal(t, 2, out.Filtered)
	require.Len(t, out.Winners, 1)
	assert.Equal(t, "Alice", out.Winners[0].Name)
	assert.Equal(t, 9.0, out.Winners[0].Value)
	assert.Equal(t, 1, out.Winners[0].Position)
	assert.Equal(t, 3, out.Winners[0].Line)
}

func TestWriteYAML(t *testing.T) {
	res := pick(t, "Ben Bcool98 7\nAnn 9", selector.RawConfig{Target: "7", ExactMatch: true, MessageFilter: true})

	var buf bytes.Buffer
	require.NoError(t, Write("yaml", &buf, res))

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, res.ID.String(), out["id"])
	assert.Equal(t, true, out["exact"])

	winners, ok := out["winners"].([]any)
	require.True(t, ok)
	require.Len(t, winners, 1)
	w := winners[0].(map[string]any)
	assert.Equal(t, "Ben Bcool98", w["name"])
	assert.Equal(t, "Ben B", w["display_name"])
	assert.Equal(t, "Ben Bcool98 7", w["original"])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteReportsWriterErrors(t *testing.T) {
	res := pick(t, "Alice 10", selector.RawConfig{Target: "10", WinnerCount: "1"})

	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			assert.ErrorContains(t, Write(format, failingWriter{}, res), "disk full")
		})
	}
}

func TestStructured(t *testing.T) {
	assert.True(t, Structured("json"))
	assert.True(t, Structured("yaml"))
	assert.False(t, Structured("text"))
	assert.False(t, Structured("winners"))
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write("xml", &bytes.Buffer{}, &selector.Result{})
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

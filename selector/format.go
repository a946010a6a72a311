package selector

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DisplayName returns the name shown for an entry. With the message
// filter on, "Ben Bcool98" becomes "Ben B": the first word is kept and
// only the first letter of the second word survives.
func DisplayName(name string, messageFilter bool) string {
	if messageFilter {
		name = filterName(name)
	}
	if name == "" {
		return NoNamePlaceholder
	}
	return name
}

func filterName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return words[0]
	}

	for _, r := range words[1] {
		if isASCIILetter(r) {
			return words[0] + " " + string(r)
		}
	}
	return words[0]
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// FormatValue prints a value in its shortest form ("10", "8.5").
// Negative zero prints as "0".
func FormatValue(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundCents rounds v to two decimals with halves going away from zero.
// The decision uses the exact binary value, so 0.125 becomes 0.13 while
// 2.675 (stored just below) becomes 2.67.
func roundCents(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}

	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))

	whole, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(x, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}

	r, _ := new(big.Float).SetInt(whole).Float64()
	return math.Copysign(r/100, v)
}

// WinnerLine is the ":W: name - value :W:" announcement for w
func WinnerLine(w Winner) string {
	return fmt.Sprintf(":W: %s - %s :W:", w.DisplayName, FormatValue(w.Value))
}

// DifferenceLine reports how far w was from the target
func DifferenceLine(w Winner) string {
	return fmt.Sprintf("Name: %s, Difference: %.2f", w.DisplayName, roundCents(w.Distance))
}

// WinnersText is the newline separated winner announcements
func (r *Result) WinnersText() string {
	return r.join(WinnerLine)
}

// OriginalText is the winners' input lines, unchanged by the message filter
func (r *Result) OriginalText() string {
	return r.join(func(w Winner) string { return w.Original })
}

// DifferencesText lists each winner's distance to the target
func (r *Result) DifferencesText() string {
	return r.join(DifferenceLine)
}

func (r *Result) join(fn func(Winner) string) string {
	lines := make([]string, len(r.Winners))
	for i, w := range r.Winners {
		lines[i] = fn(w)
	}
	return strings.Join(lines, "\n")
}

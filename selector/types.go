package selector

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Entry is one parsed input line
type Entry struct {
	Name     string  // line without the number, trimmed; may be empty
	Value    float64 // first number found on the line
	Original string  // trimmed line as entered
	Position int     // zero based order among parsed entries
	Line     int     // one based line number in the raw input
}

// Winner is a selected entry with its distance to the target
type Winner struct {
	Entry
	Distance    float64
	DisplayName string
}

// Result is the outcome of one selection
type Result struct {
	ID      ulid.ULID
	Time    time.Time
	Target  float64
	Exact   bool
	Winners []Winner

	Lines    int // non-blank input lines
	Entries  int // parsed entries
	Filtered int // entries left after duplicate filtering
}

// ParseStats counts what the line parser saw
type ParseStats struct {
	Lines   int // total lines in the raw input
	Blank   int // lines empty after trimming
	Dropped int // non-blank lines without a usable number
}

// NonBlank returns the number of lines that had content
func (ps ParseStats) NonBlank() int {
	return ps.Lines - ps.Blank
}

// TieMode controls whether entries tied with the last winner are included
type TieMode string

const (
	TiesIncludeAll TieMode = "all"   // include every entry tied with the cutoff
	TiesFirstOnly  TieMode = "first" // stop at the winner count
)

// DuplicateMode controls which occurrence of a repeated name survives
type DuplicateMode string

const (
	KeepFirst DuplicateMode = "first"
	KeepLast  DuplicateMode = "last"
)

// NoNamePlaceholder is displayed for entries without a name
const NoNamePlaceholder = "No Name"

package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func originals(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Original
	}
	return out
}

func TestFilterDuplicates(t *testing.T) {
	entries, _ := ParseEntries("Dave 5\nEve 1\nDave 9\nEve 2\nFay 3")

	tests := []struct {
		name        string
		wl          Whitelist
		mode        DuplicateMode
		want        []string
		wantRemoved int
	}{
		{
			name:        "keep_first",
			mode:        KeepFirst,
			want:        []string{"Dave 5", "Eve 1", "Fay 3"},
			wantRemoved: 2,
		},
		{
			name:        "keep_last",
			mode:        KeepLast,
			want:        []string{"Dave 9", "Eve 2", "Fay 3"},
			wantRemoved: 2,
		},
		{
			name:        "whitelisted_name_keeps_all",
			wl:          NewWhitelist("Dave"),
			mode:        KeepFirst,
			want:        []string{"Dave 5", "Dave 9", "Eve 1", "Fay 3"},
			wantRemoved: 1,
		},
		{
			name:        "whitelist_is_case_sensitive",
			wl:          NewWhitelist("dave"),
			mode:        KeepLast,
			want:        []string{"Dave 9", "Eve 2", "Fay 3"},
			wantRemoved: 2,
		},
		{
			name:        "whitelist_fold_case",
			wl:          ParseWhitelist("dave", WhitelistOptions{FoldCase: true}),
			mode:        KeepLast,
			want:        []string{"Dave 5", "Dave 9", "Eve 2", "Fay 3"},
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := FilterDuplicates(entries, tt.wl, tt.mode)
			assert.Equal(t, tt.want, originals(got))
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestFilterDuplicatesKeepsPositions(t *testing.T) {
	entries, _ := ParseEntries("Dave 5\nEve 1\nDave 9")

	got, _ := FilterDuplicates(entries, Whitelist{}, KeepLast)

	// Dave keeps its first-seen slot but carries the later position
	assert.Equal(t, "Dave 9", got[0].Original)
	assert.Equal(t, 2, got[0].Position)
	assert.Equal(t, 1, got[1].Position)
}

func TestFilterDuplicatesEmptyNames(t *testing.T) {
	entries, _ := ParseEntries("5\n7\nAnn 3")

	got, removed := FilterDuplicates(entries, Whitelist{}, KeepFirst)
	assert.Equal(t, []string{"5", "Ann 3"}, originals(got))
	assert.Equal(t, 1, removed)
}

func TestParseWhitelist(t *testing.T) {
	wl := ParseWhitelist(" Dave, ,Eve ,,", WhitelistOptions{})
	assert.True(t, wl.Contains("Dave"))
	assert.True(t, wl.Contains("Eve"))
	assert.Equal(t, 2, wl.Len())

	wl = ParseWhitelist("Dave,Eve\nFay", WhitelistOptions{})
	assert.False(t, wl.Contains("Fay"), "newline is not a separator by default")
	assert.True(t, wl.Contains("Eve\nFay"))

	wl = ParseWhitelist("Dave\nEve, Fay\n\n", WhitelistOptions{Newlines: true})
	assert.Equal(t, 3, wl.Len())
	assert.True(t, wl.Contains("Fay"))
	assert.False(t, wl.Contains("fay"))
	assert.False(t, wl.Contains(""))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartsAsList(t *testing.T) {
	tests := []struct {
		name  string
		parts string
		want  []int
	}{
		{name: "range and single", parts: "2-4;6", want: []int{2, 3, 4, 6}},
		{name: "reversed range is swapped", parts: "4-2", want: []int{2, 3, 4}},
		{name: "single value", parts: "3", want: []int{3}},
		{name: "malformed term is skipped", parts: "2--4", want: []int{}},
		{name: "malformed term among valid ones", parts: "2--4;3;5-6", want: []int{3, 5, 6}},
		{name: "duplicates keep first-seen order", parts: "6;2-4;3;6", want: []int{6, 2, 3, 4}},
		{name: "overlapping ranges", parts: "2-4;3-6", want: []int{2, 3, 4, 5, 6}},
		{name: "empty string", parts: "", want: []int{}},
		{name: "non-numeric term is skipped", parts: "two;3", want: []int{3}},
		{name: "whitespace around terms", parts: " 2-4 ; 6 ", want: []int{2, 3, 4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartsAsList(tt.parts))
		})
	}
}

func TestPartsAsListNoDuplicates(t *testing.T) {
	for _, parts := range []string{"2-4;6", "1-10;5-15", "3;3;3", "6;2-8"} {
		seen := map[int]bool{}
		for _, n := range PartsAsList(parts) {
			assert.Falsef(t, seen[n], "duplicate %d in expansion of %q", n, parts)
			seen[n] = true
		}
	}
}

func TestFormatPartsRoundTrip(t *testing.T) {
	tests := []struct {
		parts     string
		canonical string
	}{
		{parts: "2-4;6", canonical: "2-4;6"},
		{parts: "4-2", canonical: "2-4"},
		{parts: "3", canonical: "3"},
		{parts: "6;2-4", canonical: "2-4;6"},
		{parts: "2;3", canonical: "2;3"},
		{parts: "", canonical: ""},
	}

	for _, tt := range tests {
		got := FormatParts(PartsAsList(tt.parts))
		assert.Equal(t, tt.canonical, got, "canonical form of %q", tt.parts)

		// Re-parsing the canonical form is stable.
		assert.Equal(t, PartsAsList(got), PartsAsList(FormatParts(PartsAsList(got))))
	}
}

func TestGameAcceptsParty(t *testing.T) {
	g := &Game{Name: "Pandemic", Parts: "2-4"}
	assert.True(t, g.AcceptsParty(2))
	assert.True(t, g.AcceptsParty(4))
	assert.False(t, g.AcceptsParty(5))
	assert.False(t, g.AcceptsParty(0))
}

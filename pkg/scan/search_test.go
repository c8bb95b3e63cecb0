package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemscan/chemscan/pkg/pattern"
)

func filterFixture(t *testing.T) *BlockTable {
	t.Helper()
	p := testPartitioner(t,
		blockLeaf("Energy", `^ENERGY[^\n]*(?:\n|\z)`),
		blockLeaf("Line", anyLinePattern),
		spacerLeaf(),
	)

	text := "ENERGY -1.5\nsome text\n\nENERGY -2.5\nother text\n"
	table, err := p.Partition(NewDocument(text))
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())
	return table
}

func TestFilter(t *testing.T) {
	table := filterFixture(t)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty filter matches everything", Filter{}, 5},
		{"by type", Filter{Type: pattern.TypeSpacer}, 1},
		{"by subtype", Filter{Subtype: "Energy"}, 2},
		{"by substring", Filter{Contains: []string{"-2.5"}}, 1},
		{"by multiple substrings", Filter{Contains: []string{"ENERGY", "-1.5"}}, 1},
		{"by absent substring", Filter{Subtype: "Energy", NotContains: []string{"-1.5"}}, 1},
		{"criteria are conjunctive", Filter{Subtype: "Line", Contains: []string{"ENERGY"}}, 0},
		{"no match", Filter{Subtype: "Missing"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, table.Filter(tt.filter), tt.want)
		})
	}
}

func TestFilter_PreservesDocumentOrder(t *testing.T) {
	table := filterFixture(t)

	got := table.Filter(Filter{Subtype: "Energy"})
	require.Len(t, got, 2)
	assert.Less(t, got[0].Chars.Start, got[1].Chars.Start)
	assert.Equal(t, "ENERGY -1.5\n", got[0].Text())
	assert.Equal(t, "ENERGY -2.5\n", got[1].Text())
}

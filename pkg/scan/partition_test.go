package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemscan/chemscan/pkg/pattern"
)

const (
	anyLinePattern = `^[ \t]*[^ \t\n][^\n]*(?:\n|\z)`
	spacerPattern  = `^(?:[ \t]*\n)+[ \t]+\z|^(?:[ \t]*\n)+|^[ \t]+\z`
)

func blockLeaf(subtype, source string) pattern.Node {
	return &pattern.Spec{
		Subtype: subtype,
		Type:    pattern.TypeBlock,
		Source:  source,
		Flags:   pattern.Flags{Multiline: true},
	}
}

func spacerLeaf() pattern.Node {
	return &pattern.Spec{
		Subtype: "Spacer",
		Type:    pattern.TypeSpacer,
		Source:  spacerPattern,
		Flags:   pattern.Flags{Multiline: true},
	}
}

func testPartitioner(t *testing.T, members ...pattern.Node) *Partitioner {
	t.Helper()
	root, err := pattern.Expand("test", &pattern.Group{Name: "root", Members: members})
	require.NoError(t, err)
	return NewPartitioner("test", root)
}

func subtypesOf(table *BlockTable) []string {
	var out []string
	for _, b := range table.Blocks() {
		out = append(out, b.Subtype)
	}
	return out
}

func TestPartition_AlternatingBlocksAndSpacers(t *testing.T) {
	banner := `^=====[ \t]*\n(?:[ \t]*[^ \t\n][^\n]*(?:\n|\z))*`
	p := testPartitioner(t, blockLeaf("Banner", banner), spacerLeaf())

	text := "\n=====\nA 1\nB 2\nC 3\nD 4\n\n=====\nE 5\nF 6\n"
	table, err := p.Partition(NewDocument(text))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	want := []struct {
		typ     pattern.TopLevelType
		subtype string
		chars   CharSpan
		lines   LineSpan
	}{
		{pattern.TypeSpacer, "Spacer", CharSpan{0, 1}, LineSpan{1, 2}},
		{pattern.TypeBlock, "Banner", CharSpan{1, 23}, LineSpan{2, 7}},
		{pattern.TypeSpacer, "Spacer", CharSpan{23, 24}, LineSpan{7, 8}},
		{pattern.TypeBlock, "Banner", CharSpan{24, 38}, LineSpan{8, 11}},
	}
	for i, w := range want {
		b := table.At(i)
		assert.Equal(t, i, b.Index)
		assert.Equal(t, w.typ, b.Type)
		assert.Equal(t, w.subtype, b.Subtype)
		assert.Equal(t, w.chars, b.Chars)
		assert.Equal(t, w.lines, b.Lines)
	}

	require.NoError(t, table.Validate())
	assert.Equal(t, text, table.Restore())
}

func TestPartition_DeclarationOrderBreaksTies(t *testing.T) {
	text := "HEADER one\nplain line\n"
	header := `^HEADER[^\n]*(?:\n|\z)`

	p := testPartitioner(t, blockLeaf("Header", header), blockLeaf("Line", anyLinePattern))
	table, err := p.Partition(NewDocument(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"Header", "Line"}, subtypesOf(table))

	// With the catch-all declared first it claims both lines.
	p = testPartitioner(t, blockLeaf("Line", anyLinePattern), blockLeaf("Header", header))
	table, err = p.Partition(NewDocument(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"Line", "Line"}, subtypesOf(table))
}

func TestPartition_NestedGroupPriorityIsPreOrder(t *testing.T) {
	inner := &pattern.Group{Name: "inner", Members: []pattern.Node{
		blockLeaf("Nested", `^dup\n`),
	}}
	p := testPartitioner(t, inner, blockLeaf("Flat", `^dup\n`))

	table, err := p.Partition(NewDocument("dup\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nested"}, subtypesOf(table))
}

func TestPartition_EarliestStartWins(t *testing.T) {
	p := testPartitioner(t,
		blockLeaf("Target", `^TARGET\n`),
		blockLeaf("Line", anyLinePattern),
	)

	table, err := p.Partition(NewDocument("one\ntwo\nTARGET\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Line", "Line", "Target"}, subtypesOf(table))
}

func TestPartition_MidLineMatchesAreSkipped(t *testing.T) {
	p := testPartitioner(t,
		blockLeaf("End", `END[^\n]*(?:\n|\z)`),
		blockLeaf("Line", anyLinePattern),
	)

	// "END" first appears mid-line; that occurrence must not anchor a block.
	table, err := p.Partition(NewDocument("xx END q\nEND r\n"))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Line", "End"}, subtypesOf(table))
	assert.Equal(t, CharSpan{0, 9}, table.At(0).Chars)
	assert.Equal(t, CharSpan{9, 15}, table.At(1).Chars)
}

func TestPartition_UnmatchedRegion(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Target", `^TARGET\n`))

	tests := []struct {
		name string
		text string
	}{
		{"no match at all", "nothing here\n"},
		{"match exists but not at the cursor", "gap line\nTARGET\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Partition(NewDocument(tt.text))
			require.Error(t, err)

			var unmatched *UnmatchedRegionError
			require.ErrorAs(t, err, &unmatched)
			assert.Equal(t, 0, unmatched.Offset)
			assert.Equal(t, 1, unmatched.Line)
			assert.Equal(t, "test", unmatched.Mode)
		})
	}
}

func TestPartition_EmptyMatchIsRejected(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Greedy", `^x*`))

	_, err := p.Partition(NewDocument("y\n"))
	require.Error(t, err)

	var invalid *InvalidPatternError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Greedy", invalid.Subtype)
	assert.Equal(t, 0, invalid.Offset)
}

func TestPartition_EmptyCapablePatternAtUnterminatedEnd(t *testing.T) {
	// An empty-capable pattern can produce a zero-length match exactly at
	// end-of-input. When the final line lacks a newline that position is not
	// a line start, and the search must give up instead of rescanning it.
	p := testPartitioner(t,
		blockLeaf("Pair", `^ab\nc`),
		blockLeaf("Rest", `^.*$`),
	)

	_, err := p.Partition(NewDocument("ab\ncd"))
	require.Error(t, err)

	var unmatched *UnmatchedRegionError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, 4, unmatched.Offset)
	assert.Equal(t, 2, unmatched.Line)
}

func TestPartition_EmptyDocument(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Line", anyLinePattern))

	table, err := p.Partition(NewDocument(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	require.NoError(t, table.Validate())
	assert.Equal(t, "", table.Restore())
}

func TestPartition_TrailingLineWithoutNewline(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Line", anyLinePattern))

	table, err := p.Partition(NewDocument("A\nB"))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, CharSpan{0, 2}, table.At(0).Chars)
	assert.Equal(t, CharSpan{2, 3}, table.At(1).Chars)
	assert.Equal(t, LineSpan{2, 2}, table.At(1).Lines)
	assert.Equal(t, "B", table.At(1).Text())
}

func TestPartition_LargeBlankRun(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Line", anyLinePattern), spacerLeaf())

	text := strings.Repeat("\n", 1000)
	table, err := p.Partition(NewDocument(text))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, pattern.TypeSpacer, table.At(0).Type)
	assert.Equal(t, text, table.Restore())
}

func TestPartition_PartitionerIsReusable(t *testing.T) {
	p := testPartitioner(t, blockLeaf("Line", anyLinePattern), spacerLeaf())

	first, err := p.Partition(NewDocument("alpha\n\nbeta\n"))
	require.NoError(t, err)
	second, err := p.Partition(NewDocument("gamma\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Line", "Spacer", "Line"}, subtypesOf(first))
	assert.Equal(t, []string{"Line"}, subtypesOf(second))
}

func TestBlockTable_ValidateRejectsBadPartitions(t *testing.T) {
	doc := NewDocument("abcdef")

	tests := []struct {
		name   string
		blocks []Block
		want   string
	}{
		{
			name:   "gap between blocks",
			blocks: []Block{{Chars: CharSpan{0, 2}, doc: doc}, {Chars: CharSpan{3, 6}, doc: doc}},
			want:   "starts at 3, want 2",
		},
		{
			name:   "empty span",
			blocks: []Block{{Chars: CharSpan{0, 0}, doc: doc}},
			want:   "empty span",
		},
		{
			name:   "incomplete coverage",
			blocks: []Block{{Chars: CharSpan{0, 4}, doc: doc}},
			want:   "document has 6 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &BlockTable{doc: doc, blocks: tt.blocks}
			err := table.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Assembly(t *testing.T) {
	table := partitionFixture(t, "one\n\ntwo\n")

	page := Page(table, NewTable(), DefaultOptions())

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>chemscan</title>")
	assert.Contains(t, page, "<style>")
	assert.Contains(t, page, "<script>")
	assert.Contains(t, page, `<div class="sidebar"><div class="toc"></div></div>`)
	assert.Contains(t, page, `<div class="comment-sidebar"></div>`)
	assert.True(t, strings.HasSuffix(page, "</html>\n"))

	// One fragment per block, in table order.
	assert.Equal(t, 2, strings.Count(page, `class="block"`))
	assert.Equal(t, 1, strings.Count(page, `class="spacer"`))
	assert.Less(t, strings.Index(page, "<pre>one"), strings.Index(page, "<pre>two"))
}

func TestPage_TitleEscaped(t *testing.T) {
	table := partitionFixture(t, "x\n")

	page := Page(table, NewTable(), Options{Title: "a<b & c"})
	assert.Contains(t, page, "<title>a&lt;b &amp; c</title>")
}

func TestPage_OptionToggles(t *testing.T) {
	table := partitionFixture(t, "x\n")

	tests := []struct {
		name   string
		opts   Options
		absent []string
	}{
		{"no css", Options{IncludeJS: true, TOCSidebar: true, CommentSidebar: true}, []string{"<style>"}},
		{"no js", Options{IncludeCSS: true, TOCSidebar: true, CommentSidebar: true}, []string{"<script>"}},
		{"no toc", Options{IncludeCSS: true, IncludeJS: true, CommentSidebar: true}, []string{`class="toc"`}},
		{"no comments", Options{IncludeCSS: true, IncludeJS: true, TOCSidebar: true}, []string{"comment-sidebar"}},
		{"bare", Options{}, []string{"<style>", "<script>", `class="toc"`, "comment-sidebar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Page(table, NewTable(), tt.opts)
			for _, s := range tt.absent {
				assert.NotContains(t, page, s)
			}
			assert.Contains(t, page, `class="content"`)
		})
	}
}

func TestEmbeddedAssets(t *testing.T) {
	require.NotEmpty(t, DefaultCSS)
	require.NotEmpty(t, DefaultJS)
	assert.Contains(t, DefaultCSS, ".container")
	assert.Contains(t, DefaultJS, "toc")
}

package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache stores glamour renderers by wrap width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// markdownRenderer returns a cached renderer wrapping at width. Width is
// clamped to 40-200 to keep the cache small.
func markdownRenderer(width int) *glamour.TermRenderer {
	width = min(max(width, 40), 200)

	if r, ok := rendererCache.Load(width); ok {
		return r.(*glamour.TermRenderer)
	}

	// A fixed style; auto-detection would query the terminal bubbletea owns
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	rendererCache.Store(width, r)
	return r
}

// renderMarkdown renders page bodies for the viewer, falling back to the
// source text
func renderMarkdown(src string, width int) string {
	r := markdownRenderer(width)
	if r == nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n") + "\n"
}

package pager

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// fadedBelow is the opacity under which a page is drawn faint
const fadedBelow = 0.5

var faint = lipgloss.NewStyle().Faint(true)

type layer struct {
	page  *Page
	style Style
}

// Compose layers the visible pages into a width x height block. Pages are
// shifted by their TranslateX; the most opaque page is drawn last.
func Compose(pages []*Page, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var layers []layer
	for _, p := range pages {
		if s := p.Style(); s.Visible(float64(width)) {
			layers = append(layers, layer{page: p, style: s})
		}
	}
	slices.SortStableFunc(layers, func(a, b layer) int {
		return cmp.Compare(a.style.Opacity, b.style.Opacity)
	})

	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}
	for _, l := range layers {
		off := int(math.Round(l.style.TranslateX))
		start, end := max(0, off), min(width, off+width)
		if start >= end {
			continue
		}
		for r, line := range l.page.Render(width, height) {
			seg := ansi.Cut(line, start-off, end-off)
			if l.style.Opacity < fadedBelow {
				seg = faint.Render(ansi.Strip(seg))
			}
			rows[r] = ansi.Cut(rows[r], 0, start) + seg + ansi.Cut(rows[r], end, width)
		}
	}
	return strings.Join(rows, "\n")
}

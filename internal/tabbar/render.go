package tabbar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"swipetabs/internal/animated"
	"swipetabs/internal/domain"
	"swipetabs/internal/navigator"
)

// Label opacity for the focused and the other tabs
const (
	activeOpacity   = 1.0
	inactiveOpacity = 0.7
)

// IndicatorProps is what RenderIndicator receives: the renderer source plus
// the width of one tab
type IndicatorProps struct {
	Source navigator.Source
	Width  float64
}

// Hooks customize tab rendering. Every hook is optional; an empty return
// renders nothing.
type Hooks struct {
	RenderLabel     func(domain.Scene) string
	RenderIcon      func(domain.Scene) string
	RenderBadge     func(domain.Scene) string
	RenderIndicator func(IndicatorProps) string
}

// Styles contains the style definitions for the tab strip
type Styles struct {
	ActiveColor   string
	InactiveColor string
	Badge         lipgloss.Style
	Indicator     lipgloss.Style
	Bar           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() Styles {
	return Styles{
		ActiveColor:   "#ffffff",
		InactiveColor: "#5c6370",
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#e06c75")),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffeb3b")),
		Bar:           lipgloss.NewStyle(),
	}
}

// labelColor blends the inactive and active colours by opacity
func (s Styles) labelColor(opacity float64) lipgloss.Color {
	active, err := colorful.Hex(s.ActiveColor)
	if err != nil {
		return lipgloss.Color(s.ActiveColor)
	}
	inactive, err := colorful.Hex(s.InactiveColor)
	if err != nil {
		return lipgloss.Color(s.ActiveColor)
	}
	t := (opacity - inactiveOpacity) / (activeOpacity - inactiveOpacity)
	return lipgloss.Color(inactive.BlendLab(active, clamp(t, 0, 1)).Clamped().Hex())
}

// tabOpacity interpolates tab i's opacity from the position: fully opaque on
// its own index, faded everywhere else
func tabOpacity(position float64, i, routeCount int) float64 {
	in := make([]float64, routeCount)
	out := make([]float64, routeCount)
	for k := range in {
		in[k] = float64(k)
		out[k] = inactiveOpacity
		if k == i {
			out[k] = activeOpacity
		}
	}
	return animated.Map(position, animated.InterpolationConfig{InputRange: in, OutputRange: out})
}

// renderStrip renders the full-width tab strip: the item row, followed by the
// indicator row when one is shown. Both bars use it. With scrolling enabled
// every item is held to tabItemWidth; otherwise items share the strip evenly,
// which with the Metrics formula is the same width.
func renderStrip(src navigator.Source, hooks Hooks, styles Styles, showIndicator bool, scrollEnabled bool, tabItemWidth float64) []string {
	state := src.State()
	n := len(state.Routes)
	if n == 0 || tabItemWidth <= 0 {
		return nil
	}
	position := src.Position().Get()

	var row strings.Builder
	for _, scene := range state.Scenes() {
		start, end := span(scene.Index, tabItemWidth)
		row.WriteString(renderItem(scene, hooks, styles, tabOpacity(position, scene.Index, n), end-start))
	}

	lines := []string{styles.Bar.Render(row.String())}
	if !showIndicator {
		return lines
	}

	props := IndicatorProps{Source: src, Width: tabItemWidth}
	if hooks.RenderIndicator != nil {
		if ind := hooks.RenderIndicator(props); ind != "" {
			lines = append(lines, ind)
		}
		return lines
	}
	return append(lines, defaultIndicator(props, styles, int(math.Round(tabItemWidth*float64(n)))))
}

// renderItem renders one tab cell of exactly width columns
func renderItem(scene domain.Scene, hooks Hooks, styles Styles, opacity float64, width int) string {
	if width <= 0 {
		return ""
	}

	label := scene.Route.Title
	if label == "" {
		label = scene.Route.Key
	}
	if hooks.RenderLabel != nil {
		label = hooks.RenderLabel(scene)
	}

	var parts []string
	if hooks.RenderIcon != nil {
		if icon := hooks.RenderIcon(scene); icon != "" {
			parts = append(parts, icon)
		}
	}
	if label != "" {
		style := lipgloss.NewStyle().Foreground(styles.labelColor(opacity))
		if scene.Focused {
			style = style.Bold(true)
		}
		parts = append(parts, style.Render(label))
	}

	content := ansi.Truncate(strings.Join(parts, " "), width, "…")
	item := lipgloss.PlaceHorizontal(width, lipgloss.Center, content)

	if hooks.RenderBadge != nil {
		if badge := hooks.RenderBadge(scene); badge != "" {
			badge = styles.Badge.Render(badge)
			bw := ansi.StringWidth(badge)
			if bw < width {
				item = ansi.Truncate(item, width-bw, "") + badge
			}
		}
	}
	return item
}

// defaultIndicator draws an underline under the tab the position points at,
// sliding with fractional positions
func defaultIndicator(props IndicatorProps, styles Styles, contentWidth int) string {
	position := props.Source.Position().Get()
	start := int(math.Round(position * props.Width))
	end := int(math.Round((position + 1) * props.Width))
	start = max(0, min(start, contentWidth))
	end = max(start, min(end, contentWidth))

	return strings.Repeat(" ", start) +
		styles.Indicator.Render(strings.Repeat("━", end-start)) +
		strings.Repeat(" ", contentWidth-end)
}

// viewport cuts columns [start, start+width) out of every strip line and pads
// short lines
func viewport(lines []string, start, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		cut := ansi.Cut(line, start, start+width)
		if pad := width - ansi.StringWidth(cut); pad > 0 {
			cut += strings.Repeat(" ", pad)
		}
		out[i] = cut
	}
	return strings.Join(out, "\n")
}

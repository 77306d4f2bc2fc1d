package tabbar

import (
	"math"

	"swipetabs/internal/domain"
)

// ScrollThreshold is the route count above which the tab strip scrolls
const ScrollThreshold = 3

// Metrics is the tab width and centering math shared by both bars. The drag
// bar translates the strip by -ScrollAmount; the native bar scrolls its
// viewport by +ScrollAmount.
type Metrics struct {
	Measured   bool
	Width      float64
	RouteCount int
}

// NewMetrics derives metrics from a layout and route count
func NewMetrics(layout domain.Layout, routeCount int) Metrics {
	return Metrics{
		Measured:   layout.Measured,
		Width:      layout.Width,
		RouteCount: routeCount,
	}
}

// ScrollEnabled reports whether the strip is wider than the viewport by design
func (m Metrics) ScrollEnabled() bool {
	return m.RouteCount > ScrollThreshold
}

// TabItemWidth is two fifths of the viewport when scrolling, an equal share
// otherwise, and zero until the layout is measured
func (m Metrics) TabItemWidth() float64 {
	if !m.Measured || m.RouteCount == 0 {
		return 0
	}
	if m.ScrollEnabled() {
		return (m.Width / 5) * 2
	}
	return m.Width / float64(m.RouteCount)
}

// ContentWidth is the full strip width
func (m Metrics) ContentWidth() float64 {
	return m.TabItemWidth() * float64(m.RouteCount)
}

// MaxScrollDistance is how far the strip can move
func (m Metrics) MaxScrollDistance() float64 {
	if !m.Measured {
		return 0
	}
	return math.Max(0, m.ContentWidth()-m.Width)
}

// CenterDistance is the strip coordinate of the middle of tab v
func (m Metrics) CenterDistance(v float64) float64 {
	w := m.TabItemWidth()
	return w*v + w/2
}

// ScrollAmount is the strip scroll that centers tab v, clamped to the
// scrollable range
func (m Metrics) ScrollAmount(v float64) float64 {
	if !m.Measured {
		return 0
	}
	return clamp(m.CenterDistance(v)-m.Width/2, 0, m.MaxScrollDistance())
}

// IndexAt returns the tab under strip coordinate x, or -1
func (m Metrics) IndexAt(x float64) int {
	w := m.TabItemWidth()
	if w <= 0 || x < 0 {
		return -1
	}
	i := int(math.Floor(x / w))
	if i >= m.RouteCount {
		return -1
	}
	return i
}

// span returns the cell columns [start, end) of tab i in a strip of tabs w
// cells wide
func span(i int, w float64) (int, int) {
	return int(math.Round(float64(i) * w)), int(math.Round(float64(i+1) * w))
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

package pager

import (
	"math"

	"swipetabs/internal/animated"
)

// Style is a page transform
type Style struct {
	TranslateX float64
	Opacity    float64
}

// Visible reports whether the page shows at all in a viewport of width
func (s Style) Visible(width float64) bool {
	return s.Opacity > 0 && math.Abs(s.TranslateX) < width
}

// StyleInterpolator derives a page's style from the shared Position
type StyleInterpolator func(SceneProps) Style

// hidden moves a page out of any viewport
var hidden = Style{TranslateX: math.Inf(1), Opacity: 0}

// forInitial places pages before the layout is measured: only the page the
// Position last reported is shown
func forInitial(props SceneProps) Style {
	index := props.Index()
	if index < 0 || int(math.Round(props.Source.GetLastPosition())) != index {
		return hidden
	}
	return Style{Opacity: 1}
}

// ForHorizontalStyle slides pages side by side: page i sits one width to the
// right of page i-1
func ForHorizontalStyle(props SceneProps) Style {
	layout := props.Source.Layout()
	if !layout.Measured {
		return forInitial(props)
	}
	index := props.Index()
	if index < 0 {
		return hidden
	}
	i := float64(index)
	translate := animated.Interpolate(props.Source.Position(), animated.InterpolationConfig{
		InputRange:  []float64{i - 1, i, i + 1},
		OutputRange: []float64{layout.Width, 0, -layout.Width},
		Extrapolate: animated.ExtrapolateExtend,
	})
	return Style{TranslateX: translate.Get(), Opacity: 1}
}

// ForFadeStyle cross-fades pages in place
func ForFadeStyle(props SceneProps) Style {
	if !props.Source.Layout().Measured {
		return forInitial(props)
	}
	index := props.Index()
	if index < 0 {
		return hidden
	}
	i := float64(index)
	opacity := animated.Map(props.Source.Position().Get(), animated.InterpolationConfig{
		InputRange:  []float64{i - 1, i, i + 1},
		OutputRange: []float64{0, 1, 0},
	})
	return Style{Opacity: opacity}
}

package pager

import (
	"math"

	"swipetabs/internal/gesture"
)

// PanConfig tunes the default horizontal swipe
type PanConfig struct {
	// RespondThreshold is the horizontal distance in cells before the page
	// claims a move
	RespondThreshold float64
	// DistanceThreshold is the fraction of the width a drag must cover to
	// switch pages
	DistanceThreshold float64
	// VelocityThreshold is the release speed in cells per millisecond that
	// switches pages regardless of distance
	VelocityThreshold float64
}

// DefaultPanConfig returns the default swipe thresholds
func DefaultPanConfig() PanConfig {
	return PanConfig{
		RespondThreshold:  2,
		DistanceThreshold: 0.33,
		VelocityThreshold: 0.5,
	}
}

// ForHorizontal returns a factory for swipe-to-switch handlers. While
// dragging, the Position follows the finger from the committed index; on
// release the swipe either commits the neighbour or springs back.
func ForHorizontal(cfg PanConfig) PanHandlersFactory {
	return func(props SceneProps) *gesture.Handlers {
		src := props.Source

		follow := func(st gesture.State) {
			width := src.Layout().Width
			if width <= 0 {
				return
			}
			state := src.State()
			last := float64(len(state.Routes) - 1)
			v := float64(state.Index) - st.DX/width
			src.Position().SetValue(math.Min(math.Max(v, 0), last))
		}

		finish := func(st gesture.State) {
			state := src.State()
			width := src.Layout().Width

			direction := -sign(st.DX)
			if math.Abs(st.VX) > cfg.VelocityThreshold {
				direction = -sign(st.VX)
			}
			switched := width > 0 && (math.Abs(st.DX) > width*cfg.DistanceThreshold || math.Abs(st.VX) > cfg.VelocityThreshold)
			next := state.Index + direction
			if switched && direction != 0 && next >= 0 && next < len(state.Routes) {
				src.JumpToIndex(next)
				return
			}
			src.ResetPosition()
		}

		return &gesture.Handlers{
			OnMoveShouldSetResponder: func(_ gesture.Event, st gesture.State) bool {
				return math.Abs(st.DX) > cfg.RespondThreshold && st.IsHorizontal()
			},
			OnGrant: func(gesture.Event, gesture.State) {
				src.Position().StopAnimation()
			},
			OnMove: func(_ gesture.Event, st gesture.State) {
				follow(st)
			},
			OnRelease: func(_ gesture.Event, st gesture.State) {
				finish(st)
			},
			OnTerminate: func(_ gesture.Event, st gesture.State) {
				finish(st)
			},
		}
	}
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

package domain

// Route is one tab/page. Identity is Key.
type Route struct {
	Key   string
	Title string
}

// NavigationState is the committed tab selection
type NavigationState struct {
	Index  int
	Routes []Route
}

// Len returns the number of routes
func (s NavigationState) Len() int {
	return len(s.Routes)
}

// Focused returns the route at Index
func (s NavigationState) Focused() Route {
	return s.Routes[s.Index]
}

// IndexOf returns the index of the route with key, or -1
func (s NavigationState) IndexOf(key string) int {
	for i, r := range s.Routes {
		if r.Key == key {
			return i
		}
	}
	return -1
}

// Scenes returns one Scene per route
func (s NavigationState) Scenes() []Scene {
	scenes := make([]Scene, len(s.Routes))
	for i, r := range s.Routes {
		scenes[i] = Scene{Route: r, Index: i, Focused: i == s.Index}
	}
	return scenes
}

// Scene is a route placed in the navigation state
type Scene struct {
	Route   Route
	Index   int
	Focused bool
}

// Layout is the measured viewport. Width-dependent math must treat an
// unmeasured layout as zero width.
type Layout struct {
	Measured bool
	Width    float64
	Height   float64
}

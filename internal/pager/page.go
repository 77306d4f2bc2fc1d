// Package pager renders one scene per route, moved by a style interpolator of
// the shared Position and swiped by a pluggable pan responder.
package pager

import (
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"swipetabs/internal/domain"
	"swipetabs/internal/gesture"
	"swipetabs/internal/navigator"
)

// SceneProps is what pan handler factories and style interpolators receive
type SceneProps struct {
	Source navigator.Source
	Route  domain.Route
}

// Index returns the route's index in the committed state, or -1
func (p SceneProps) Index() int {
	return p.Source.State().IndexOf(p.Route.Key)
}

// PanHandlersFactory builds the page's gesture handlers. Returning nil leaves
// the page without a responder.
type PanHandlersFactory func(SceneProps) *gesture.Handlers

// Props configures a Page
type Props struct {
	Source      navigator.Source
	Route       domain.Route
	RenderScene func(domain.Scene) string

	// PanHandlers, when set, is used instead of PanHandlersFactory
	PanHandlers        *gesture.Handlers
	PanHandlersFactory PanHandlersFactory
	StyleInterpolator  StyleInterpolator

	Interactions *gesture.Registry
}

// renderKey is everything a scene's content depends on
type renderKey struct {
	scene         domain.Scene
	width, height int
}

// Page is the container for one route's scene
type Page struct {
	props     Props
	responder *gesture.Responder

	key     renderKey
	lines   []string
	cached  bool
	renders int
}

// New creates a page and builds its responder
func New(props Props) *Page {
	p := &Page{}
	p.SetProps(props)
	return p
}

// SetProps replaces the page's props and rebuilds the responder. A responder
// caught mid-gesture gives back its interaction handle first.
func (p *Page) SetProps(props Props) {
	if p.responder != nil && p.responder.HoldsInteraction() {
		log.Printf("Pager: releasing interaction handle of %q mid-gesture", p.props.Route.Key)
	}
	if p.responder != nil {
		p.responder.ReleaseInteractionHandle()
	}
	p.props = props

	handlers := props.PanHandlers
	if handlers == nil {
		factory := props.PanHandlersFactory
		if factory == nil {
			factory = ForHorizontal(DefaultPanConfig())
		}
		handlers = factory(p.sceneProps())
	}
	if handlers == nil {
		p.responder = nil
		return
	}
	p.responder = gesture.NewResponder(*handlers, props.Interactions)
}

// Props returns the current props
func (p *Page) Props() Props {
	return p.props
}

// Responder returns the page's current responder, or nil
func (p *Page) Responder() *gesture.Responder {
	return p.responder
}

// Attach registers the page for region. The responder is looked up on every
// press, so SetProps takes effect without re-attaching.
func (p *Page) Attach(sys *gesture.System, region func() gesture.Region) func() {
	return sys.Attach(region, p.Responder)
}

// Scene returns the page's scene in the committed state
func (p *Page) Scene() domain.Scene {
	state := p.props.Source.State()
	index := state.IndexOf(p.props.Route.Key)
	return domain.Scene{
		Route:   p.props.Route,
		Index:   index,
		Focused: index == state.Index,
	}
}

// Style returns the page's current transform
func (p *Page) Style() Style {
	interp := p.props.StyleInterpolator
	if interp == nil {
		interp = ForHorizontalStyle
	}
	return interp(p.sceneProps())
}

// Render returns the scene's content as exactly height lines of width cells.
// Content is only re-rendered when the scene or the size changes.
func (p *Page) Render(width, height int) []string {
	key := renderKey{scene: p.Scene(), width: width, height: height}
	if p.cached && key == p.key {
		return p.lines
	}

	content := ""
	if p.props.RenderScene != nil {
		content = p.props.RenderScene(key.scene)
	}
	p.lines = fit(content, width, height)
	p.key = key
	p.cached = true
	p.renders++
	return p.lines
}

// Renders returns how many times the scene content was rendered
func (p *Page) Renders() int {
	return p.renders
}

func (p *Page) sceneProps() SceneProps {
	return SceneProps{Source: p.props.Source, Route: p.props.Route}
}

// fit truncates and pads content to a width x height block
func fit(content string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	src := strings.Split(content, "\n")
	lines := make([]string, height)
	for i := range lines {
		line := ""
		if i < len(src) {
			line = ansi.Truncate(src[i], width, "")
		}
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, line)
	}
	return lines
}

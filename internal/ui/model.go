package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"swipetabs/internal/animated"
	"swipetabs/internal/config"
	"swipetabs/internal/domain"
	"swipetabs/internal/eventbus"
	"swipetabs/internal/gesture"
	"swipetabs/internal/navigator"
	"swipetabs/internal/pager"
	"swipetabs/internal/tabbar"
	"swipetabs/internal/ui/scrollview"
)

// Rows below the pages reserved for the status and help line
const footerHeight = 1

// wheelStep is how far one wheel notch scrolls the tab strip, in cells
const wheelStep = 4.0

// Model hosts the tab view: the tab bar on top, the pages below it and a
// status line at the bottom
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *Styles

	frames       *FrameScheduler
	interactions *gesture.Registry
	gestures     *gesture.System

	nav      *navigator.Navigator
	bar      tabbar.Bar
	scroller *scrollview.Model // only with the native strategy
	pages    []*pager.Page

	bodies    map[string]string
	badges    map[string]string
	pageStyle string

	width     int
	height    int
	help      help.Model
	status    string
	statusErr bool
	viewer    *Viewer

	detach      []func()
	unsubscribe func()
	closed      bool
	now         func() time.Time
}

// NewModel creates the tab view described by cfg
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if len(cfg.Routes) == 0 {
		return nil, fmt.Errorf("no routes configured")
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		styles:       NewStyles(),
		frames:       NewFrameScheduler(cfg.Animation.FPS),
		interactions: gesture.NewRegistry(),
		gestures:     gesture.NewSystem(),
		bodies:       make(map[string]string, len(cfg.Routes)),
		badges:       make(map[string]string),
		pageStyle:    cfg.Pager.Style,
		help:         help.New(),
		now:          time.Now,
	}

	spring := animated.DefaultSpringConfig()
	if cfg.Animation.SpringTension > 0 {
		spring.Tension = cfg.Animation.SpringTension
	}
	if cfg.Animation.SpringFriction > 0 {
		spring.Friction = cfg.Animation.SpringFriction
	}
	if cfg.Animation.FPS > 0 {
		spring.FPS = cfg.Animation.FPS
	}
	decay := animated.DefaultDecayConfig()
	if cfg.Animation.DecayDeceleration > 0 {
		decay.Deceleration = cfg.Animation.DecayDeceleration
	}

	routes := make([]domain.Route, len(cfg.Routes))
	for i, r := range cfg.Routes {
		routes[i] = domain.Route{Key: r.Key, Title: r.Title}
		m.bodies[r.Key] = r.Body
		if r.Badge != "" {
			m.badges[r.Key] = r.Badge
		}
	}

	m.nav = navigator.New(domain.NavigationState{Routes: routes}, navigator.Options{
		Scheduler:    m.frames,
		Spring:       spring,
		Interactions: m.interactions,
		Bus:          bus,
	})

	opts := tabbar.Options{
		Source:    m.nav,
		Scheduler: m.frames,
		Hooks:     tabbar.Hooks{RenderBadge: m.renderBadge},
		Styles:    tabbar.NewStyles(),
		OnTabItemPress: func(r domain.Route) {
			log.Printf("UI: tab %q pressed", r.Key)
		},
		Spring:        spring,
		Decay:         decay,
		VelocityScale: cfg.VelocityScaleFor(),
		Interactions:  m.interactions,
		Bus:           bus,
		ShowIndicator: cfg.UISettings.ShowIndicator,
	}

	var scroller tabbar.Scroller
	if cfg.Strategy == config.StrategyNative {
		m.scroller = scrollview.New(scrollview.Options{
			Scheduler:     m.frames,
			Spring:        spring,
			Decay:         decay,
			VelocityScale: cfg.VelocityScaleFor(),
			Interactions:  m.interactions,
		})
		scroller = m.scroller
	}

	bar, err := tabbar.New(cfg.Strategy, opts, scroller)
	if err != nil {
		return nil, err
	}
	m.bar = bar
	if nb, ok := bar.(*tabbar.NativeBar); ok {
		m.scroller.OnScroll(nb.HandleScroll)
		m.scroller.OnInterrupt(nb.HandleInterrupt)
	}
	m.unsubscribe = m.nav.Subscribe(func(domain.NavigationState) {
		m.bar.Sync()
	})
	m.detach = append(m.detach, m.bar.Attach(m.gestures, m.barRegion))

	for _, route := range routes {
		page := pager.New(m.pageProps(route))
		m.pages = append(m.pages, page)
		m.detach = append(m.detach, page.Attach(m.gestures, m.pageRegion(page)))
	}

	log.Printf("UI: %d tabs, %s strategy, %s pages", len(routes), cfg.Strategy, m.pageStyle)
	return m, nil
}

// SetProgram sets the program reference used to hand the terminal to the
// viewer
func (m *Model) SetProgram(p *tea.Program) {
	m.viewer = NewViewer(p)
}

// Navigator returns the navigation state owner
func (m *Model) Navigator() *navigator.Navigator {
	return m.nav
}

// Bar returns the tab bar
func (m *Model) Bar() tabbar.Bar {
	return m.bar
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nav.SetLayout(float64(msg.Width), float64(m.pageHeight()))

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg)...)

	case frameMsg:
		m.frames.Run(time.Time(msg))

	case transitionDoneMsg:
		m.bar.Commit(msg.transition)

	case viewerDoneMsg:
		if msg.err != nil {
			log.Printf("UI: viewer failed: %v", msg.err)
			m.setError(fmt.Sprintf("Viewer: %v", msg.err))
		}

	case EventMsg:
		m.handleEvent(msg.Event)
	}

	cmds = append(cmds, m.frames.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := m.nav.State()
	switch {
	case key.Matches(msg, keys.Prev):
		return m.press(state.Index - 1)
	case key.Matches(msg, keys.Next):
		return m.press(state.Index + 1)
	case key.Matches(msg, keys.Jump):
		return m.press(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Style):
		m.togglePageStyle()
	case key.Matches(msg, keys.Open):
		return m.openInViewer(m.pageDocument(state.Focused()))
	case key.Matches(msg, keys.Help):
		return m.openInViewer(NewHelpRenderer().Render(m.config))
	}
	return nil
}

// press selects tab index as if it was tapped
func (m *Model) press(index int) tea.Cmd {
	if index < 0 || index >= m.nav.State().Len() {
		return nil
	}
	return waitFor(m.bar.Press(index))
}

func (m *Model) handleMouse(msg tea.MouseMsg) []tea.Cmd {
	ev := gesture.Event{X: float64(msg.X), Y: float64(msg.Y), Time: m.now()}

	if tea.MouseEvent(msg).IsWheel() {
		if m.scroller == nil || !m.barRegion().Contains(ev.X, ev.Y) {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.scroller.ScrollBy(-wheelStep)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.scroller.ScrollBy(wheelStep)
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.gestures.Press(ev)
		}
	case tea.MouseActionMotion:
		m.gestures.Move(ev)
	case tea.MouseActionRelease:
		m.gestures.Release(ev)
	}

	var cmds []tea.Cmd
	for _, t := range m.bar.TakeTransitions() {
		cmds = append(cmds, waitFor(t))
	}
	return cmds
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.IndexChangedEvent:
		m.setStatus(fmt.Sprintf("%s (%d/%d)", e.Route.Title, e.To+1, m.nav.State().Len()))
	case eventbus.ScrollSettledEvent:
		if e.Superseded {
			m.setStatus(fmt.Sprintf("Scroll to tab %d superseded", e.Index+1))
		}
	case eventbus.ConfigLoadedEvent:
		if e.Path != "" {
			m.setStatus(fmt.Sprintf("Loaded %d tabs from %s", e.Routes, e.Path))
		}
	case eventbus.ConfigSavedEvent:
		m.setStatus(fmt.Sprintf("Saved %s", e.Path))
	}
}

// waitFor turns a pending transition into a command that reports back once
// the strip has finished scrolling
func waitFor(t *tabbar.Transition) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		_ = t.Wait()
		return transitionDoneMsg{transition: t}
	}
}

func (m *Model) openInViewer(content string) tea.Cmd {
	viewer := m.viewer
	return func() tea.Msg {
		return viewerDoneMsg{err: viewer.Show(content)}
	}
}

func (m *Model) togglePageStyle() {
	if m.pageStyle == config.StyleFade {
		m.pageStyle = config.StyleHorizontal
	} else {
		m.pageStyle = config.StyleFade
	}
	for _, p := range m.pages {
		p.SetProps(m.pageProps(p.Props().Route))
	}
	m.setStatus("Pages: " + m.pageStyle)
}

func (m *Model) pageProps(route domain.Route) pager.Props {
	interp := pager.ForHorizontalStyle
	if m.pageStyle == config.StyleFade {
		interp = pager.ForFadeStyle
	}
	return pager.Props{
		Source:      m.nav,
		Route:       route,
		RenderScene: m.renderScene,
		PanHandlersFactory: pager.ForHorizontal(pager.PanConfig{
			RespondThreshold:  m.config.Pager.RespondThreshold,
			DistanceThreshold: m.config.Pager.DistanceThreshold,
			VelocityThreshold: m.config.Pager.VelocityThreshold,
		}),
		StyleInterpolator: interp,
		Interactions:      m.interactions,
	}
}

func (m *Model) barHeight() int {
	if m.config.UISettings.ShowIndicator {
		return 2
	}
	return 1
}

func (m *Model) pageHeight() int {
	return max(0, m.height-m.barHeight()-footerHeight)
}

func (m *Model) barRegion() gesture.Region {
	return gesture.Region{W: m.width, H: m.barHeight()}
}

// pageRegion covers the page area while p is the focused page
func (m *Model) pageRegion(p *pager.Page) func() gesture.Region {
	return func() gesture.Region {
		if !p.Scene().Focused {
			return gesture.Region{}
		}
		return gesture.Region{Y: m.barHeight(), W: m.width, H: m.pageHeight()}
	}
}

func (m *Model) renderBadge(scene domain.Scene) string {
	return m.badges[scene.Route.Key]
}

func (m *Model) renderScene(scene domain.Scene) string {
	title := m.styles.Title.Render(scene.Route.Title)
	body := m.styles.Body.Width(max(1, m.width-4)).Render(m.bodies[scene.Route.Key])
	if !scene.Focused {
		body = m.styles.Dim.Render(body)
	}
	return "\n  " + title + "\n\n" + indent(body, "  ")
}

func (m *Model) pageDocument(route domain.Route) string {
	return m.styles.Title.Render(route.Title) + "\n\n" + renderMarkdown(m.bodies[route.Key], m.width)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// View renders the tab bar, the pages and the footer
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{m.bar.View()}
	if pages := pager.Compose(m.pages, m.width, m.pageHeight()); pages != "" {
		sections = append(sections, pages)
	}
	sections = append(sections, m.footer())
	return strings.Join(sections, "\n")
}

func (m *Model) footer() string {
	var parts []string
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		parts = append(parts, style.Render(m.status))
	}
	if m.config.UISettings.ShowHelp {
		parts = append(parts, m.help.View(keys))
	}
	return ansi.Truncate(strings.Join(parts, m.styles.Help.Render(" • ")), m.width, "")
}

// Close detaches the responders and unmounts the tab bar. It is safe to
// call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.gestures.Cancel()
	for _, detach := range m.detach {
		detach()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.bar.Unmount()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"swipetabs/internal/config"
)

// HelpRenderer builds the full help shown in the viewer
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// Render generates the key and configuration help with colors for the viewer
func (r *HelpRenderer) Render(cfg *config.Config) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %-10s %s\n", keyStyle.Render(k), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("swipetabs Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Keys"))
	help.WriteString("\n")
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			line(b.Help().Key, b.Help().Desc)
		}
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	line("click", "select a tab")
	line("drag", "scroll the tab strip or swipe a page")
	line("wheel", "scroll the tab strip")

	if cfg == nil {
		return help.String()
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("Configuration"))
	help.WriteString("\n")
	line("strategy", cfg.Strategy)
	line("platform", fmt.Sprintf("%s (velocity x%g)", cfg.Platform, cfg.VelocityScaleFor()))
	line("spring", fmt.Sprintf("tension %g, friction %g", cfg.Animation.SpringTension, cfg.Animation.SpringFriction))
	line("decay", fmt.Sprintf("%g", cfg.Animation.DecayDeceleration))
	line("pages", cfg.Pager.Style)
	line("tabs", fmt.Sprintf("%d", len(cfg.Routes)))

	return help.String()
}

// Viewer shows long content in ov, taking over the terminal meanwhile
type Viewer struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewViewer creates a viewer bound to program
func NewViewer(program *tea.Program) *Viewer {
	return &Viewer{program: program}
}

// Show displays content in ov and returns once the user quits it
func (v *Viewer) Show(content string) error {
	if v == nil || v.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := v.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = v.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}

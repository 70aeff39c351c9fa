// Package warning shows the prerequisite warning before a module whose
// prerequisites are not all completed. The learner may go back or open the
// module anyway; the warning never blocks.
package warning

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learninglab/bitlab/internal/curriculum"
	"github.com/learninglab/bitlab/internal/router"
	"github.com/learninglab/bitlab/internal/screen"
	"github.com/learninglab/bitlab/internal/ui/components"
	"github.com/learninglab/bitlab/internal/ui/layout"
	"github.com/learninglab/bitlab/internal/ui/theme"
)

// WarningScreen lists the missing prerequisites of a module.
type WarningScreen struct {
	module  curriculum.Module
	missing []string
	buttons components.ButtonRow
}

var _ screen.Screen = (*WarningScreen)(nil)
var _ screen.KeyHintProvider = (*WarningScreen)(nil)

// New creates the warning for module. missing holds the titles of the
// unmet prerequisites; open builds the screen shown on "Continue Anyway".
func New(module curriculum.Module, missing []string, open func() screen.Screen) *WarningScreen {
	goBack := components.NewButton("← Go Back & Learn Prerequisites", false, func() tea.Cmd {
		return func() tea.Msg { return router.PopScreenMsg{} }
	})
	cont := components.NewButton("Continue Anyway →", false, func() tea.Cmd {
		next := open()
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	})
	return &WarningScreen{
		module:  module,
		missing: missing,
		buttons: components.NewButtonRow(goBack, cont),
	}
}

func (w *WarningScreen) Init() tea.Cmd { return nil }
func (w *WarningScreen) Title() string { return "Prerequisites" }

func (w *WarningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.buttons, cmd = w.buttons.Update(msg)
	return w, cmd
}

func (w *WarningScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *WarningScreen) View(width, height int) string {
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(theme.Warning.Render("⚠  Prerequisites Not Completed"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(contentWidth).Render(
		fmt.Sprintf("%s works best after completing these modules first:", w.module.Title)))
	b.WriteString("\n\n")

	for _, title := range w.missing {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  ✗ "))
		b.WriteString(theme.Body.Render(title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("These modules teach ideas that help you understand %s better. "+
			"You can still continue, but finishing them first is the recommended path.", w.module.Title)))
	b.WriteString("\n\n")

	b.WriteString(w.buttons.View())

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

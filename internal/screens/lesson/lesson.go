package lesson

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/curriculum"
	"github.com/learninglab/bitlab/internal/progress"
	"github.com/learninglab/bitlab/internal/router"
	"github.com/learninglab/bitlab/internal/screen"
	"github.com/learninglab/bitlab/internal/ui/components"
	"github.com/learninglab/bitlab/internal/ui/layout"
	"github.com/learninglab/bitlab/internal/ui/theme"
)

// LessonScreen shows one module and lets the learner mark it complete.
type LessonScreen struct {
	ctx     context.Context
	tracker *progress.Tracker
	logger  *zap.Logger
	module  curriculum.Module
	status  progress.ModuleStatus
	done    map[string]bool
	menu    components.Menu
	err     string
	// stale is set when the completion set changed and the menu must be
	// rebuilt once the current key press has been handled.
	stale bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen for module. ctx scopes every store call the
// screen makes.
func New(ctx context.Context, tracker *progress.Tracker, module curriculum.Module, logger *zap.Logger) *LessonScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &LessonScreen{ctx: ctx, tracker: tracker, module: module, logger: logger}
	l.reload()
	return l
}

func (l *LessonScreen) Init() tea.Cmd { return nil }
func (l *LessonScreen) Title() string { return l.module.Title }

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	menu, cmd := l.menu.Update(msg)
	l.menu = menu
	if l.stale {
		l.stale = false
		l.reload()
	}
	return l, cmd
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// State returns the module's current state.
func (l *LessonScreen) State() curriculum.State {
	return l.status.State
}

func (l *LessonScreen) reload() {
	l.status, _ = l.tracker.Status(l.ctx, l.module.ID)
	l.done = make(map[string]bool)
	for _, id := range l.tracker.CompletedModules(l.ctx) {
		l.done[id] = true
	}

	completed := l.status.State == curriculum.StateCompleted
	label := "Mark complete"
	if completed {
		label = "Completed " + curriculum.StateCompleted.Icon()
	}
	l.menu = components.NewMenu([]components.MenuItem{
		{Label: label, Action: l.markComplete, Disabled: completed},
		{Label: "Back", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
}

func (l *LessonScreen) markComplete() tea.Cmd {
	if err := l.tracker.MarkModuleComplete(l.ctx, l.module.ID); err != nil {
		l.logger.Error("mark module complete", zap.String("module", l.module.ID), zap.Error(err))
		l.err = "Could not save your progress. Please try again."
		return nil
	}
	l.err = ""
	l.stale = true
	return screen.LearnerChanged
}

func (l *LessonScreen) View(width, height int) string {
	m := l.module
	contentWidth := min(width-8, 70)

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	headingStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	// Module name + state.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", m.Icon, m.Title)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s", l.status.State.Icon(), l.status.State.Label())))
	b.WriteString("\n\n")

	if m.Summary != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(m.Summary))
		b.WriteString("\n\n")
	}

	// Prerequisites.
	if len(m.Prerequisites) > 0 {
		b.WriteString(headingStyle.Render("  Prerequisites"))
		b.WriteString("\n")
		for _, id := range m.Prerequisites {
			icon := "○"
			style := dimStyle
			if l.done[id] {
				icon = "●"
				style = theme.Completed
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", icon, l.tracker.Registry().Title(id))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Dependents (what this module unlocks).
	deps := l.tracker.Registry().Dependents(m.ID)
	if len(deps) > 0 {
		b.WriteString(headingStyle.Render("  Unlocks"))
		b.WriteString("\n")
		for _, dep := range deps {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  → %s %s", dep.Icon, dep.Title)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(l.menu.View())
	if l.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + l.err))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

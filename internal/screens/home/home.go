package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/curriculum"
	"github.com/learninglab/bitlab/internal/prefs"
	"github.com/learninglab/bitlab/internal/progress"
	"github.com/learninglab/bitlab/internal/router"
	"github.com/learninglab/bitlab/internal/screen"
	"github.com/learninglab/bitlab/internal/screens/lesson"
	"github.com/learninglab/bitlab/internal/screens/name"
	"github.com/learninglab/bitlab/internal/screens/warning"
	"github.com/learninglab/bitlab/internal/ui/components"
	"github.com/learninglab/bitlab/internal/ui/layout"
	"github.com/learninglab/bitlab/internal/ui/theme"
)

const titleCompact = "B · I · T · L · A · B"

// HomeScreen is the learner's journey: every module in order with its state.
type HomeScreen struct {
	ctx          context.Context
	tracker      *progress.Tracker
	prefs        *prefs.Service
	logger       *zap.Logger
	journey      []progress.ModuleStatus
	summary      progress.Summary
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. ctx is handed to every screen it opens.
func New(ctx context.Context, tracker *progress.Tracker, p *prefs.Service, logger *zap.Logger) *HomeScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &HomeScreen{ctx: ctx, tracker: tracker, prefs: p, logger: logger}
	h.reload()

	// Start on the first module the learner can do next.
	if len(h.summary.Next) > 0 {
		for i, st := range h.journey {
			if st.Module.ID == h.summary.Next[0].ID {
				h.cursor = i
				break
			}
		}
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume re-reads progress when a lesson or the name screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LearnerChangedMsg:
		h.reload()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.moveCursor(-1)
		case "down", "j":
			h.moveCursor(1)
		case "home", "g":
			h.cursor = 0
		case "end", "G":
			h.cursor = max(len(h.journey)-1, 0)
		case "enter":
			return h, h.open()
		case "n":
			nameScreen := name.New(h.ctx, h.prefs, h.logger)
			return h, func() tea.Msg { return router.PushScreenMsg{Screen: nameScreen} }
		case "t":
			return h, h.toggleTheme()
		case "q":
			return h, tea.Quit
		}
	}
	return h, nil
}

func (h *HomeScreen) Title() string {
	return "Learning Journey"
}

// KeyHints returns the key binding hints for the footer.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "n", Description: "Name"},
		{Key: "t", Description: "Theme"},
		{Key: "q", Description: "Quit"},
	}
}

// Selected returns the module under the cursor.
func (h *HomeScreen) Selected() curriculum.Module {
	if h.cursor < 0 || h.cursor >= len(h.journey) {
		return curriculum.Module{}
	}
	return h.journey[h.cursor].Module
}

func (h *HomeScreen) reload() {
	h.journey = h.tracker.Journey(h.ctx)
	h.summary = h.tracker.Summary(h.ctx)
	if h.cursor >= len(h.journey) {
		h.cursor = max(len(h.journey)-1, 0)
	}
}

func (h *HomeScreen) moveCursor(delta int) {
	next := h.cursor + delta
	if next >= 0 && next < len(h.journey) {
		h.cursor = next
	}
}

// open goes straight to the lesson when its prerequisites are met and
// through the prerequisite warning otherwise.
func (h *HomeScreen) open() tea.Cmd {
	if len(h.journey) == 0 {
		return nil
	}
	m := h.journey[h.cursor].Module
	newLesson := func() screen.Screen { return lesson.New(h.ctx, h.tracker, m, h.logger) }

	var next screen.Screen
	if h.tracker.HasCompletedPrerequisites(h.ctx, m.ID) {
		next = newLesson()
	} else {
		next = warning.New(m, h.tracker.MissingPrerequisites(h.ctx, m.ID), newLesson)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) toggleTheme() tea.Cmd {
	dark := !theme.IsDark()
	if err := h.prefs.SetDarkMode(h.ctx, dark); err != nil {
		h.logger.Warn("save theme preference", zap.Error(err))
	}
	theme.Use(dark)
	return screen.LearnerChanged
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+6)
	cw := min(max(width-6, 20), 72)

	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(titleCompact)))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(h.summary.Percentage))))
	}

	stats := fmt.Sprintf("%d of %d modules completed", h.summary.Completed, h.summary.Total)
	sections = append(sections,
		components.NewProgressBar("Progress", h.summary.Percentage, true, cw).View()+"\n"+
			theme.Hint.Render(stats))

	used := lipgloss.Height(strings.Join(sections, "\n\n")) + 2
	sections = append(sections, h.renderList(cw, max(height-used-1, 3)))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// renderList renders the visible window of module rows.
func (h *HomeScreen) renderList(width, rows int) string {
	if h.cursor < h.scrollOffset {
		h.scrollOffset = h.cursor
	}
	if h.cursor >= h.scrollOffset+rows {
		h.scrollOffset = h.cursor - rows + 1
	}

	var lines []string
	for i := h.scrollOffset; i < len(h.journey) && i < h.scrollOffset+rows; i++ {
		lines = append(lines, renderRow(h.journey[i], i == h.cursor, width))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders a single module row.
func renderRow(st progress.ModuleStatus, selected bool, width int) string {
	labelWidth := 10
	nameWidth := max(width-labelWidth-12, 10)

	text := st.Module.Icon + " " + st.Module.Title
	if lipgloss.Width(text) > nameWidth {
		r := []rune(text)
		if len(r) > nameWidth-1 {
			r = r[:nameWidth-1]
		}
		text = string(r) + "…"
	}

	var nameStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = theme.Selected
		labelStyle = theme.Selected
	case st.State == curriculum.StateCompleted:
		nameStyle = theme.Completed
		labelStyle = theme.Completed
	case st.State == curriculum.StateUnlocked:
		nameStyle = theme.Unselected
		labelStyle = theme.Unlocked
	default:
		nameStyle = theme.Locked
		labelStyle = theme.Locked
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	pad := max(nameWidth-lipgloss.Width(text), 0)
	return fmt.Sprintf("%s%s %s%s  %s",
		cursor,
		st.State.Icon(),
		nameStyle.Render(text),
		strings.Repeat(" ", pad),
		labelStyle.Render(fmt.Sprintf("%*s", labelWidth, st.State.Label())),
	)
}

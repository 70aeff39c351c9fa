package name

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/prefs"
	"github.com/learninglab/bitlab/internal/router"
	"github.com/learninglab/bitlab/internal/screen"
	"github.com/learninglab/bitlab/internal/ui/components"
	"github.com/learninglab/bitlab/internal/ui/layout"
	"github.com/learninglab/bitlab/internal/ui/theme"
)

const maxNameLength = 24

// NameScreen asks for the learner's display name.
type NameScreen struct {
	ctx    context.Context
	prefs  *prefs.Service
	logger *zap.Logger
	input  components.TextInput
}

var _ screen.Screen = (*NameScreen)(nil)
var _ screen.KeyHintProvider = (*NameScreen)(nil)

// New creates a NameScreen prefilled with the saved name.
func New(ctx context.Context, p *prefs.Service, logger *zap.Logger) *NameScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := components.NewTextInput("Type your name", maxNameLength)
	input.SetValue(p.LearnerName(ctx))
	return &NameScreen{ctx: ctx, prefs: p, logger: logger, input: input}
}

func (n *NameScreen) Init() tea.Cmd { return n.input.Init() }
func (n *NameScreen) Title() string { return "My Name" }

func (n *NameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return n, n.save()
	}
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

func (n *NameScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// SetValue replaces the typed name.
func (n *NameScreen) SetValue(s string) {
	n.input.SetValue(s)
}

func (n *NameScreen) save() tea.Cmd {
	err := n.prefs.SetLearnerName(n.ctx, n.input.Value())
	switch {
	case errors.Is(err, prefs.ErrEmptyName):
		n.input.SetError("Please type a name first.")
		return nil
	case err != nil:
		n.logger.Error("save learner name", zap.Error(err))
		n.input.SetError("Could not save your name. Please try again.")
		return nil
	}
	return tea.Sequence(screen.LearnerChanged, func() tea.Msg { return router.PopScreenMsg{} })
}

func (n *NameScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("What should we call you?"))
	b.WriteString("\n\n")
	b.WriteString(n.input.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Your name stays on this computer."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

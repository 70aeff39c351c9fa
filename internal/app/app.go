package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/prefs"
	"github.com/learninglab/bitlab/internal/progress"
	"github.com/learninglab/bitlab/internal/router"
	"github.com/learninglab/bitlab/internal/screen"
	"github.com/learninglab/bitlab/internal/screens/home"
	"github.com/learninglab/bitlab/internal/screens/welcome"
	"github.com/learninglab/bitlab/internal/ui/layout"
	"github.com/learninglab/bitlab/internal/ui/theme"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Tracker *progress.Tracker
	Prefs   *prefs.Service
	Logger  *zap.Logger
	// SkipWelcome starts on the journey screen instead of the splash.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	router  *router.Router
	tracker *progress.Tracker
	prefs   *prefs.Service
	header  layout.HeaderInfo
	width   int
	height  int
}

// newAppModel creates a new AppModel starting on the welcome screen.
// ctx is the program's context; screens use it for every store call.
func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	theme.Use(opts.Prefs.DarkMode(ctx))

	homeFactory := func() screen.Screen {
		return home.New(ctx, opts.Tracker, opts.Prefs, logger)
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory, opts.Prefs.LearnerName(ctx))
	}

	m := AppModel{
		ctx:     ctx,
		router:  router.New(first),
		tracker: opts.Tracker,
		prefs:   opts.Prefs,
	}
	m.refreshHeader()
	return m
}

func (m *AppModel) refreshHeader() {
	m.header = layout.HeaderInfo{
		LearnerName: m.prefs.LearnerName(m.ctx),
		Percent:     m.tracker.ProgressPercentage(m.ctx),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.LearnerChangedMsg:
		m.refreshHeader()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.header, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

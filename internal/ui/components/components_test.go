package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pressedMsg string

func press(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pressedMsg(label) }
	}
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Done", Disabled: true},
		{Label: "Open", Action: press("open")},
		{Label: "Back", Action: press("back")},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up should not land on disabled item, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if got := cmd(); got != pressedMsg("back") {
		t.Errorf("expected back action, got %v", got)
	}
}

func TestButtonRowFocusAndPress(t *testing.T) {
	r := NewButtonRow(
		NewButton("Go Back", false, press("back")),
		NewButton("Continue Anyway", false, press("continue")),
	)
	if r.Focused != 0 || !r.Buttons[0].Active || r.Buttons[1].Active {
		t.Fatal("expected first button focused")
	}

	r, _ = r.Update(key(tea.KeyRight))
	if r.Focused != 1 || !r.Buttons[1].Active || r.Buttons[0].Active {
		t.Fatal("expected second button focused after right")
	}

	// Focus wraps around.
	r, _ = r.Update(key(tea.KeyRight))
	if r.Focused != 0 {
		t.Errorf("expected focus to wrap to 0, got %d", r.Focused)
	}

	r, _ = r.Update(key(tea.KeyLeft))
	_, cmd := r.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if got := cmd(); got != pressedMsg("continue") {
		t.Errorf("expected continue action, got %v", got)
	}

	view := r.View()
	if !strings.Contains(view, "Go Back") || !strings.Contains(view, "Continue Anyway") {
		t.Errorf("row view missing labels:\n%s", view)
	}
}

func TestInactiveButtonIgnoresEnter(t *testing.T) {
	b := NewButton("Save", false, press("save"))
	if _, cmd := b.Update(key(tea.KeyEnter)); cmd != nil {
		t.Error("inactive button should not fire")
	}
}

func TestProgressBar(t *testing.T) {
	view := NewProgressBar("Journey", 45, true, 40).View()
	if !strings.Contains(view, "Journey") || !strings.Contains(view, "45%") {
		t.Errorf("progress bar missing label or percent:\n%s", view)
	}

	// Out-of-range values are clamped rather than overflowing the bar.
	_ = NewProgressBar("", 150, false, 10).View()
	_ = NewProgressBar("", -5, false, 10).View()
}

func TestTextInputTrimsAndShowsError(t *testing.T) {
	ti := NewTextInput("Your name", 20)
	ti.SetValue("  Ada ")
	if got := ti.Value(); got != "Ada" {
		t.Errorf("Value() = %q, want %q", got, "Ada")
	}

	ti.SetError("name is empty")
	if !strings.Contains(ti.View(), "name is empty") {
		t.Error("expected error in view")
	}

	ti, _ = ti.Update(key(tea.KeyBackspace))
	if strings.Contains(ti.View(), "name is empty") {
		t.Error("expected error cleared after editing")
	}
}

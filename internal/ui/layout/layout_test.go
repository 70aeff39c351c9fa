package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		width, height int
		want          bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.width, tt.height); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	got := RenderHeader("Journey", HeaderInfo{LearnerName: "Ada", Percent: 45}, 80)

	for _, want := range []string{AppName, "Journey", "Ada", "45%"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}
}

func TestRenderHeaderWithoutName(t *testing.T) {
	got := RenderHeader("Journey", HeaderInfo{Percent: 0}, 80)

	if strings.Contains(got, "☺") {
		t.Errorf("header should omit learner badge without a name:\n%s", got)
	}
	if !strings.Contains(got, "0%") {
		t.Errorf("header missing percentage:\n%s", got)
	}
}

func TestRenderFooter(t *testing.T) {
	got := RenderFooter([]KeyHint{{Key: "Enter", Description: "Open"}, {Key: "Esc", Description: "Back"}}, 60)

	for _, want := range []string{"Enter", "Open", "Esc", "Back"} {
		if !strings.Contains(got, want) {
			t.Errorf("footer missing %q:\n%s", want, got)
		}
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("T", HeaderInfo{}, 60)
	footer := RenderFooter(nil, 60)

	got := RenderFrame(header, "body", footer, 60, 24)

	if h := lipgloss.Height(got); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
}

package home

import (
	"charm.land/lipgloss/v2"

	"github.com/learninglab/bitlab/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCheering                         // Teal, grinning: some modules done
	MascotCelebrating                      // Gold, star eyes: journey finished
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 0 1 │
└─────┘`

const mascotCheering = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ 1 0 │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ 1 1 │
└─╥═╥─┘
  ╚═╝`

// mascotFor picks the mascot for a progress percentage.
func mascotFor(percent int) MascotVariant {
	switch {
	case percent >= 100:
		return MascotCelebrating
	case percent > 0:
		return MascotCheering
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCheering:
		art = mascotCheering
		fg = theme.Secondary
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/learninglab/bitlab/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗████████╗██╗      █████╗ ██████╗
 ██╔══██╗██║╚══██╔══╝██║     ██╔══██╗██╔══██╗
 ██████╔╝██║   ██║   ██║     ███████║██████╔╝
 ██╔══██╗██║   ██║   ██║     ██╔══██║██╔══██╗
 ██████╔╝██║   ██║   ███████╗██║  ██║██████╔╝
 ╚═════╝ ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "B I T L A B"

// RenderBanner returns the BITLAB banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

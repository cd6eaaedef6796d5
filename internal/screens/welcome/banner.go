package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗  ██████╗ ██╗   ██╗ ██████╗
 ██╔══██╗██╔══██╗██╔═══██╗╚██╗ ██╔╝██╔═══██╗
 ██████╔╝██████╔╝██║   ██║ ╚████╔╝ ██║   ██║
 ██╔═══╝ ██╔══██╗██║   ██║  ╚██╔╝  ██║   ██║
 ██║     ██║  ██║╚██████╔╝   ██║   ╚██████╔╝
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝`

const bannerCompact = "P R O Y O"

// RenderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

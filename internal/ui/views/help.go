package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tm/internal/ui/styles"
)

// helpEntry is one line of a help bar or help popup
type helpEntry struct {
	key  string
	desc string
}

// renderHelpBar renders entries on one line, or a "? help" hint at narrow widths
func renderHelpBar(s *styles.Styles, width int, entries []helpEntry) string {
	contentWidth := styles.ContentWidth(width)
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s %s", s.HelpKey.Render(e.key), e.desc)
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func renderHelpPopup(s *styles.Styles, width, height int, entries []helpEntry) string {
	contentWidth := styles.ContentWidth(width)

	lines := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, e := range entries {
		lines = append(lines, s.HelpKey.Render(fmt.Sprintf("%-7s", e.key))+e.desc)
	}
	lines = append(lines, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
	return styles.CenterView(centered, width, height)
}

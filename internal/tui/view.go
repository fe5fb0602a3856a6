package tui

import (
	"strings"

	"github.com/pgpick/pgpick/internal/result"
)

// detailChromeHeight is the title line plus the help line around the viewport.
const detailChromeHeight = 2

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case screenDetail:
		return titleStyle.Render("row detail") + "\n" +
			m.viewport.View() + "\n" +
			helpStyle.Render("↑/↓ scroll · esc back · ctrl+c quit")
	default:
		return m.list.View() + "\n" +
			helpStyle.Render("/ filter · enter detail · q quit")
	}
}

// renderDetailLines styles the detail document: field names are emphasized,
// values and expanded JSON kept verbatim. Long lines are not wrapped.
func renderDetailLines(e result.Entry) []string {
	lines := result.RenderDetail(e)
	styled := make([]string, len(lines))
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "  "):
			// indented JSON continuation
			styled[i] = l
		case strings.Contains(l, ": "):
			name, value, _ := strings.Cut(l, ": ")
			styled[i] = fieldNameStyle.Render(name) + ": " + value
		default:
			styled[i] = fieldNameStyle.Render(l)
		}
	}
	return styled
}

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle    = lipgloss.NewStyle().Faint(true)
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	if m.loadErr != nil {
		return fmt.Sprintf("Could not load catalog: %v\n\nPress r to retry, q to quit.\n", m.loadErr)
	}
	if !m.loaded {
		return "Loading catalog..."
	}

	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys)
	}

	header := headerStyle.Render("Fleet Browser")
	if m.filtered {
		header += "  " + infoStyle.Render(fmt.Sprintf("[%d fleets, %d vessels match]",
			m.matches.MatchedFleets, m.matches.MatchedVessels))
	}

	var filterLine string
	if m.filterInput.Focused() || m.filterInput.Value() != "" {
		filterLine = m.filterInput.View()
	} else {
		filterLine = faintStyle.Render("Press / to filter")
	}

	statusLine := " "
	if m.statusMessage != "" {
		statusLine = statusErrStyle.Render(m.statusMessage)
	}

	footer := m.help.View(m.keys)

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		filterLine,
		"",
		m.renderTree(),
		statusLine,
		footer,
	)

	return "\n" + fullView
}

func (m Model) renderTree() string {
	if len(m.nodes) == 0 {
		return faintStyle.Render("No matching fleets or vessels.")
	}

	var b strings.Builder

	viewportHeight := m.viewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := start; i < end; i++ {
		node := m.nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▶ ")
		}

		var line string
		switch {
		case node.isFleet:
			fold := "▶ "
			if node.fleet.Open {
				fold = "▼ "
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, node.prefix, fold, node.fleet.Name)
			if i == m.cursor {
				line = selectedStyle.Render(line)
			}
		case node.isVessel:
			fold := "▶ "
			if node.vessel.Open {
				fold = "▼ "
			}
			label := node.vessel.Name
			if class := node.vessel.Meta["class"]; class != "" {
				label += faintStyle.Render(" (" + class + ")")
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, node.prefix, fold, label)
			if i == m.cursor {
				line = selectedStyle.Render(line)
			}
		case node.isDetail:
			line = fmt.Sprintf("%s%s%s  %s", cursor, node.prefix,
				node.row.Date, detailStyle.Render(node.row.Score))
		case node.isStatus:
			line = fmt.Sprintf("%s%s%s", cursor, node.prefix, faintStyle.Render(node.status))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(m.nodes) > viewportHeight {
		b.WriteString(faintStyle.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.nodes))))
	}

	return b.String()
}

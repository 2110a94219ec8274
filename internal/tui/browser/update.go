package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veslund/fleetdex/pkg/catalog"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		m.loadErr = msg.err
		m.loaded = msg.err == nil
		if m.loaded {
			if m.service.Skipped() > 0 {
				m.statusMessage = fmt.Sprintf("Skipped %d malformed catalog record(s)", m.service.Skipped())
			}
			// A reload rebuilds the model; re-apply whatever filter is showing.
			m.matches = m.service.Search(m.filterInput.Value())
			m.filtered = m.service.Tree() != nil && m.filterInput.Value() != ""
		}
		m.buildDisplayTree()
		m.clampCursor()
		return m, nil

	case inspectionsLoadedMsg:
		if msg.res.Err != nil {
			m.statusMessage = fmt.Sprintf("Failed to load inspections for %s", msg.vesselID)
		}
		// The cache is already settled; the rebuilt tree picks the rows up.
		m.buildDisplayTree()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.ShowAll = false
			return m, nil
		}

		// Handle filtering mode
		if m.filterInput.Focused() {
			switch {
			case key.Matches(msg, m.keys.Clear):
				m.filterInput.Blur()
				return m, nil
			case msg.String() == "enter":
				m.filterInput.Blur()
				return m, nil
			default:
				m.filterInput, cmd = m.filterInput.Update(msg)
				m.applyFilter()
				return m, cmd
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, m.keys.PageUp):
			m.cursor -= m.viewportHeight() / 2
			m.clampCursor()
			m.adjustScroll()

		case key.Matches(msg, m.keys.PageDown):
			m.cursor += m.viewportHeight() / 2
			m.clampCursor()
			m.adjustScroll()

		case key.Matches(msg, m.keys.Search):
			m.filterInput.Focus()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.filterInput.Value() != "" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.loaded = false
			m.statusMessage = ""
			return m, loadCatalogCmd(m.service)

		case key.Matches(msg, m.keys.Toggle):
			return m.toggleAtCursor()
		}
	}

	return m, nil
}

// toggleAtCursor expands or collapses the node under the cursor.
func (m Model) toggleAtCursor() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.nodes) {
		return m, nil
	}
	node := m.nodes[m.cursor]
	if !node.isFoldable() {
		return m, nil
	}

	var cmd tea.Cmd
	if node.isFleet {
		if err := m.service.ToggleFleet(node.fleet.ID); err != nil {
			m.statusMessage = err.Error()
		}
	} else {
		pending, err := m.service.ToggleVessel(node.vessel.ID)
		if err != nil {
			m.statusMessage = err.Error()
		} else if pending != nil {
			cmd = awaitInspectionsCmd(node.vessel.ID, pending)
		}
	}

	m.buildDisplayTree()
	m.clampCursor()
	return m, cmd
}

// applyFilter recomputes visibility from the current input value.
func (m *Model) applyFilter() {
	if !m.loaded {
		return
	}
	m.matches = m.service.Search(m.filterInput.Value())
	m.filtered = m.filterInput.Value() != ""
	m.buildDisplayTree()
	m.cursor = 0
	m.scrollOffset = 0
}

// buildDisplayTree constructs the flat list of lines for rendering from the
// tree's visible/open state and the cache's per-vessel lifecycle.
func (m *Model) buildDisplayTree() {
	m.nodes = nil
	if !m.loaded {
		return
	}

	tree := m.service.Tree()
	cache := m.service.Cache()

	for _, fleet := range tree.Fleets() {
		if !fleet.Visible {
			continue
		}
		m.nodes = append(m.nodes, &displayNode{isFleet: true, fleet: fleet})
		if !fleet.Open {
			continue
		}

		for _, vessel := range fleet.Vessels {
			if !vessel.Visible {
				continue
			}
			m.nodes = append(m.nodes, &displayNode{
				isVessel: true,
				vessel:   vessel,
				prefix:   "  ",
				depth:    1,
			})
			if !vessel.Open {
				continue
			}

			switch cache.State(vessel.ID) {
			case catalog.StateLoading:
				m.nodes = append(m.nodes, &displayNode{
					isStatus: true, status: "loading inspections...", prefix: "    ", depth: 2,
				})
			case catalog.StateFailed:
				m.nodes = append(m.nodes, &displayNode{
					isStatus: true, status: "could not load inspections (retry by reopening)", prefix: "    ", depth: 2,
				})
			case catalog.StateLoaded:
				rows := cache.Rows(vessel.ID)
				if len(rows) == 0 {
					m.nodes = append(m.nodes, &displayNode{
						isStatus: true, status: "no inspections on record", prefix: "    ", depth: 2,
					})
					continue
				}
				for _, row := range rows {
					m.nodes = append(m.nodes, &displayNode{
						isDetail: true, row: row, prefix: "    ", depth: 2,
					})
				}
			}
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor > len(m.nodes)-1 {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

// adjustScroll keeps the cursor inside the viewport.
func (m *Model) adjustScroll() {
	h := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// viewportHeight is the list area: total height minus header, filter line,
// status line and footer.
func (m Model) viewportHeight() int {
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

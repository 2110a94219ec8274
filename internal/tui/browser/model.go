package browser

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veslund/fleetdex/pkg/catalog"
	"github.com/veslund/fleetdex/pkg/models"
	"github.com/veslund/fleetdex/pkg/service"
)

// displayNode represents a single line in the hierarchical TUI view.
type displayNode struct {
	isFleet  bool
	isVessel bool
	isDetail bool
	isStatus bool // loading/failed/empty line under an open vessel

	fleet  *models.Fleet
	vessel *models.Vessel
	row    models.Inspection
	status string

	prefix string
	depth  int
}

// isFoldable returns true if this node can be collapsed/expanded.
func (n *displayNode) isFoldable() bool {
	return n.isFleet || n.isVessel
}

// Model is the main model for the fleet browser TUI.
type Model struct {
	service      *service.Service
	nodes        []*displayNode
	cursor       int
	scrollOffset int
	keys         KeyMap
	help         help.Model
	width        int
	height       int

	filterInput textinput.Model
	matches     catalog.FilterResult
	filtered    bool // a non-empty filter is in effect

	loaded        bool
	loadErr       error
	statusMessage string
}

// New creates a new TUI model.
func New(svc *service.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter fleets and vessels..."
	ti.CharLimit = 100

	return Model{
		service:     svc,
		keys:        keys,
		help:        help.New(),
		filterInput: ti,
	}
}

// Init kicks off the initial catalog load.
func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.service)
}

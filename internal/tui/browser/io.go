package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veslund/fleetdex/pkg/catalog"
	"github.com/veslund/fleetdex/pkg/service"
)

type catalogLoadedMsg struct {
	err error
}

type inspectionsLoadedMsg struct {
	vesselID string
	res      catalog.Result
}

func loadCatalogCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: svc.Load(context.Background())}
	}
}

// awaitInspectionsCmd waits on the shared future for one vessel. Several
// commands may wait on the same future; they all deliver the same result.
func awaitInspectionsCmd(vesselID string, pending *catalog.Pending) tea.Cmd {
	return func() tea.Msg {
		return inspectionsLoadedMsg{
			vesselID: vesselID,
			res:      pending.Wait(context.Background()),
		}
	}
}

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/internal/tui/browser"
	"github.com/veslund/fleetdex/pkg/service"
)

// NewBrowseCmd creates the `fleetdex browse` command.
func NewBrowseCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Launch an interactive TUI for browsing the catalog",
		Long: `Launch an interactive Terminal User Interface for browsing fleets and
their vessels. Expanding a vessel loads its inspection history on demand;
press / to filter by name.`,
		Aliases: []string{"tui"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("browse mode requires an interactive terminal")
			}

			model := browser.New(*svc)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/pkg/service"
)

// NewSearchCmd creates the `fleetdex search` command.
func NewSearchCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search fleets and vessels by name",
		Long: `Search the catalog with a case-insensitive substring query and print the
matched branches. A fleet whose own name matches reveals all of its vessels.

Examples:
  fleetdex search skarven       # Find a vessel by name
  fleetdex search "northern"    # A fleet-name match lists the whole fleet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			res := s.Search(query)

			if res.MatchedFleets == 0 {
				fmt.Printf("No matches for %q\n", query)
				return nil
			}

			fmt.Printf("%d fleet(s), %d vessel(s) match %q:\n\n", res.MatchedFleets, res.MatchedVessels, query)
			for _, fleet := range s.Tree().Fleets() {
				if !fleet.Visible {
					continue
				}
				fmt.Printf("%s\n", fleet.Name)
				for _, vessel := range fleet.Vessels {
					if !vessel.Visible {
						continue
					}
					fmt.Printf("  %s  (%s)\n", vessel.Name, vessel.ID)
				}
			}
			return nil
		},
	}
	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/pkg/models"
	"github.com/veslund/fleetdex/pkg/service"
)

// NewListCmd creates the `fleetdex list` command.
func NewListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List fleets and vessels in the catalog",
		Aliases: []string{"ls"},
		Long: `List every fleet and its vessels.

Examples:
  fleetdex list           # Print the catalog as a tree
  fleetdex list --json    # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			fleets := s.Tree().Fleets()
			if listJSON {
				return outputJSON(fleets)
			}

			if len(fleets) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, fleet := range fleets {
				fmt.Fprintf(w, "%s\t%s\t%d vessel(s)\n", fleet.ID, fleet.Name, len(fleet.Vessels))
				for _, vessel := range fleet.Vessels {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", vessel.ID, vessel.Name, formatMeta(vessel.Meta))
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if s.Skipped() > 0 {
				fmt.Fprintf(os.Stderr, "skipped %d malformed catalog record(s)\n", s.Skipped())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	return cmd
}

func outputJSON(fleets []*models.Fleet) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fleets)
}

func formatMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+meta[k])
	}
	return strings.Join(parts, " ")
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/pkg/service"
)

// NewDetailsCmd creates the `fleetdex details` command.
func NewDetailsCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <vessel-id>",
		Short: "Show a vessel's inspection history",
		Long: `Fetch and print the inspection history for one vessel.

Examples:
  fleetdex details nf-skarven`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			vesselID := args[0]
			vessel, ok := s.Tree().Vessel(vesselID)
			if !ok {
				return fmt.Errorf("vessel %q not found in catalog", vesselID)
			}

			rows, err := s.Inspections(cmd.Context(), vesselID)
			if err != nil {
				return fmt.Errorf("fetch inspections for %s: %w", vesselID, err)
			}

			fmt.Printf("%s (%s)\n\n", vessel.Name, vessel.ID)
			if len(rows) == 0 {
				fmt.Println("No inspections on record.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSCORE")
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%s\n", row.Date, row.Score)
			}
			return w.Flush()
		},
	}
	return cmd
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veslund/fleetdex/cmd/config"
)

// NewDoctorCmd creates the `fleetdex doctor` command. It builds its own
// service so it can report setup problems instead of dying on them.
func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check catalog configuration and data source health",
		Long: `The doctor command checks for common configuration issues:
- Missing or unreadable config file
- Unreachable catalog source
- Malformed catalog records`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Running fleetdex doctor...")
			fmt.Println()

			issues := 0

			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Printf("ok  config file: %s\n", used)
			} else {
				fmt.Println("--  no config file found, using defaults")
			}

			typ, path := config.ResolveSource()
			fmt.Printf("ok  source: %s (%s)\n", path, typ)

			if typ == "yaml" {
				if _, err := os.Stat(path); err != nil {
					fmt.Printf("!!  catalog file not readable: %v\n", err)
					issues++
				}
			}

			svc, err := config.InitService()
			if err != nil {
				fmt.Printf("!!  cannot open source: %v\n", err)
				issues++
			} else if err := svc.Load(cmd.Context()); err != nil {
				fmt.Printf("!!  cannot fetch catalog: %v\n", err)
				issues++
			} else {
				fmt.Printf("ok  catalog: %d fleet(s), %d vessel(s)\n",
					svc.Tree().NumFleets(), svc.Tree().NumVessels())
				if skipped := svc.Skipped(); skipped > 0 {
					fmt.Printf("!!  %d malformed record(s) skipped during build\n", skipped)
					issues++
				}
			}

			fmt.Println()
			if issues == 0 {
				fmt.Println("No issues found.")
				return nil
			}
			return fmt.Errorf("%d issue(s) found", issues)
		},
	}
	return cmd
}

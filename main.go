package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/cmd"
	"github.com/veslund/fleetdex/cmd/config"
	"github.com/veslund/fleetdex/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:          "fleetdex",
		Short:        "A searchable catalog of fleets and their vessels",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	// init, version and doctor manage their own setup; everything else gets
	// the shared service.
	selfContained := map[string]bool{
		"init": true, "version": true, "doctor": true,
		"help": true, "completion": true,
	}
	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if selfContained[c.Name()] {
			return nil
		}
		s, err := config.InitService()
		if err != nil {
			return err
		}
		svc = s
		return nil
	}

	rootCmd.AddCommand(cmd.NewBrowseCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewSearchCmd(&svc))
	rootCmd.AddCommand(cmd.NewDetailsCmd(&svc))
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewDoctorCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

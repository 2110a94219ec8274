package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veslund/fleetdex/cmd/config"
	"github.com/veslund/fleetdex/pkg/source"
)

const defaultConfigYAML = `# fleetdex configuration
source:
  type: sqlite
  path: %s
log_level: warn
`

// NewInitCmd creates the `fleetdex init` command.
func NewInitCmd() *cobra.Command {
	var (
		initDemo  bool
		initForce bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config, optionally seeding a demo catalog",
		Long: `Create ~/.config/fleetdex/config.yaml with defaults.

Examples:
  fleetdex init           # Write the default config
  fleetdex init --demo    # Also seed a demo sqlite catalog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}

			configDir := filepath.Join(home, ".config", "fleetdex")
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}

			configPath := filepath.Join(configDir, "config.yaml")
			if _, err := os.Stat(configPath); err == nil && !initForce {
				fmt.Printf("Config already exists at %s (use --force to overwrite)\n", configPath)
			} else {
				content := fmt.Sprintf(defaultConfigYAML, config.DefaultDataPath())
				if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("write config: %w", err)
				}
				fmt.Printf("Wrote %s\n", configPath)
			}

			if !initDemo {
				return nil
			}

			dataPath := config.DefaultDataPath()
			if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			src, err := source.NewSQLite(dataPath)
			if err != nil {
				return err
			}
			defer src.Close()

			records, inspections := source.DemoCatalog()
			if err := src.Seed(cmd.Context(), records, inspections); err != nil {
				return fmt.Errorf("seed demo catalog: %w", err)
			}
			fmt.Printf("Seeded demo catalog at %s\n", dataPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initDemo, "demo", false, "Seed a demo sqlite catalog")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	return cmd
}

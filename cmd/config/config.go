// Package config bootstraps viper configuration and builds the service the
// subcommands share.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veslund/fleetdex/pkg/service"
	"github.com/veslund/fleetdex/pkg/source"
)

var (
	cfgFile        string
	SourceOverride string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "fleetdex")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FLEETDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	viper.SetDefault("source.type", "sqlite")
	viper.SetDefault("source.path", DefaultDataPath())
	viper.SetDefault("log_level", "warn")

	// Missing config file is fine, defaults carry the day.
	_ = viper.ReadInConfig()
}

// DefaultDataPath is where `fleetdex init --demo` seeds the catalog.
func DefaultDataPath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "fleetdex", "catalog.db")
}

// NewLogger builds the logger every component shares, quiet unless the
// config raises the level.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// ResolveSource returns the configured source type and path, honouring the
// --source override (type inferred from the file extension).
func ResolveSource() (string, string) {
	typ := viper.GetString("source.type")
	path := viper.GetString("source.path")

	if SourceOverride != "" {
		path = SourceOverride
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			typ = "yaml"
		default:
			typ = "sqlite"
		}
	}
	return typ, path
}

// InitService opens the configured source and wraps it in a service.
func InitService() (*service.Service, error) {
	logger := NewLogger()
	typ, path := ResolveSource()

	var (
		src source.Source
		err error
	)
	switch typ {
	case "sqlite":
		src, err = source.NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
	case "yaml":
		src = source.NewYAMLFile(path)
	default:
		return nil, fmt.Errorf("unknown source type %q (want sqlite or yaml)", typ)
	}

	svc, err := service.New(&service.Config{SourceType: typ, SourcePath: path}, src, logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fleetdex/config.yaml)")
	cmd.PersistentFlags().StringVarP(&SourceOverride, "source", "S", "", "Override the catalog source by path (.yaml/.yml for YAML, anything else sqlite)")
}

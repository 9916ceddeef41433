package commands

import (
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/ferien-checker/internal/config"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// flagConfigPath overrides the configuration file lookup.
var flagConfigPath string

// Execute builds the command tree and executes commands.
func Execute() error {
	defer logging.Sync()

	// c is the root command.
	c := &cobra.Command{
		Use:   "ferien-checker",
		Short: "Compare German school holidays and public holidays with Denmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	c.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "",
		"path to the YAML configuration file (default $FERIEN_CONFIG or ./"+config.DefaultConfigFile+")")
	c.AddCommand(ServeCmd)
	c.AddCommand(CompareCmd)
	c.AddCommand(ExamplesCmd)
	c.AddCommand(RegionsCmd)
	c.AddCommand(HashPasswordCmd)
	c.AddCommand(ImportSQLiteCmd)

	return c.Execute()
}

// loadConfig reads the configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

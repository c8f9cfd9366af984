package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ericosh007/generativeperception/internal/config"
	"github.com/ericosh007/generativeperception/internal/logger"
)

var (
	cfg *config.Config

	configPath  string
	debugFlag   bool
	verboseFlag bool
	presetFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gplctl",
		Short: "Telemetry-adaptive HDR frame enhancement",
		Long: "gplctl enhances SDR video frames toward an HDR-like appearance, " +
			"continuously retuning enhancement parameters from ambient light, " +
			"color temperature and motion telemetry.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if debugFlag {
				cfg.Debug = true
			}
			if verboseFlag {
				cfg.Verbose = true
			}
			if presetFlag != "" {
				cfg.Preset = presetFlag
			}

			logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
			logger.Debug().Str("preset", cfg.Preset).Msg("Config loaded")

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debugging mode")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&presetFlag, "preset", "", "Enhancement preset (performance, balanced, quality)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

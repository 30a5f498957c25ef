package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Stepwise animates sorting, searching and pathfinding algorithms step by step",
	Long: `Stepwise runs algorithms as sequences of observable steps that can be
played, paused, resumed and stopped, alone or side by side.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log lifecycle events to stderr")
	rootCmd.PersistentFlags().String("store", "", "Result store: memory, redis or sqlite")
	rootCmd.PersistentFlags().String("scenarios", "", "Directory holding scenario documents")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads --config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Backend, _ = flags.GetString("store")
	}
	if flags.Changed("scenarios") {
		cfg.Scenarios, _ = flags.GetString("scenarios")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fable",
	Short: "Fable is an engine for branching interactive stories",
	Long: `Fable validates, plays and visualizes interactive stories written as YAML
documents of passages, choices, conditions, variables and includes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// mustLoadConfig reads FABLE_* settings or exits.
func mustLoadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

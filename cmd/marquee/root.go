package main

import (
	"fmt"
	"os"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Marquee is a cyclic layout presentation engine",
	Long: `Marquee cycles a set of items through layout modes with animated transitions,
narrative reveals, particle effects and a once-per-cycle finale.`,
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
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML or TOML config file (defaults are embedded)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: auto, text, pretty")
}

func baseOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return cli.Options{ConfigPath: path, LogLevel: level, LogFormat: format}
}

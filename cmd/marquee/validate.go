package main

import (
	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for consistency",
	Long:  `Loads the config over the embedded defaults and reports unknown layouts, items without narratives and invalid timings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(baseOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

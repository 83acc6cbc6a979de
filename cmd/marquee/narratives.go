package main

import (
	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var narrativesCmd = &cobra.Command{
	Use:   "narratives",
	Short: "Show the narrative table",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.RunNarratives(baseOptions(cmd), plain)
	},
}

func init() {
	rootCmd.AddCommand(narrativesCmd)
	narrativesCmd.Flags().Bool("plain", false, "Print raw markdown")
}

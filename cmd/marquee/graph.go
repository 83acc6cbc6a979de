package main

import (
	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the layout cycle as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunGraph(baseOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

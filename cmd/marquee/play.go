package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/aretw0/marquee/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the presentation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			opts.Err = f
		}
		if quiet, _ := cmd.Flags().GetBool("no-banner"); !quiet {
			tui.PrintBanner(os.Stdout)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.RunPlay(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("log-file", "", "Write logs to this file while the TUI runs")
	playCmd.Flags().Bool("no-banner", false, "Skip the startup banner")

	// 'play' is the default if no command is provided.
	rootCmd.RunE = playCmd.RunE
}

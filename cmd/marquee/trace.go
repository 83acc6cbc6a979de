package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run the cycle headlessly on a virtual clock",
	Long: `Runs N transitions on a virtual clock with the discrete-event animator and
prints one line per mode change, finale and dropped request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("transitions")
		seed, _ := cmd.Flags().GetUint64("seed")
		metrics, _ := cmd.Flags().GetBool("metrics")
		verbose, _ := cmd.Flags().GetBool("verbose")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return cli.RunTrace(ctx, cli.TraceOptions{
			Options:     baseOptions(cmd),
			Transitions: n,
			Seed:        seed,
			Metrics:     metrics,
			Verbose:     verbose,
		})
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntP("transitions", "n", 5, "Number of transitions to run")
	traceCmd.Flags().Uint64("seed", 1, "Seed for particle placement")
	traceCmd.Flags().Bool("metrics", false, "Print a metrics summary at the end")
	traceCmd.Flags().BoolP("verbose", "v", false, "Log every lifecycle event")
}

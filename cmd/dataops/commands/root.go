package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dataops",
	Short: "dataops scrapes, cleans and reports on the budget, football and price-index datasets.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initTelemetry(cmd.Context(), verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runPipeline(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging/instrumentation.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

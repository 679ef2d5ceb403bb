package commands

import (
	"context"
	"os"

	"tp4-dataops/lib/serviceutil"
	"tp4-dataops/services/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

func newService() (pipeline.Service, pipeline.Config) {
	cfg, err := pipeline.LoadConfig()
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		serviceutil.Fatal("create output dir", err)
	}
	return pipeline.NewService(cfg, pipeline.Options{}), cfg
}

func runPipeline(ctx context.Context) {
	service, _ := newService()
	if _, err := service.Run(ctx); err != nil {
		serviceutil.Fatal("pipeline run failed", err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the whole pipeline: fetch every source, extract, clean, report.",
	Run: func(cmd *cobra.Command, args []string) {
		runPipeline(cmd.Context())
	},
}

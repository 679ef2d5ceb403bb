package commands

import (
	"path/filepath"

	"tp4-dataops/lib/serviceutil"
	"tp4-dataops/lib/tabular"
	"tp4-dataops/services/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuilds kpi.json and run_report.md from already fetched outputs.",
	Run: func(cmd *cobra.Command, args []string) {
		service, cfg := newService()

		read := func(name string) tabular.Table {
			t, err := tabular.ReadCSVFile(filepath.Join(cfg.OutputDir, name))
			if err != nil {
				serviceutil.Fatal("read dataset, fetch it first", err)
			}
			return t
		}
		footballT := read(pipeline.FootballFile)
		budgetT := read(pipeline.BudgetFile)
		inpcT := read(pipeline.InpcCleanFile)

		if _, err := service.Report(cmd.Context(), footballT, budgetT, inpcT); err != nil {
			serviceutil.Fatal("report failed", err)
		}
	},
}

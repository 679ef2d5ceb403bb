package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"tp4-dataops/lib/pdftext"
	"tp4-dataops/lib/scrapers/inpc"
	"tp4-dataops/lib/serviceutil"

	"github.com/spf13/cobra"
)

var extractPages *string
var extractDump *bool

func init() {
	extractPages = extractCmd.Flags().String("pages", "", "Page range to scan, e.g. '2-3'. Scans the whole bulletin when empty.")
	extractDump = extractCmd.Flags().Bool("dump", false, "Print every extracted grid instead of cleaning.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [--pages <range>] [--dump]",
	Short: "Extracts and cleans the price-index table from the downloaded bulletin.",
	Run: func(cmd *cobra.Command, args []string) {
		service, cfg := newService()
		ctx := cmd.Context()

		pages := pdftext.AllPages()
		if *extractPages != "" {
			var err error
			pages, err = pdftext.ParsePages(*extractPages)
			if err != nil {
				serviceutil.Fatal("bad page range", err)
			}
		}

		pdfPath := filepath.Join(cfg.OutputDir, inpc.Filename)
		if _, err := os.Stat(pdfPath); err != nil {
			pdfPath, err = service.FetchInpcPdf(ctx)
			if err != nil {
				serviceutil.Fatal("download bulletin", err)
			}
		}

		if *extractDump {
			dumpGrids(pdfPath, pages)
			return
		}

		shaped, err := service.ExtractInpc(ctx, pdfPath, pages)
		if err != nil {
			serviceutil.Fatal("extract table", err)
		}
		if _, err := service.CleanInpc(ctx, shaped); err != nil {
			serviceutil.Fatal("clean table", err)
		}
	},
}

func dumpGrids(path string, pages pdftext.PageSet) {
	grids, err := pdftext.ExtractTables(path, pages)
	if err != nil {
		serviceutil.Fatal("extract tables", err)
	}
	for _, grid := range grids {
		fmt.Println(pdftext.GridString(grid))
	}
}

package commands

import (
	"fmt"

	"tp4-dataops/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:       "fetch <football|budget|inpc>",
	Short:     "Fetches a single source and writes its raw output.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"football", "budget", "inpc"},
	Run: func(cmd *cobra.Command, args []string) {
		service, _ := newService()
		ctx := cmd.Context()

		var err error
		switch args[0] {
		case "football":
			_, err = service.FetchFootball(ctx)
		case "budget":
			_, err = service.FetchBudget(ctx)
		case "inpc":
			_, err = service.FetchInpcPdf(ctx)
		default:
			err = fmt.Errorf("unknown source %q", args[0])
		}
		if err != nil {
			serviceutil.Fatal("fetch failed", err)
		}
	},
}

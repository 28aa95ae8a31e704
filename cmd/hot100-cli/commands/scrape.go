package commands

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hot100-backend/lib/serviceutil"
	"hot100-backend/services/hot100"
)

var (
	scrapeOut       *string
	scrapeStartYear *int
	scrapeEndYear   *int
)

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "", "Output directory for JSON/CSV artifacts.")
	scrapeStartYear = scrapeCmd.Flags().Int("start-year", 0, "First year to scrape (default 1958).")
	scrapeEndYear = scrapeCmd.Flags().Int("end-year", 0, "Last year to scrape (default current year).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <dir>] [--start-year <n>] [--end-year <n>]",
	Short: "Scrapes the configured year range and writes all artifacts.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if *scrapeOut != "" {
			cfg.OutDir = *scrapeOut
		}
		if *scrapeStartYear != 0 {
			cfg.StartYear = *scrapeStartYear
		}
		if *scrapeEndYear != 0 {
			cfg.EndYear = *scrapeEndYear
		}

		db := openArchive(cfg)
		if db != nil {
			defer db.Close()
		}

		service, err := hot100.NewService(cfg.serviceConfig(), db)
		if err != nil {
			serviceutil.Fatal("failed to initialize pipeline", err)
		}

		summary, err := service.Run(cmd.Context())
		if err != nil {
			serviceutil.Fatal("run failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Year", "Rows", "Skipped", "Status"})
		for _, y := range summary.Years {
			status := "ok"
			if y.Failed {
				status = "failed"
			}
			t.AppendRow(table.Row{y.Year, y.Rows, y.Skipped, status})
		}
		t.AppendFooter(table.Row{
			"combined", summary.CombinedRows,
			"failed years", strconv.Itoa(summary.FailedYears),
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

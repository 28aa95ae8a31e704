package commands

import (
	"errors"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hot100-backend/lib/serviceutil"
	"hot100-backend/services/hot100"
)

var showYear *int

func init() {
	showYear = showCmd.Flags().Int("year", 0, "The year to print records for.")
	showCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show --year <n>",
	Short: "Prints archived records for a year.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		db := openArchive(cfg)
		if db == nil {
			serviceutil.Fatal("no archive configured", errors.New("set archive_db in config.json5"))
		}
		defer db.Close()

		service, err := hot100.NewService(cfg.serviceConfig(), db)
		if err != nil {
			serviceutil.Fatal("failed to initialize pipeline", err)
		}

		records, err := service.RecordsForYear(cmd.Context(), *showYear)
		if err != nil {
			serviceutil.Fatal("failed to query archive", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Issue date", "Song", "Artist"})
		for _, r := range records {
			t.AppendRow(table.Row{r.IssueDate, r.Song, r.Artist})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

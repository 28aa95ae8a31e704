package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"hot100-backend/lib/serviceutil"
	"hot100-backend/services/hot100"
)

var combineOut *string

func init() {
	combineOut = combineCmd.Flags().String("out", "", "Directory holding the per-year artifacts.")
	rootCmd.AddCommand(combineCmd)
}

var combineCmd = &cobra.Command{
	Use:   "combine [--out <dir>]",
	Short: "Rebuilds all.json and the weekly CSV from per-year files on disk.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if *combineOut != "" {
			cfg.OutDir = *combineOut
		}

		service, err := hot100.NewService(cfg.serviceConfig(), nil)
		if err != nil {
			serviceutil.Fatal("failed to initialize pipeline", err)
		}

		rows, err := service.Combine(cmd.Context())
		if err != nil {
			serviceutil.Fatal("combine failed", err)
		}
		slog.Info("combined artifacts rebuilt", "rows", rows)
	},
}

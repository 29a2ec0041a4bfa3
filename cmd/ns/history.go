package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/ledger"
	"github.com/thomashirtz/notion-scholar/internal/notion"
)

var (
	historyLimit      int
	historyDatabaseID string
	historyAll        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the records created by previous runs",
	Long: `List the records created by previous runs, newest first.

Only uploads to the configured database are listed unless --all is given.
The history is kept locally and is not used to decide what to upload.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records (0 for all)")
	historyCmd.Flags().StringVarP(&historyDatabaseID, "database-id", "d", "", "Database ID or URL")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "List uploads to every database")
	rootCmd.AddCommand(historyCmd)
}

// HistoryResponse is the response for the history command.
type HistoryResponse struct {
	Path    string          `json:"path"`
	Uploads []ledger.Upload `json:"uploads"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	databaseID := ""
	if !historyAll {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		raw := config.ResolveOptional(historyDatabaseID, os.Getenv(config.EnvDatabaseID), cfg.DatabaseID)
		if raw != "" {
			databaseID, err = notion.ParseDatabaseID(raw)
			if err != nil {
				return err
			}
		}
	}

	path := config.DataPath(ledger.FileName)
	db, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	uploads, err := db.Recent(cmd.Context(), databaseID, historyLimit)
	if err != nil {
		return err
	}
	if uploads == nil {
		uploads = []ledger.Upload{}
	}

	if humanOutput {
		if len(uploads) == 0 {
			outputHuman("No uploads recorded.\n")
			return nil
		}
		for _, u := range uploads {
			outputHuman("%s  %-30s  %s\n", u.CreatedAt.Local().Format(time.DateTime), u.Key, u.PageID)
		}
		return nil
	}
	return outputJSON(HistoryResponse{Path: path, Uploads: uploads})
}

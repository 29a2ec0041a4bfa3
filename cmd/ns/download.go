package main

import (
	"github.com/spf13/cobra"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/syncer"
)

var (
	downloadToken      string
	downloadDatabaseID string
	downloadFilePath   string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Write the BibTeX entries of the database to a file",
	Long: `Write the Bibtex property of every database row to a file, one entry per
paragraph. The file is overwritten.

Example:
  ns download -f backup.bib`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadFilePath, "file-path", "f", "", "File the entries are written to")
	downloadCmd.Flags().StringVarP(&downloadToken, "token", "t", "", "Notion integration token")
	downloadCmd.Flags().StringVarP(&downloadDatabaseID, "database-id", "d", "", "Database ID or URL")
	_ = downloadCmd.MarkFlagRequired("file-path")
	rootCmd.AddCommand(downloadCmd)
}

// DownloadResponse is the response for the download command.
type DownloadResponse struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(downloadToken, downloadDatabaseID, cfg)
	if err != nil {
		return err
	}

	path := config.ExpandPath(downloadFilePath)
	n, err := syncer.Download(cmd.Context(), db, path)
	if err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Wrote %d entries to %s\n", n, path)
		return nil
	}
	return outputJSON(DownloadResponse{Path: path, Entries: n})
}

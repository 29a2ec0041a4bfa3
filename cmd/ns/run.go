package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/ledger"
	"github.com/thomashirtz/notion-scholar/internal/syncer"
)

var (
	runToken      string
	runDatabaseID string
	runFilePath   string
	runString     string
	runCategories []string
	runNoSave     bool
	runKeywords   bool
	runNoHistory  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Upload the publications missing from the database",
	Long: `Upload every publication of the bib file or bib string whose key is not
yet in the Filename property of the database.

With --string, the entries are also appended to the bib file (from --file-path
or the config) unless saving is disabled with --no-save or
'ns set-config --save=false'. Entries already in the bib file are not
appended again.

Examples:
  ns run -f ~/papers/refs.bib
  ns run -s "@article{Smith2020, title={...}}"
  ns run -f refs.bib -d https://www.notion.so/myspace/0123456789abcdef0123456789abcdef
  ns run -f refs.bib -c <category-page-id> -c <other-category-page-id>`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runToken, "token", "t", "", "Notion integration token")
	runCmd.Flags().StringVarP(&runDatabaseID, "database-id", "d", "", "Database ID or URL")
	runCmd.Flags().StringVarP(&runFilePath, "file-path", "f", "", "Bib file to upload, or to save --string entries to")
	runCmd.Flags().StringVarP(&runString, "string", "s", "", "BibTeX entries to upload")
	runCmd.Flags().StringArrayVarP(&runCategories, "category", "c", nil, "Category page ID to relate the publications to (repeatable)")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not append --string entries to the bib file")
	runCmd.Flags().BoolVar(&runKeywords, "keywords", false, "Tag publications with their BibTeX keywords")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Do not record uploads in the local history")
	rootCmd.AddCommand(runCmd)
}

// RunResponse is the response for the run command.
type RunResponse struct {
	DatabaseID string `json:"database_id"`
	*syncer.Report
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var bibString *string
	if cmd.Flags().Changed("string") {
		s := runString
		bibString = &s
	}
	bibPath := config.ExpandPath(config.ResolveOptional(runFilePath, cfg.BibFilePath))
	if bibString == nil && bibPath == "" {
		return syncer.ErrIllegalInput
	}

	db, err := openDatabase(runToken, runDatabaseID, cfg)
	if err != nil {
		return err
	}

	opts := []syncer.Option{
		syncer.WithLogger(logger),
		syncer.WithProgress(progressWriter()),
	}
	if !runNoHistory {
		history, err := ledger.Open(config.DataPath(ledger.FileName))
		if err != nil {
			logger.Warn().Err(err).Msg("upload history unavailable")
		} else {
			defer history.Close()
			opts = append(opts, syncer.WithRecorder(history.Recorder(db.ID())))
		}
	}

	s := syncer.New(db, syncer.Config{
		BibString:     bibString,
		BibFilePath:   bibPath,
		SaveToBibFile: cfg.SaveEnabled() && !runNoSave,
		Categories:    runCategories,
		TagKeywords:   runKeywords,
	}, opts...)

	report, err := s.Run(cmd.Context())
	if err != nil {
		if report != nil && len(report.Uploaded) > 0 {
			logger.Warn().Strs("uploaded", report.Uploaded).Msg("stopped after a partial upload, rerun to resume")
		}
		return err
	}

	if humanOutput {
		printRunReport(report)
		return nil
	}
	return outputJSON(RunResponse{DatabaseID: db.ID(), Report: report})
}

// progressWriter keeps stdout for the JSON response.
func progressWriter() io.Writer {
	if humanOutput {
		return os.Stdout
	}
	return os.Stderr
}

func printRunReport(r *syncer.Report) {
	outputHuman("\nUploaded %d of %d publications (%d already present).\n",
		len(r.Uploaded), r.Parsed, r.AlreadyPresent)
	for _, t := range r.Truncated {
		outputHuman("  %s: %s truncated from %d characters\n", t.Key, t.Field, t.Length)
	}

	if r.Archive == nil {
		return
	}
	a := r.Archive
	if len(a.Appended) > 0 {
		outputHuman("Saved %d entries to %s: %s\n", len(a.Appended), a.Path, strings.Join(a.Appended, ", "))
	} else {
		outputHuman("No new entries saved to %s\n", a.Path)
	}
	if len(a.DuplicatesInFile) > 0 {
		outputHuman("Duplicate keys in %s: %s\n", a.Path, strings.Join(a.DuplicatesInFile, ", "))
	}
	if len(a.DuplicatesInInput) > 0 {
		outputHuman("Duplicate keys in the input: %s\n", strings.Join(a.DuplicatesInInput, ", "))
	}
}

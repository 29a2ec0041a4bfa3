package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/pdf"
)

var (
	checkBibPath string
	checkDir     string
	checkNoDOI   bool
)

var checkPDFsCmd = &cobra.Command{
	Use:   "check-pdfs",
	Short: "Compare a PDF folder with a bib file",
	Long: `List the bib entries without a <key>.pdf file in the folder, with a Google
Scholar search link, and the PDFs without a bib entry. When a PDF without
entry holds a DOI found in the bib file, the matching key is suggested.

Example:
  ns check-pdfs -f refs.bib --dir ~/papers/pdf --human`,
	Args: cobra.NoArgs,
	RunE: runCheckPDFs,
}

func init() {
	checkPDFsCmd.Flags().StringVarP(&checkBibPath, "file-path", "f", "", "Bib file (default: saved bib file)")
	checkPDFsCmd.Flags().StringVar(&checkDir, "dir", "", "Folder holding the PDFs")
	checkPDFsCmd.Flags().BoolVar(&checkNoDOI, "no-doi", false, "Do not read DOIs from PDFs without entry")
	_ = checkPDFsCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(checkPDFsCmd)
}

func runCheckPDFs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bibPath, err := config.Resolve(config.KeyBibFilePath, checkBibPath, cfg.BibFilePath)
	if err != nil {
		return err
	}

	var opts []pdf.CheckerOption
	if checkNoDOI {
		opts = append(opts, pdf.WithDOIExtractor(nil))
	}

	report, err := pdf.NewChecker(opts...).CheckFile(config.ExpandPath(bibPath), config.ExpandPath(checkDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return withExitCode(ExitConfigError, err)
		}
		return err
	}

	if humanOutput {
		printCheckReport(report)
		return nil
	}
	return outputJSON(report)
}

func printCheckReport(r *pdf.Report) {
	if len(r.Missing) > 0 {
		outputHuman("Missing PDFs (entries in the bib file without a PDF):\n")
		for _, m := range r.Missing {
			outputHuman("- %s.pdf : %s\n", m.Key, m.Title)
			outputHuman("  %s\n", m.ScholarURL)
		}
	} else {
		outputHuman("All BibTeX entries have corresponding PDFs.\n")
	}

	if len(r.Extra) > 0 {
		outputHuman("\nExtra PDFs (PDFs in the folder without a bib entry):\n")
		for _, e := range r.Extra {
			switch {
			case e.SuggestedKey != "":
				outputHuman("- %s (DOI %s, probably %s.pdf)\n", e.File, e.DOI, e.SuggestedKey)
			case e.DOI != "":
				outputHuman("- %s (DOI %s)\n", e.File, e.DOI)
			default:
				outputHuman("- %s\n", e.File)
			}
		}
	} else {
		outputHuman("No extra PDFs in the folder.\n")
	}
}

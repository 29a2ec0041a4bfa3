// Package main provides the ns CLI entry point.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thomashirtz/notion-scholar/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	logFormat   string
)

// logger is configured from the persistent flags before any command runs.
var logger = zerolog.Nop()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx)
	stop()
	os.Exit(code)
}

// execute runs the root command and returns the process exit code.
func execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(err)
	}
	return ExitSuccess
}

var rootCmd = &cobra.Command{
	Use:   "ns",
	Short: "Synchronize BibTeX entries with a Notion database",
	Long: `ns uploads the publications of a BibTeX file or string to a Notion
database, skipping the ones already present, and keeps a local bib file of
everything added.

The database must have the properties Title, Abstract, Bibtex, Filename,
Journal, Authors, Year, URL, Inbox, Type and DOI.

Settings are resolved from flags, then the environment (NOTION_TOKEN,
NOTION_DATABASE_ID, also read from a .env file), then the saved config
(see 'ns set-config').

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger = logging.New(logging.Options{
			Level:   level,
			Format:  logFormat,
			Output:  os.Stderr,
			NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
		})
	},
}

func init() {
	// Load .env file if present (for NOTION_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format on stderr: console or json")
	rootCmd.Version = Version
}

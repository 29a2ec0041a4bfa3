package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/notion"
)

var (
	setToken       string
	setTokenPrompt bool
	setDatabaseID  string
	setFilePath    string
	setSave        bool
)

var setConfigCmd = &cobra.Command{
	Use:   "set-config",
	Short: "Save default settings",
	Long: `Save the settings used when the corresponding flags are not given.

The bib file must exist. The database ID may be given as the URL of the
database. The config file is only readable by you since it holds the token.

Examples:
  ns set-config --token-prompt
  ns set-config -d https://www.notion.so/myspace/0123456789abcdef0123456789abcdef
  ns set-config -f ~/papers/refs.bib --save=false`,
	Args: cobra.NoArgs,
	RunE: runSetConfig,
}

var inspectConfigCmd = &cobra.Command{
	Use:   "inspect-config",
	Short: "Show the saved settings",
	Args:  cobra.NoArgs,
	RunE:  runInspectConfig,
}

var clearConfigCmd = &cobra.Command{
	Use:   "clear-config",
	Short: "Delete the saved settings",
	Args:  cobra.NoArgs,
	RunE:  runClearConfig,
}

func init() {
	setConfigCmd.Flags().StringVarP(&setToken, "token", "t", "", "Notion integration token")
	setConfigCmd.Flags().BoolVar(&setTokenPrompt, "token-prompt", false, "Read the token from the terminal without echo")
	setConfigCmd.Flags().StringVarP(&setDatabaseID, "database-id", "d", "", "Database ID or URL")
	setConfigCmd.Flags().StringVarP(&setFilePath, "file-path", "f", "", "Bib file used by default")
	setConfigCmd.Flags().BoolVar(&setSave, "save", true, "Append --string entries to the bib file")
	setConfigCmd.MarkFlagsMutuallyExclusive("token", "token-prompt")

	rootCmd.AddCommand(setConfigCmd)
	rootCmd.AddCommand(inspectConfigCmd)
	rootCmd.AddCommand(clearConfigCmd)
}

func runSetConfig(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("token") && !setTokenPrompt && !flags.Changed("database-id") &&
		!flags.Changed("file-path") && !flags.Changed("save") {
		return errors.New("nothing to save: pass at least one setting")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if setTokenPrompt {
		token, err := promptToken(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		cfg.Token = token
	} else if flags.Changed("token") {
		cfg.Token = strings.TrimSpace(setToken)
	}

	if flags.Changed("database-id") {
		id, err := notion.ParseDatabaseID(setDatabaseID)
		if err != nil {
			return err
		}
		cfg.DatabaseID = id
	}

	if flags.Changed("file-path") {
		if err := config.ValidateBibFilePath(setFilePath); err != nil {
			return withExitCode(ExitConfigError, err)
		}
		abs, err := filepath.Abs(config.ExpandPath(setFilePath))
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		cfg.BibFilePath = abs
	}

	if flags.Changed("save") {
		save := setSave
		cfg.SaveToBibFile = &save
	}

	path := config.Path()
	if err := cfg.SaveTo(path); err != nil {
		return withExitCode(ExitConfigError, err)
	}

	if humanOutput {
		outputHuman("Saved config to %s\n", path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "saved", Path: path})
}

// promptToken reads the token without echo when in is a terminal, else
// reads one line.
func promptToken(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	var token string
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Notion integration token: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		token = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}

// InspectResponse is the response for the inspect-config command. The token
// itself is never shown.
type InspectResponse struct {
	Path          string `json:"path"`
	DatabaseID    string `json:"database_id"`
	BibFilePath   string `json:"bib_file_path"`
	SaveToBibFile bool   `json:"save_to_bib_file"`
	TokenSaved    bool   `json:"token_saved"`
}

func runInspectConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resp := InspectResponse{
		Path:          config.Path(),
		DatabaseID:    cfg.DatabaseID,
		BibFilePath:   cfg.BibFilePath,
		SaveToBibFile: cfg.SaveEnabled(),
		TokenSaved:    cfg.Token != "",
	}

	if humanOutput {
		outputHuman("Path of the config file: %s\n", resp.Path)
		outputHuman("database_id:      %s\n", resp.DatabaseID)
		outputHuman("bib_file_path:    %s\n", resp.BibFilePath)
		outputHuman("save_to_bib_file: %t\n", resp.SaveToBibFile)
		outputHuman("token saved:      %t\n", resp.TokenSaved)
		return nil
	}
	return outputJSON(resp)
}

func runClearConfig(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if err := config.Clear(path); err != nil {
		return withExitCode(ExitConfigError, err)
	}

	if humanOutput {
		outputHuman("Removed %s\n", path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "cleared", Path: path})
}

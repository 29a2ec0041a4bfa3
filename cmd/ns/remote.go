package main

import (
	"os"

	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/notion"
)

// loadConfig loads the saved configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return cfg, nil
}

// resolveRemote resolves the token and database ID from flag, environment
// and saved config, in that order. The database ID may be given as a URL.
func resolveRemote(flagToken, flagDatabaseID string, cfg *config.Config) (string, string, error) {
	token, err := config.Resolve(config.KeyToken, flagToken, os.Getenv(config.EnvToken), cfg.Token)
	if err != nil {
		return "", "", err
	}

	rawID, err := config.Resolve(config.KeyDatabaseID, flagDatabaseID, os.Getenv(config.EnvDatabaseID), cfg.DatabaseID)
	if err != nil {
		return "", "", err
	}
	databaseID, err := notion.ParseDatabaseID(rawID)
	if err != nil {
		return "", "", err
	}

	return token, databaseID, nil
}

// openDatabase returns the Notion database selected by the flags.
func openDatabase(flagToken, flagDatabaseID string, cfg *config.Config) (*notion.Database, error) {
	token, databaseID, err := resolveRemote(flagToken, flagDatabaseID, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("database_id", databaseID).Msg("using Notion database")
	client := notion.NewClient(notion.WithToken(token))
	return notion.NewDatabase(client, databaseID), nil
}

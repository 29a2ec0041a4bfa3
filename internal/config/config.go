// Package config handles the user configuration file and the resolution of
// settings from flags, environment and saved values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/notion-scholar/config.yml.
type Config struct {
	Token         string `yaml:"token,omitempty"`
	DatabaseID    string `yaml:"database_id,omitempty"`
	BibFilePath   string `yaml:"bib_file_path,omitempty"`
	SaveToBibFile *bool  `yaml:"save_to_bib_file,omitempty"`
}

// SaveEnabled reports whether string input is appended to the bib file.
// Unset means enabled.
func (c *Config) SaveEnabled() bool {
	return c.SaveToBibFile == nil || *c.SaveToBibFile
}

const (
	// AppDir is the directory name under XDG_CONFIG_HOME and XDG_DATA_HOME.
	AppDir = "notion-scholar"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// EnvToken holds the integration token.
	EnvToken = "NOTION_TOKEN"
	// EnvDatabaseID holds the database ID.
	EnvDatabaseID = "NOTION_DATABASE_ID"
)

// Setting keys, as named in errors and in the config file.
const (
	KeyToken       = "token"
	KeyDatabaseID  = "database_id"
	KeyBibFilePath = "bib_file_path"
)

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/notion-scholar/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir, ConfigFile)
}

// DataPath returns the path of name inside the data directory.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/notion-scholar.
func DataPath(name string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir, name)
}

// Load loads the config file at Path.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads the config file at path.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.BibFilePath != "" {
		cfg.BibFilePath = ExpandPath(cfg.BibFilePath)
	}

	return &cfg, nil
}

// SaveTo writes the configuration to path, creating its directory.
// The file is only readable by the user since it may hold the token.
func (c *Config) SaveTo(path string) error {
	if path == "" {
		return errors.New("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Save writes the configuration to Path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// Clear removes the config file at path. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing config: %w", err)
	}
	return nil
}

// MissingError reports a required setting found in none of its sources.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is not set: pass it as a flag, set it in the environment or save it with 'ns set-config'", e.Key)
}

// Resolve returns the first non-empty candidate. Candidates are given in
// priority order, typically flag, environment, saved config.
func Resolve(key string, candidates ...string) (string, error) {
	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return v, nil
		}
	}
	return "", &MissingError{Key: key}
}

// ResolveOptional is Resolve without the error for settings that may stay
// unset.
func ResolveOptional(candidates ...string) string {
	v, _ := Resolve("", candidates...)
	return v
}

// ValidateBibFilePath checks that the bib file exists and is a regular file.
func ValidateBibFilePath(path string) error {
	expanded := ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil {
		return fmt.Errorf("bib file does not exist: %s", expanded)
	}
	if info.IsDir() {
		return fmt.Errorf("bib file is a directory: %s", expanded)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

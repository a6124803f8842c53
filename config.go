package amc

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the tool configuration, loaded from a TOML file (by default
// .amc.toml at the invocation directory).
type Config struct {
	// Delimiter separates file headers from content in the output.
	Delimiter string `toml:"delimiter"`
	// Extensions is the allow-list of file extensions to process.
	Extensions []string `toml:"extensions"`
	// ExcludedFolders are directory names pruned from the walk at any depth.
	ExcludedFolders []string `toml:"excluded_folders"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Delimiter:  "---",
		Extensions: []string{"rs"},
	}
}

// LoadConfig loads configuration from path, falling back to DefaultConfig
// if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from the given file path.
func LoadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(string(content))
}

// ParseConfig parses configuration from a TOML string.
func ParseConfig(content string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Package config handles all of smash's user-configuration. You can view
// the default config with `smash --config`. On startup smash will create
// an empty config.yml under its config directory if one doesn't already
// exist, and merge whatever you put there over these defaults.
package config

import "time"

// UserConfig holds all of the user-configurable options.
type UserConfig struct {
	// Prompt is printed, without a trailing newline, before each line is
	// read from stdin.
	Prompt string `yaml:"prompt,omitempty"`

	// ShutdownGrace is how long `quit kill` waits after SIGTERM before
	// escalating to SIGKILL for a job that hasn't exited.
	ShutdownGrace time.Duration `yaml:"shutdownGrace,omitempty"`

	// StartupAliases are merged into the alias table ahead of anything
	// the session itself defines, keyed by name with the replacement
	// string stored the same way the alias builtin stores it (unquoted
	// here, since this isn't going through the builtin's parser).
	StartupAliases []StartupAlias `yaml:"startupAliases,omitempty"`
}

// StartupAlias is one alias pre-seeded from config.yml.
type StartupAlias struct {
	Name        string `yaml:"name"`
	Replacement string `yaml:"replacement"`
}

// GetDefaultConfig returns smash's default configuration.
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Prompt:        "smash > ",
		ShutdownGrace: 5 * time.Second,
	}
}

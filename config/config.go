/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for stylus-lookup.
package config

import "fmt"

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the stylus-lookup configuration.
type Config struct {
	// Directory is the project's root stylesheet directory, used when a
	// lookup does not supply one.
	Directory string `yaml:"directory" json:"directory"`

	// Debug enables lookup tracing.
	Debug bool `yaml:"debug" json:"debug"`

	// Format is the CLI output format: "text" or "json".
	Format string `yaml:"format" json:"format"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Directory: "",
		Debug:     false,
		Format:    FormatText,
	}
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: expected %s or %s", c.Format, FormatText, FormatJSON)
	}
}

// DirectoryOrNil returns the configured directory, or nil when none is set.
func (c *Config) DirectoryOrNil() *string {
	if c == nil || c.Directory == "" {
		return nil
	}
	dir := c.Directory
	return &dir
}

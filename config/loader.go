/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	stylfs "bennypowers.dev/stylus-lookup/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "stylus-lookup"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Path returns the first existing config file beneath rootDir, or "".
func Path(filesystem stylfs.FileSystem, rootDir string) string {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if filesystem.Exists(configPath) {
			return configPath
		}
	}
	return ""
}

// Load searches for .config/stylus-lookup.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem stylfs.FileSystem, rootDir string) (*Config, error) {
	configPath := Path(filesystem, rootDir)
	if configPath == "" {
		return nil, nil
	}

	data, err := filesystem.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configPath, err)
	}

	cfg := Default()
	switch filepath.Ext(configPath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem stylfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

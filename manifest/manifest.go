/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest reads files that list many lookups and resolves them
// in one pass.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	stylfs "bennypowers.dev/stylus-lookup/fs"
	"bennypowers.dev/stylus-lookup/lookup"
)

// Manifest is a list of lookups, optionally sharing a directory.
//
// It can be written as a bare list of lookups or as an object with
// "directory" and "lookups" keys.
type Manifest struct {
	// Directory is used for lookups that omit their own.
	Directory *string `yaml:"directory" json:"directory"`

	// Lookups are resolved in order.
	Lookups []lookup.Request `yaml:"lookups" json:"lookups"`
}

// UnmarshalYAML handles both list and object forms for Manifest.
func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&m.Lookups)
	}

	type rawManifest Manifest
	return node.Decode((*rawManifest)(m))
}

// UnmarshalJSON handles both list and object forms for Manifest.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var list []lookup.Request
	if err := json.Unmarshal(data, &list); err == nil {
		m.Lookups = list
		return nil
	}

	type rawManifest Manifest
	return json.Unmarshal(data, (*rawManifest)(m))
}

// Parse decodes a manifest. format is the file extension: ".yaml",
// ".yml" or ".json". JSON may contain comments and trailing commas.
func Parse(data []byte, format string) (*Manifest, error) {
	m := &Manifest{}
	switch format {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return m, nil
}

// Load reads and parses the manifest at path.
func Load(filesystem stylfs.FileSystem, path string) (*Manifest, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Requests returns the lookups with the manifest directory filled in
// where a lookup has none. Other absent fields stay absent.
func (m *Manifest) Requests() []lookup.Request {
	reqs := make([]lookup.Request, len(m.Lookups))
	for i, req := range m.Lookups {
		if req.Directory == nil && m.Directory != nil {
			dir := *m.Directory
			req.Directory = &dir
		}
		reqs[i] = req
	}
	return reqs
}

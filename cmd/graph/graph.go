/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package graph provides the graph command for stylus-lookup.
package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stylus-lookup/config"
	"bennypowers.dev/stylus-lookup/fs"
	depgraph "bennypowers.dev/stylus-lookup/graph"
	"bennypowers.dev/stylus-lookup/internal/logger"
	"bennypowers.dev/stylus-lookup/lookup"
	"bennypowers.dev/stylus-lookup/manifest"
)

// Cmd is the graph cobra command.
var Cmd = &cobra.Command{
	Use:   "graph <manifest>",
	Short: "Print build order or invalidation set for a manifest",
	Long: `Resolve a manifest and treat each resolved lookup as an edge from the
importing file to the imported one.

Without flags, prints every file in build order: imported files first.
With --affected, prints the files that import the given file directly or
transitively, i.e. what to rebuild when it changes.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("directory", "", "Directory for lookups that omit one")
	Cmd.Flags().String("affected", "", "Print files that depend on this file")
	Cmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("directory", cmd.Flags().Lookup("directory")); err != nil {
		return err
	}
	if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	affected, _ := cmd.Flags().GetString("affected")

	filesystem := fs.NewOSFileSystem()
	m, err := manifest.Load(filesystem, args[0])
	if err != nil {
		return err
	}
	if m.Directory == nil && viper.IsSet("directory") {
		dir := viper.GetString("directory")
		m.Directory = &dir
	}

	resolver := lookup.New(filesystem, lookup.WithTracer(logger.Tracer()))
	results := manifest.Run(resolver, m)
	for i, r := range results {
		switch {
		case r.Err != nil:
			logger.Warn("lookup %d %s: %v", i, r.Request, r.Err)
		case r.Path == "":
			logger.Warn("lookup %d: %q not found from %s", i, *r.Request.Dependency, r.From)
		}
	}

	g := depgraph.FromResults(results)

	var files []string
	if affected != "" {
		files = g.AffectedBy(resolver.Abs(affected))
	} else if files, err = g.TopologicalSort(); err != nil {
		return err
	}

	return write(cmd.OutOrStdout(), files, viper.GetString("format"))
}

func write(w io.Writer, files []string, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling files: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatText, "":
		for _, f := range files {
			fmt.Fprintln(w, f)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

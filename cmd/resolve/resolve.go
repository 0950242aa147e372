/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for stylus-lookup.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stylus-lookup/config"
	"bennypowers.dev/stylus-lookup/fs"
	"bennypowers.dev/stylus-lookup/internal/logger"
	"bennypowers.dev/stylus-lookup/lookup"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve <dependency>",
	Short: "Resolve one import specifier",
	Long: `Resolve a Stylus @import or @require specifier to the file the compiler would load.

Candidates are tried in order, and the first one that exists wins:
  1. <filename>/<dependency>[.ext]    (skipped for absolute dependencies)
  2. <dir of filename>/<dependency>[.ext]
  3. <dir of filename>/<dependency>/index.styl

The extension of filename is appended when the dependency has none.

Examples:
  stylus-lookup resolve blueprint --filename example/styles.styl --directory example
  stylus-lookup resolve nested/foo --filename example/another.styl --explain`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("filename", "", "Stylesheet containing the import")
	Cmd.Flags().String("directory", "", "Project stylesheet directory (default from config)")
	Cmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, json")
	Cmd.Flags().Bool("explain", false, "List every candidate and whether it exists")
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("directory", cmd.Flags().Lookup("directory")); err != nil {
		return err
	}
	if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	explain, _ := cmd.Flags().GetBool("explain")

	req := BuildRequest(cmd, args)
	filesystem := fs.NewOSFileSystem()
	resolver := lookup.New(filesystem, lookup.WithTracer(logger.Tracer()))

	out := Output{Request: req}
	path, err := resolver.Resolve(req)
	if err != nil {
		return err
	}
	out.Path = path

	if explain {
		candidates, _ := resolver.Candidates(req)
		for _, c := range candidates {
			out.Candidates = append(out.Candidates, Probe{Candidate: c, Exists: filesystem.Exists(c.Path)})
		}
	}

	if err := Write(cmd.OutOrStdout(), out, viper.GetString("format")); err != nil {
		return err
	}

	if path == "" {
		return fmt.Errorf("could not resolve %q from %s", *req.Dependency, *req.Filename)
	}
	return nil
}

// BuildRequest maps arguments and flags onto a lookup request. A flag
// that was never given is absent, except directory, which falls back to
// the environment or config file.
func BuildRequest(cmd *cobra.Command, args []string) lookup.Request {
	var req lookup.Request
	if len(args) > 0 {
		dep := args[0]
		req.Dependency = &dep
	}
	if cmd.Flags().Changed("filename") {
		filename, _ := cmd.Flags().GetString("filename")
		req.Filename = &filename
	}
	if viper.IsSet("directory") {
		dir := viper.GetString("directory")
		req.Directory = &dir
	}
	return req
}

// Probe is a candidate together with whether it exists.
type Probe struct {
	lookup.Candidate
	Exists bool `json:"exists"`
}

// Output is what the resolve command prints.
type Output struct {
	Request    lookup.Request `json:"request"`
	Path       string         `json:"path"`
	Candidates []Probe        `json:"candidates,omitempty"`
}

var (
	hit  = color.New(color.FgGreen).SprintFunc()
	miss = color.New(color.FgRed).SprintFunc()
)

// Write renders out in the given format.
func Write(w io.Writer, out Output, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatText, "":
		for _, p := range out.Candidates {
			mark := miss("✗")
			if p.Exists {
				mark = hit("✓")
			}
			fmt.Fprintf(w, "%s %-9s %s\n", mark, p.Step, p.Path)
		}
		if out.Path != "" {
			fmt.Fprintln(w, out.Path)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package batch provides the batch command for stylus-lookup.
package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stylus-lookup/config"
	"bennypowers.dev/stylus-lookup/fs"
	"bennypowers.dev/stylus-lookup/internal/logger"
	"bennypowers.dev/stylus-lookup/lookup"
	"bennypowers.dev/stylus-lookup/manifest"
)

// Cmd is the batch cobra command.
var Cmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Resolve every lookup listed in a manifest",
	Long: `Resolve every lookup in a YAML or JSON manifest.

A manifest is either a list of lookups or an object with a shared directory:

  directory: styles
  lookups:
    - dependency: blueprint
      filename: styles/main.styl
    - dependency: nested/foo
      filename: styles/another.styl

A top-level directory falls back to --directory, then the environment and
config file. Invalid lookups are reported and do not stop the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("directory", "", "Directory for lookups that omit one")
	Cmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, json")
	Cmd.Flags().Bool("strict", false, "Exit non-zero when any lookup is unresolved or invalid")
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("directory", cmd.Flags().Lookup("directory")); err != nil {
		return err
	}
	if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")

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
		if r.Err != nil {
			logger.Warn("lookup %d %s: %v", i, r.Request, r.Err)
		}
	}

	if err := Write(cmd.OutOrStdout(), results, viper.GetString("format")); err != nil {
		return err
	}

	summary := manifest.Summarize(results)
	if strict && (summary.Unresolved > 0 || summary.Invalid > 0) {
		return fmt.Errorf("%d unresolved, %d invalid of %d lookups", summary.Unresolved, summary.Invalid, len(results))
	}
	return nil
}

type resultOutput struct {
	Dependency *string `json:"dependency"`
	Filename   *string `json:"filename"`
	Directory  *string `json:"directory"`
	Path       string  `json:"path"`
	Error      string  `json:"error,omitempty"`
}

type output struct {
	Results []resultOutput   `json:"results"`
	Summary manifest.Summary `json:"summary"`
}

// Write renders batch results in the given format.
func Write(w io.Writer, results []manifest.Result, format string) error {
	switch format {
	case config.FormatJSON:
		out := output{
			Results: make([]resultOutput, 0, len(results)),
			Summary: manifest.Summarize(results),
		}
		for _, r := range results {
			ro := resultOutput{
				Dependency: r.Request.Dependency,
				Filename:   r.Request.Filename,
				Directory:  r.Request.Directory,
				Path:       r.Path,
			}
			if r.Err != nil {
				ro.Error = r.Err.Error()
			}
			out.Results = append(out.Results, ro)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatText, "":
		for _, r := range results {
			dep := "-"
			if r.Request.Dependency != nil {
				dep = *r.Request.Dependency
			}
			switch {
			case r.Err != nil:
				fmt.Fprintf(w, "%-30s !%s\n", dep, r.Err)
			case r.Path == "":
				fmt.Fprintf(w, "%-30s -\n", dep)
			default:
				fmt.Fprintf(w, "%-30s %s\n", dep, r.Path)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for stylus-lookup.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/stylus-lookup/config"
	"bennypowers.dev/stylus-lookup/internal/version"
)

// Cmd is the version cobra command that prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		out, err := json.MarshalIndent(version.Info(), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling version info: %w", err)
		}
		fmt.Fprintln(w, string(out))
	case config.FormatText:
		fmt.Fprintf(w, "stylus-lookup %s\n", version.Full())
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

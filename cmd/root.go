/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for stylus-lookup.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/stylus-lookup/cmd/batch"
	"bennypowers.dev/stylus-lookup/cmd/graph"
	"bennypowers.dev/stylus-lookup/cmd/resolve"
	"bennypowers.dev/stylus-lookup/cmd/version"
	"bennypowers.dev/stylus-lookup/config"
	"bennypowers.dev/stylus-lookup/fs"
	"bennypowers.dev/stylus-lookup/internal/logger"
)

// EnvPrefix prefixes environment variables that override configuration,
// e.g. STYLUS_LOOKUP_DIRECTORY.
const EnvPrefix = "STYLUS_LOOKUP"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stylus-lookup",
		Short: "Find the file a Stylus @import or @require resolves to",
		Long: `stylus-lookup resolves Stylus import specifiers to files on disk, in the
same order the Stylus compiler searches, without running the compiler.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().Bool("debug", false, "Trace every candidate path to stderr")
	root.PersistentFlags().String("root", ".", "Project root containing .config/stylus-lookup.{yaml,yml,json}")

	root.AddCommand(resolve.Cmd)
	root.AddCommand(batch.Cmd)
	root.AddCommand(graph.Cmd)
	root.AddCommand(version.Cmd)
	return root
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup layers configuration for every subcommand: flags over
// STYLUS_LOOKUP_* environment variables (a .env file is honoured) over the
// project config file.
func setup(cmd *cobra.Command, args []string) error {
	rootDir, _ := cmd.Flags().GetString("root")

	_ = godotenv.Load(filepath.Join(rootDir, ".env"))

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	if err := viper.BindPFlag("debug", cmd.Flags().Lookup("debug")); err != nil {
		return err
	}

	filesystem := fs.NewOSFileSystem()
	cfg, err := config.Load(filesystem, rootDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg != nil {
		settings := map[string]any{"debug": cfg.Debug}
		if cfg.Directory != "" {
			settings["directory"] = cfg.Directory
		}
		if cfg.Format != "" {
			settings["format"] = cfg.Format
		}
		if err := viper.MergeConfigMap(settings); err != nil {
			return fmt.Errorf("applying config: %w", err)
		}
	}

	if viper.GetBool("debug") {
		logger.SetDebug(true)
	}
	logger.SetOutput(cmd.ErrOrStderr())
	if cfg != nil {
		logger.Debug("config: %s", config.Path(filesystem, rootDir))
	}
	return nil
}

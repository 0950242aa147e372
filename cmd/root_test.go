/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/stylus-lookup/internal/logger"
)

// project writes the example stylesheet tree into a temp dir and makes it
// the working directory.
func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"example/main.styl":            `@import "blueprint"; @require "another"`,
		"example/another.styl":         `@import "nested/foo"`,
		"example/styles.styl":          `@import "styles2.css"`,
		"example/styles2.css":          "",
		"example/blueprint/index.styl": "",
		"example/nested/foo.styl":      "",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	t.Setenv("STYLUS_LOOKUP_DIRECTORY", "")
	t.Setenv("STYLUS_LOOKUP_DEBUG", "")
	prevWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(prevWd) })
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	prevDebug := logger.DebugEnabled()
	t.Cleanup(func() {
		resetFlags(rootCmd)
		viper.Reset()
		logger.SetOutput(os.Stderr)
		logger.SetDebug(prevDebug)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCommand(t *testing.T) {
	wd := project(t)

	out, _, err := execute(t, "resolve", "blueprint", "--filename", "example/styles.styl", "--directory", "example")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "example", "blueprint", "index.styl")+"\n", out)
}

func TestResolveCommand_Unresolved(t *testing.T) {
	project(t)

	out, _, err := execute(t, "resolve", "missing", "--filename", "example/main.styl", "--directory", "example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `could not resolve "missing"`)
	assert.Empty(t, out)
}

func TestResolveCommand_AbsentInputs(t *testing.T) {
	project(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"dependency", []string{"resolve", "--filename", "example/main.styl", "--directory", "example"}, "dependency is not supplied"},
		{"filename", []string{"resolve", "another", "--directory", "example"}, "filename is not supplied"},
		{"directory", []string{"resolve", "another", "--filename", "example/main.styl"}, "directory is not supplied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestResolveCommand_EmptyDirectoryFlagIsSupplied(t *testing.T) {
	wd := project(t)

	out, _, err := execute(t, "resolve", "another", "--filename", "example/main.styl", "--directory", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "example", "another.styl")+"\n", out)
}

func TestResolveCommand_DirectoryFromConfig(t *testing.T) {
	wd := project(t)
	require.NoError(t, os.MkdirAll(filepath.Join(wd, ".config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".config", "stylus-lookup.yaml"), []byte("directory: example\nformat: json\n"), 0644))

	out, _, err := execute(t, "resolve", "nested/foo", "--filename", "example/another.styl")
	require.NoError(t, err)

	var got struct {
		Request struct {
			Directory *string `json:"directory"`
		} `json:"request"`
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Request.Directory)
	assert.Equal(t, "example", *got.Request.Directory)
	assert.Equal(t, filepath.Join(wd, "example", "nested", "foo.styl"), got.Path)
}

func TestResolveCommand_DirectoryFromEnv(t *testing.T) {
	wd := project(t)
	t.Setenv("STYLUS_LOOKUP_DIRECTORY", "example")

	out, _, err := execute(t, "resolve", "another", "--filename", "example/main.styl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "example", "another.styl")+"\n", out)
}

func TestResolveCommand_Explain(t *testing.T) {
	wd := project(t)

	out, _, err := execute(t, "resolve", "another", "--filename", "example/main.styl", "--directory", "example", "--explain")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], filepath.Join(wd, "example", "main.styl", "another.styl"))
	assert.Contains(t, lines[1], "same-dir")
	assert.Contains(t, lines[2], "index")
	assert.Equal(t, filepath.Join(wd, "example", "another.styl"), lines[3])
}

func TestResolveCommand_DebugTrace(t *testing.T) {
	project(t)

	_, stderr, err := execute(t, "--debug", "resolve", "another", "--filename", "example/main.styl", "--directory", "example")
	require.NoError(t, err)
	assert.Contains(t, stderr, "trying to resolve: another")
	assert.Contains(t, stderr, "same-dir candidate:")
}

func TestBatchCommand(t *testing.T) {
	wd := project(t)
	manifestPath := filepath.Join(wd, "lookups.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`directory: example
lookups:
  - dependency: blueprint
    filename: example/styles.styl
  - dependency: missing
    filename: example/main.styl
  - filename: example/main.styl
`), 0644))

	out, stderr, err := execute(t, "batch", manifestPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "dependency is not supplied")

	var got struct {
		Results []struct {
			Dependency *string `json:"dependency"`
			Path       string  `json:"path"`
			Error      string  `json:"error"`
		} `json:"results"`
		Summary struct {
			Resolved   int `json:"resolved"`
			Unresolved int `json:"unresolved"`
			Invalid    int `json:"invalid"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, filepath.Join(wd, "example", "blueprint", "index.styl"), got.Results[0].Path)
	assert.Empty(t, got.Results[1].Path)
	assert.Nil(t, got.Results[2].Dependency)
	assert.Equal(t, "dependency is not supplied", got.Results[2].Error)
	assert.Equal(t, 1, got.Summary.Resolved)
	assert.Equal(t, 1, got.Summary.Unresolved)
	assert.Equal(t, 1, got.Summary.Invalid)
}

func TestBatchCommand_Strict(t *testing.T) {
	wd := project(t)
	manifestPath := filepath.Join(wd, "lookups.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`[
  // one miss
  {"dependency": "missing", "filename": "example/main.styl", "directory": "example"},
]`), 0644))

	out, _, err := execute(t, "batch", manifestPath, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 unresolved, 0 invalid of 1 lookups")
	assert.Equal(t, "missing                        -\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "stylus-lookup "), out)
}

func TestGraphCommand(t *testing.T) {
	wd := project(t)
	manifestPath := filepath.Join(wd, "lookups.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`directory: example
lookups:
  - {dependency: another, filename: example/main.styl}
  - {dependency: nested/foo, filename: example/another.styl}
`), 0644))

	out, _, err := execute(t, "graph", manifestPath)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		filepath.Join(wd, "example", "nested", "foo.styl"),
		filepath.Join(wd, "example", "another.styl"),
		filepath.Join(wd, "example", "main.styl"),
	}, "\n")+"\n", out)

	out, _, err = execute(t, "graph", manifestPath, "--affected", "example/nested/foo.styl", "--format", "json")
	require.NoError(t, err)

	var affected []string
	require.NoError(t, json.Unmarshal([]byte(out), &affected))
	assert.Equal(t, []string{
		filepath.Join(wd, "example", "another.styl"),
		filepath.Join(wd, "example", "main.styl"),
	}, affected)
}

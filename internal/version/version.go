/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides version information for the stylus-lookup CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns the version string, preferring ldflags, then module
// build info, then the git tag and commit.
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "(devel)" && v != "" {
			return v
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	v := GitTag
	if short := shortCommit(GitCommit); short != "" && !strings.HasSuffix(GitTag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// Full returns the version with its commit, when known.
func Full() string {
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", Get(), GitCommit)
	}
	return Get()
}

// Info returns detailed build information.
func Info() map[string]string {
	return map[string]string{
		"version":   Get(),
		"gitCommit": GitCommit,
		"gitTag":    GitTag,
		"buildTime": BuildTime,
		"gitDirty":  GitDirty,
		"go":        runtime.Version(),
		"platform":  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for stylus-lookup.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/stylus-lookup/internal/mapfs"
)

// updateGolden enables updating golden files with actual output when -update flag is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// candidates lists where a testdata path may live, since go test runs in
// the package directory.
func candidates(p string) []string {
	return []string{
		filepath.Join("testdata", p),
		filepath.Join("..", "testdata", p),
		filepath.Join("..", "..", "testdata", p),
	}
}

// FixturePath returns the on-disk location of a testdata directory or file.
func FixturePath(t *testing.T, p string) string {
	t.Helper()
	for _, c := range candidates(p) {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	t.Fatalf("Could not find fixtures at %s (tried all paths)", p)
	return ""
}

// NewFixtureFS loads fixture files from testdata and returns a MapFileSystem
// with files mapped to the specified root path. The working directory of
// the returned filesystem is rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	mfs.SetWorkingDir(rootPath)
	AddFixtures(t, mfs, fixtureDir, rootPath)
	return mfs
}

// AddFixtures copies testdata/fixtureDir into mfs beneath rootPath.
func AddFixtures(t *testing.T, mfs *mapfs.MapFileSystem, fixtureDir string, rootPath string) {
	t.Helper()

	fixturePath := FixturePath(t, fixtureDir)

	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}

		mfs.AddFile(filepath.ToSlash(filepath.Join(rootPath, relPath)), string(content), 0644)
		return nil
	})

	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
}

// LoadFixtureFile reads a single fixture file and returns its content.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	for _, path := range candidates(fixturePath) {
		content, err := os.ReadFile(path)
		if err == nil {
			return content
		}
	}
	t.Fatalf("Failed to read fixture %s (tried all paths)", fixturePath)
	return nil
}

// UpdateGoldenFile writes actual output to the golden file when -update flag is set.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	paths := candidates(goldenPath)
	targetPath := paths[0]
	for _, path := range paths {
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			targetPath = path
			break
		}
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
	}

	if err := os.WriteFile(targetPath, actual, 0644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
	}

	t.Logf("Updated golden file: %s", targetPath)
}

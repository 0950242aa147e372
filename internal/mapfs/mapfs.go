/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements FileSystem using an in-memory fstest.MapFS.
// This is useful for testing without touching the real filesystem.
type MapFileSystem struct {
	mu      sync.RWMutex
	mapFS   fstest.MapFS
	wd      string
	modTime time.Time
	probes  []string
}

// New creates a new in-memory filesystem for testing.
// The working directory defaults to "/".
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		wd:      "/",
		modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddDir adds an empty directory to the in-memory filesystem.
func (mfs *MapFileSystem) AddDir(p string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Mode:    fs.ModeDir | mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// SetWorkingDir sets the directory returned by Getwd.
func (mfs *MapFileSystem) SetWorkingDir(dir string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.wd = path.Clean("/" + dir)
}

// Getwd implements FileSystem.
func (mfs *MapFileSystem) Getwd() (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.wd, nil
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadFile(mfs.mapFS, mfs.cleanPath(name))
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, mfs.cleanPath(name))
}

// Exists implements FileSystem. Every call is recorded, see Probes.
func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.probes = append(mfs.probes, p)
	p = mfs.cleanPath(p)

	if p == "." {
		return true
	}
	if _, exists := mfs.mapFS[p]; exists {
		return true
	}

	prefix := p + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}

	return false
}

// Probes returns the paths passed to Exists, in call order.
func (mfs *MapFileSystem) Probes() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return append([]string(nil), mfs.probes...)
}

// ResetProbes clears the recorded Exists calls.
func (mfs *MapFileSystem) ResetProbes() {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.probes = nil
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return mfs.mapFS.Open(mfs.cleanPath(name))
}

// ListFiles returns all entries in the MapFS for debugging, sorted by path.
func (mfs *MapFileSystem) ListFiles() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	result := make([]string, 0, len(mfs.mapFS))
	for p, file := range mfs.mapFS {
		if file.Mode.IsDir() {
			result = append(result, fmt.Sprintf("/%s/", p))
		} else {
			result = append(result, fmt.Sprintf("/%s (%d bytes)", p, len(file.Data)))
		}
	}
	sort.Strings(result)
	return result
}

// cleanPath maps an absolute or working-directory-relative path onto a
// MapFS key, which has no leading slash.
func (mfs *MapFileSystem) cleanPath(p string) string {
	if !path.IsAbs(p) {
		p = path.Join(mfs.wd, p)
	}
	cleaned := strings.TrimPrefix(path.Clean(p), "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}

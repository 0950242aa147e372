/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs

import (
	"reflect"
	"testing"
)

func TestExists(t *testing.T) {
	mfs := New()
	mfs.AddFile("/project/example/nested/foo.styl", "", 0644)
	mfs.AddDir("/project/empty", 0755)

	tests := []struct {
		path string
		want bool
	}{
		{"/project/example/nested/foo.styl", true},
		{"/project/example/nested", true},
		{"/project/example", true},
		{"/project/empty", true},
		{"/", true},
		{"/project/example/nested/foo", false},
		{"/project/example/nested/foo.styl/index.styl", false},
		{"/project/ex", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := mfs.Exists(tt.path); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWorkingDir(t *testing.T) {
	mfs := New()
	mfs.AddFile("/project/main.styl", "body\n  color red", 0644)
	mfs.SetWorkingDir("/project")

	wd, err := mfs.Getwd()
	if err != nil || wd != "/project" {
		t.Fatalf("Getwd() = %q, %v", wd, err)
	}

	if !mfs.Exists("main.styl") {
		t.Error("expected relative path to resolve against working directory")
	}

	data, err := mfs.ReadFile("main.styl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "body\n  color red" {
		t.Errorf("ReadFile = %q", data)
	}
}

func TestProbes(t *testing.T) {
	mfs := New()
	mfs.Exists("/a")
	mfs.Exists("b")

	if got, want := mfs.Probes(), []string{"/a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Probes() = %v, want %v", got, want)
	}

	mfs.ResetProbes()
	if len(mfs.Probes()) != 0 {
		t.Error("expected probes to be cleared")
	}
}

func TestListFiles(t *testing.T) {
	mfs := New()
	mfs.AddFile("/b.styl", "abc", 0644)
	mfs.AddDir("/a", 0755)

	want := []string{"/a/", "/b.styl (3 bytes)"}
	if got := mfs.ListFiles(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles() = %v, want %v", got, want)
	}
}

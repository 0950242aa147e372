/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package batch

import (
	"bytes"
	"testing"

	"bennypowers.dev/stylus-lookup/internal/mapfs"
	"bennypowers.dev/stylus-lookup/lookup"
	"bennypowers.dev/stylus-lookup/manifest"
	"bennypowers.dev/stylus-lookup/testutil"
)

func runFixture(t *testing.T) []manifest.Result {
	t.Helper()
	mfs := mapfs.New()
	mfs.SetWorkingDir("/project")
	testutil.AddFixtures(t, mfs, "fixtures/example", "/project/example")

	m, err := manifest.Parse(testutil.LoadFixtureFile(t, "fixtures/manifest/lookups.yaml"), ".yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return manifest.Run(lookup.New(mfs), m)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, runFixture(t), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.UpdateGoldenFile(t, "golden/batch.txt", buf.Bytes())
	want := testutil.LoadFixtureFile(t, "golden/batch.txt")
	if buf.String() != string(want) {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import "bennypowers.dev/stylus-lookup/lookup"

// Resolver resolves a single lookup and anchors relative paths the same
// way it does during resolution.
type Resolver interface {
	Resolve(req lookup.Request) (string, error)
	Abs(path string) string
}

// Result is the outcome of one manifest lookup.
type Result struct {
	Request lookup.Request

	// From is the absolute path of the importing file, or "" when the
	// lookup has no filename.
	From string

	// Path is the resolved file, or "" when nothing matched.
	Path string

	// Err is set when the lookup itself was invalid.
	Err error
}

// Resolved reports whether the lookup produced a path.
func (r Result) Resolved() bool {
	return r.Err == nil && r.Path != ""
}

// Run resolves every lookup in m, in order. An invalid lookup is
// recorded in its Result and does not stop the run.
func Run(resolver Resolver, m *Manifest) []Result {
	reqs := m.Requests()
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		path, err := resolver.Resolve(req)
		result := Result{Request: req, Path: path, Err: err}
		if req.Filename != nil {
			result.From = resolver.Abs(*req.Filename)
		}
		results = append(results, result)
	}
	return results
}

// Summary counts results by outcome.
type Summary struct {
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Invalid    int `json:"invalid"`
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Invalid++
		case r.Path == "":
			s.Unresolved++
		default:
			s.Resolved++
		}
	}
	return s
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lookup resolves Stylus @import and @require specifiers to the
// file the Stylus compiler would load, without invoking the compiler.
package lookup

import (
	"os"
	"path/filepath"
	"strings"
)

// IndexFile is the file a directory specifier resolves to.
const IndexFile = "index.styl"

// Prober checks whether a file or directory exists at a path.
type Prober interface {
	Exists(path string) bool
}

// Tracer receives diagnostic messages for each lookup step.
type Tracer interface {
	Trace(format string, args ...any)
}

type discardTracer struct{}

func (discardTracer) Trace(string, ...any) {}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTracer routes lookup diagnostics to t.
func WithTracer(t Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithWorkingDir sets the directory relative filenames are anchored at.
func WithWorkingDir(dir string) Option {
	return func(r *Resolver) {
		r.wd = dir
	}
}

// Resolver replicates the Stylus compiler's import lookup order.
// It holds no per-call state and is safe for concurrent use when its
// Prober is.
type Resolver struct {
	prober Prober
	tracer Tracer
	wd     string
}

// New creates a Resolver that probes paths with prober.
//
// Unless WithWorkingDir is given, the working directory comes from the
// prober when it has a Getwd method, and from the process otherwise.
func New(prober Prober, opts ...Option) *Resolver {
	r := &Resolver{
		prober: prober,
		tracer: discardTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.wd == "" {
		r.wd = workingDir(prober)
	}
	return r
}

func workingDir(prober Prober) string {
	if g, ok := prober.(interface{ Getwd() (string, error) }); ok {
		if wd, err := g.Getwd(); err == nil {
			return wd
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return string(filepath.Separator)
}

// Resolve returns the absolute path of the first candidate that exists,
// or "" when none does. An error is returned only for a request with a
// missing field, before any path is probed.
func (r *Resolver) Resolve(req Request) (string, error) {
	candidates, err := r.Candidates(req)
	if err != nil {
		return "", err
	}

	r.tracer.Trace("trying to resolve: %s", *req.Dependency)
	r.tracer.Trace("filename: %s", *req.Filename)
	r.tracer.Trace("directory: %s", *req.Directory)

	for _, c := range candidates {
		r.tracer.Trace("%s candidate: %s", c.Step, c.Path)
		if r.prober.Exists(c.Path) {
			return c.Path, nil
		}
		r.tracer.Trace("does not exist: %s", c.Path)
	}

	r.tracer.Trace("could not resolve %s", *req.Dependency)
	return "", nil
}

// Step names the rule that produced a candidate path.
type Step string

const (
	// StepRelative joins the dependency onto the importing file's path itself.
	StepRelative Step = "relative"
	// StepSameDir joins the dependency onto the importing file's directory.
	StepSameDir Step = "same-dir"
	// StepIndex treats the dependency as a directory holding index.styl.
	StepIndex Step = "index"
)

// Candidate is a path Resolve probes, with the step that produced it.
type Candidate struct {
	Step Step   `json:"step"`
	Path string `json:"path"`
}

// Candidates returns the paths Resolve would probe for req, in order,
// without touching the filesystem.
func (r *Resolver) Candidates(req Request) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dep := *req.Dependency
	filename := *req.Filename
	fileDir := filepath.Dir(filename)

	// @import "foo" from a .styl file means foo.styl
	ext := ""
	if extname(dep) == "" {
		ext = extname(filename)
	}

	candidates := make([]Candidate, 0, 3)
	if !filepath.IsAbs(dep) {
		// Anchored at the file path, not its directory. Callers rely on
		// this order, so it stays.
		candidates = append(candidates, Candidate{StepRelative, r.resolve(filename, dep) + ext})
	}

	base := r.resolve(fileDir, dep)
	candidates = append(candidates,
		Candidate{StepSameDir, base + ext},
		Candidate{StepIndex, filepath.Join(base, IndexFile)},
	)
	return candidates, nil
}

// Abs returns p as an absolute, cleaned path, anchoring a relative p at
// the resolver's working directory.
func (r *Resolver) Abs(p string) string {
	return r.resolve(r.wd, p)
}

// resolve returns the absolute, cleaned path of p relative to base.
func (r *Resolver) resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if !filepath.IsAbs(base) {
		base = filepath.Join(r.wd, base)
	}
	return filepath.Join(base, p)
}

// extname returns the extension of the last path element, including the
// dot. A name whose only dot is its first character has no extension.
func extname(p string) string {
	if p == "" {
		return ""
	}
	base := filepath.Base(p)
	if base == ".." {
		return ""
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

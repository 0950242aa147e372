/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lookup

// Interface is implemented by anything that resolves a Request.
type Interface interface {
	Resolve(req Request) (string, error)
}

var _ Interface = (*Resolver)(nil)

// Chain tries each resolver in order and returns the first non-empty
// path. An error from any resolver stops the chain.
type Chain []Interface

var _ Interface = Chain(nil)

// NewChain creates a resolver that falls back through resolvers in order,
// e.g. a project tree first and a shared vendor tree second.
func NewChain(resolvers ...Interface) Chain {
	return Chain(resolvers)
}

// Resolve implements Interface.
func (c Chain) Resolve(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	for _, r := range c {
		path, err := r.Resolve(req)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return "", nil
}

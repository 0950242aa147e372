/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package graph builds a stylesheet dependency graph from resolved lookups.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"bennypowers.dev/stylus-lookup/manifest"
)

// ErrCircularImport is returned when stylesheets import each other.
var ErrCircularImport = errors.New("circular import")

// DependencyGraph is a directed graph from importing files to the files
// they resolve to. Nodes are absolute paths.
type DependencyGraph struct {
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// New returns an empty graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool),
	}
}

// FromResults builds a graph from manifest results. Unresolved and
// invalid lookups add no edge.
func FromResults(results []manifest.Result) *DependencyGraph {
	g := New()
	for _, r := range results {
		if r.From != "" {
			g.nodes[r.From] = true
		}
		if r.Resolved() {
			g.AddEdge(r.From, r.Path)
		}
	}
	return g
}

// AddEdge records that from imports to. Duplicate edges are ignored.
func (g *DependencyGraph) AddEdge(from, to string) {
	g.nodes[from] = true
	g.nodes[to] = true
	for _, dep := range g.dependencies[from] {
		if dep == to {
			return
		}
	}
	g.dependencies[from] = append(g.dependencies[from], to)
	g.dependents[to] = append(g.dependents[to], from)
}

// Nodes returns every file in the graph, sorted.
func (g *DependencyGraph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Dependencies returns the files the given file imports.
func (g *DependencyGraph) Dependencies(file string) []string {
	if deps, ok := g.dependencies[file]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the files that import the given file.
func (g *DependencyGraph) Dependents(file string) []string {
	if deps, ok := g.dependents[file]; ok {
		return deps
	}
	return []string{}
}

// AffectedBy returns every file that directly or transitively imports
// file, sorted. A build tool invalidates these when file changes.
func (g *DependencyGraph) AffectedBy(file string) []string {
	seen := map[string]bool{}
	queue := []string{file}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, d := range g.dependents[n] {
			if !seen[d] && d != file {
				seen[d] = true
				queue = append(queue, d)
			}
		}
	}

	affected := make([]string, 0, len(seen))
	for n := range seen {
		affected = append(affected, n)
	}
	sort.Strings(affected)
	return affected
}

// HasCycle returns true if the graph contains a circular import.
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.Nodes() {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		for i, n := range path {
			if n == node {
				return append(append([]string{}, path[i:]...), node)
			}
		}
		panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns files in build order (imported files first).
// Returns error if graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: %v", ErrCircularImport, cycle)
	}

	visited := make(map[string]bool)
	result := []string{}

	for _, node := range g.Nodes() {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}

// Package dag builds the component-to-component reference graph of a merged
// package, detects circular composition, and computes a safe processing
// order.
//
// Flattening performs no bound-checking of its own, so any pipeline that
// accepts untrusted packages must run Cycles first and treat a non-empty
// result as fatal for the package.
package dag

import (
	"sort"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/registry"
)

// Graph is the component dependency graph: for every component, the set of
// components it instantiates anywhere in its tree, including inside
// slot-fallback subtrees. The graph is immutable once built.
type Graph struct {
	deps  map[string]map[string]struct{}
	names []string
}

// Build walks every component tree in the registry and records an edge for
// each instance node found.
func Build(reg *registry.Registry) *Graph {
	g := &Graph{deps: make(map[string]map[string]struct{}, len(reg.Components))}
	for name, def := range reg.Components {
		set := make(map[string]struct{})
		collectTargets(def.Root, set)
		g.deps[name] = set
	}
	g.names = make([]string, 0, len(g.deps))
	for name := range g.deps {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	return g
}

func collectTargets(n *model.Node, out map[string]struct{}) {
	if n == nil {
		return
	}
	if n.Instance != nil {
		out[registry.NormalizeName(n.Instance.Target)] = struct{}{}
		for _, binding := range n.Instance.Slots {
			for _, bound := range binding.Nodes {
				collectTargets(bound, out)
			}
		}
	}
	for _, fb := range n.SlotFallback {
		collectTargets(fb, out)
	}
	for _, c := range n.Children {
		collectTargets(c, out)
	}
}

// Dependencies returns the sorted set of components the named component
// instantiates, including references to components that do not exist.
func (g *Graph) Dependencies(name string) []string {
	set, ok := g.deps[name]
	if !ok {
		return nil
	}
	deps := make([]string, 0, len(set))
	for d := range set {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps
}

// Components returns every component in the graph, sorted.
func (g *Graph) Components() []string { return g.names }

// Cycles reports every independent composition cycle. Each cycle is the
// path slice from the first occurrence of the revisited component through
// the revisit, inclusive, so X→Y→X reports as [X Y X]. Traversal order is
// sorted, making the result deterministic, and cycles are deduplicated by
// canonical rotation so the same loop is not reported once per entry point.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		visited[name] = true
		onStack[name] = true
		stack = append(stack, name)

		for _, dep := range g.Dependencies(name) {
			if _, exists := g.deps[dep]; !exists {
				continue // missing component, the validator's concern
			}
			if onStack[dep] {
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, stack[start:]...), dep)
				if key := canonicalCycle(cycle); !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[name] = false
	}

	for _, name := range g.names {
		if !visited[name] {
			visit(name)
		}
	}
	return cycles
}

// canonicalCycle produces a rotation-invariant key for a cycle path. The
// trailing repeat of the first element is dropped before rotating.
func canonicalCycle(cycle []string) string {
	loop := cycle[:len(cycle)-1]
	first := 0
	for i := range loop {
		if loop[i] < loop[first] {
			first = i
		}
	}
	key := ""
	for i := range loop {
		key += loop[(first+i)%len(loop)] + "\x00"
	}
	return key
}

// Order computes a topological build order: every component appears after
// everything it depends on. References to missing components are skipped
// during traversal, so the sort never fails; missing dependencies are a
// validator concern. The order is deterministic (ties broken by name).
//
// On a cyclic graph the order is still produced (each component exactly
// once) but carries no usefulness guarantee; run Cycles first.
func Order(reg *registry.Registry) []string {
	g := Build(reg)
	order := make([]string, 0, len(g.names))
	visited := make(map[string]bool, len(g.names))

	var visit func(name string)
	visit = func(name string) {
		visited[name] = true
		for _, dep := range g.Dependencies(name) {
			if _, exists := g.deps[dep]; !exists {
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}
		order = append(order, name)
	}

	for _, name := range g.names {
		if !visited[name] {
			visit(name)
		}
	}
	return order
}

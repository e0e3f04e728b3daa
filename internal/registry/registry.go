// Package registry holds the merged, read-only view of a design package
// and everything it extends: one component table keyed by normalized name,
// one flattened token table, and the per-package token tables needed for
// external references.
//
// The registry is the arena for component-instance resolution: instance
// nodes hold a target name and are looked up here, never an embedded copy
// of the target tree. Once built, a registry is immutable; sharing one
// across concurrent resolution passes needs no locking.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/tokens"
)

// ErrNoPackage is returned by New when the local package is missing or has
// no name. A malformed top-level package is a fatal configuration error; no
// partial registry is ever returned.
var ErrNoPackage = errors.New("registry: local package is missing or unnamed")

// Registry is the merged package view consumed by every resolver.
type Registry struct {
	// Package is the local (top-level) package.
	Package *model.Package

	// Components is the merged component table, keyed by normalized name.
	Components map[string]*model.ComponentDef

	// Tokens is the merged, flattened token table. Local tokens override
	// extended ones; among extended packages, later-listed wins.
	Tokens tokens.Table

	// External keeps each contributing package's own flattened token
	// table, keyed by package name, for pkg.<name>.<path> references.
	External map[string]tokens.Table
}

// New merges extended packages (in list order) under the local package and
// returns the immutable registry. Local definitions always win; among the
// extended packages, later list position wins on conflict.
func New(local *model.Package, extended ...*model.Package) (*Registry, error) {
	if local == nil || local.Name == "" {
		return nil, ErrNoPackage
	}

	reg := &Registry{
		Package:    local,
		Components: make(map[string]*model.ComponentDef),
		Tokens:     tokens.Table{},
		External:   make(map[string]tokens.Table),
	}

	for _, pkg := range extended {
		if pkg == nil {
			continue
		}
		table := tokens.Flatten(pkg.Tokens)
		reg.External[pkg.Name] = table
		reg.Tokens = reg.Tokens.Merge(table)
		for name, def := range pkg.Components {
			reg.Components[NormalizeName(name)] = def
		}
	}

	localTable := tokens.Flatten(local.Tokens)
	reg.External[local.Name] = localTable
	reg.Tokens = reg.Tokens.Merge(localTable)
	for name, def := range local.Components {
		reg.Components[NormalizeName(name)] = def
	}

	return reg, nil
}

// Component looks a component up by reference name, normalizing first.
func (r *Registry) Component(name string) (*model.ComponentDef, bool) {
	def, ok := r.Components[NormalizeName(name)]
	return def, ok
}

// ComponentNames returns the merged component names, sorted.
func (r *Registry) ComponentNames() []string {
	names := make([]string, 0, len(r.Components))
	for name := range r.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeName canonicalizes a component reference: surrounding whitespace
// is trimmed and an optional "@pkg/" qualifier is stripped, since the merge
// already settled cross-package conflicts.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return name
}

// String implements fmt.Stringer for debug logging.
func (r *Registry) String() string {
	return fmt.Sprintf("registry(%s: %d components, %d tokens)",
		r.Package.Name, len(r.Components), len(r.Tokens))
}

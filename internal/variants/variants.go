// Package variants computes the effective style set for a node given an
// active variant selection and an optional interaction state.
//
// Merge order is fixed: unconditional styles first, then per-axis overrides
// in the variant context's iteration order (later axes win key collisions),
// then every matching compound rule in declaration order. Compound rules
// always outrank single-axis overrides.
package variants

import (
	"strings"

	"github.com/weftui/weft/internal/model"
)

// ResolveNodeStyles merges a node's style tables for the active variants.
// The inputs are never modified; calling twice with identical arguments
// returns equal results.
func ResolveNodeStyles(node *model.Node, active *model.VariantContext) model.StyleSet {
	result := node.Styles.Clone()
	if result == nil {
		result = model.StyleSet{}
	}

	for _, axis := range active.Axes() {
		value, _ := active.Get(axis)
		byValue, ok := node.VariantStyles[axis]
		if !ok {
			continue
		}
		if styles, ok := byValue[value]; ok {
			result = result.Merge(styles)
		}
	}

	for _, rule := range node.CompoundVariants {
		if active.Matches(rule.When) {
			result = result.Merge(rule.Styles)
		}
	}

	return result
}

// ResolveStateStyles computes the style overrides for one interaction state
// under the active variants. A flat entry applies as-is; a per-axis entry
// merges with the same axis-order rules as ResolveNodeStyles. A node with
// no entry for the state yields an empty set.
func ResolveStateStyles(node *model.Node, state string, active *model.VariantContext) model.StyleSet {
	entry, ok := node.States[state]
	if !ok || entry == nil {
		return model.StyleSet{}
	}
	if entry.Flat != nil {
		return entry.Flat.Clone()
	}

	result := model.StyleSet{}
	for _, axis := range active.Axes() {
		value, _ := active.Get(axis)
		byValue, ok := entry.PerAxis[axis]
		if !ok {
			continue
		}
		if styles, ok := byValue[value]; ok {
			result = result.Merge(styles)
		}
	}
	return result
}

// VariantStyleEntry is one (axis, value) style bundle of a component,
// enumerated for emitters that generate every variant up front.
type VariantStyleEntry struct {
	Node   *model.Node
	Axis   string
	Value  string
	Styles model.StyleSet
}

// EnumerateVariantStyles lists every per-axis style bundle in the component
// tree, in tree order then axis declaration order. This is a reporting
// utility for emitters, not part of resolution semantics.
func EnumerateVariantStyles(def *model.ComponentDef) []VariantStyleEntry {
	var entries []VariantStyleEntry
	var walk func(n *model.Node)
	walk = func(n *model.Node) {
		if n == nil {
			return
		}
		for _, axis := range def.Variants {
			byValue, ok := n.VariantStyles[axis.Name]
			if !ok {
				continue
			}
			for _, value := range axis.Values {
				if styles, ok := byValue[value]; ok {
					entries = append(entries, VariantStyleEntry{
						Node:   n,
						Axis:   axis.Name,
						Value:  value,
						Styles: styles,
					})
				}
			}
		}
		for _, fb := range n.SlotFallback {
			walk(fb)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(def.Root)
	return entries
}

// ClassName synthesizes the canonical class name for a variant value:
// "button--intent-primary".
func ClassName(component, axis, value string) string {
	return kebab(component) + "--" + kebab(axis) + "-" + kebab(value)
}

// StateClassName synthesizes the canonical class name for an interaction
// state: "button--hover".
func StateClassName(component, state string) string {
	return kebab(component) + "--" + kebab(state)
}

func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				prev := rune(s[i-1])
				if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
					b.WriteByte('-')
				}
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == ' ' || r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

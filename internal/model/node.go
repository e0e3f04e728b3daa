package model

// StyleSet is a flat bundle of style properties. Values are expressions so
// a style may reference tokens or properties; a fully resolved set holds
// only *Lit values.
type StyleSet map[string]Expr

// Merge returns a new StyleSet with over layered on top of base. Neither
// input is modified. A nil result is only possible when both inputs are nil.
func (s StyleSet) Merge(over StyleSet) StyleSet {
	if s == nil && over == nil {
		return nil
	}
	merged := make(StyleSet, len(s)+len(over))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the set.
func (s StyleSet) Clone() StyleSet {
	if s == nil {
		return nil
	}
	c := make(StyleSet, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// CompoundVariant is a style rule keyed by a conjunction of axis=value
// conditions spanning one or more axes. Matching rules merge after all
// single-axis overrides, in declaration order.
type CompoundVariant struct {
	// When maps axis name to the required value. Every entry must match
	// the active variant context for the rule to apply.
	When   map[string]string
	Styles StyleSet
}

// StateStyles is the style entry for one interaction state. Exactly one of
// the two shapes is populated: Flat applies unconditionally while the state
// is active, PerAxis varies by the active variant selection.
//
// Legacy data does not distinguish the two shapes; the loader classifies
// untyped entries through variants.ClassifyStateEntry and records a warning
// when the classification was ambiguous.
type StateStyles struct {
	Flat    StyleSet
	PerAxis map[string]map[string]StyleSet
}

// Instance marks a node as a component instance: a reference to another
// component by name plus the binding maps supplied at the use site. The
// target is held by name only and looked up in the registry table; an
// instance never embeds or aliases the target tree.
type Instance struct {
	Target string

	// Props binds property names to expressions, resolved against the
	// enclosing component's own resolved properties.
	Props map[string]Expr

	// Slots binds slot names to content.
	Slots map[string]*SlotBinding

	// Events binds the target's declared events to handler references.
	Events map[string]Expr

	// Variants pins variant axes of the target. Overrides are treated as
	// plain property values and lose to explicit Props bindings.
	Variants map[string]string
}

// SlotBinding is the content an instance supplies for one named slot.
// Exactly one field is set.
type SlotBinding struct {
	// Text is a literal string, rendered as a synthetic text leaf.
	Text string
	// HasText distinguishes an explicit empty literal from an unset one.
	HasText bool

	// FromProp names a property whose resolved value is stringified into
	// a text leaf.
	FromProp string

	// Forward names a slot of the enclosing component whose own content
	// substitutes here; empty content if the parent slot is unfilled.
	Forward string

	// Nodes is node content passed through unchanged.
	Nodes []*Node
}

// Node is one element of a component tree.
type Node struct {
	Name string
	Kind string

	// Text is the node's text content, for text-like nodes.
	Text Expr

	// Styles is the unconditional style set.
	Styles StyleSet

	// VariantStyles maps axis name to value to style overrides.
	VariantStyles map[string]map[string]StyleSet

	// CompoundVariants holds multi-axis rules in declaration order.
	CompoundVariants []*CompoundVariant

	// States maps interaction-state name (hover, focus, disabled, ...)
	// to its style entry.
	States map[string]*StateStyles

	// SlotTarget, when non-empty, marks this node as the insertion point
	// for the named slot. SlotFallback renders when the slot is unfilled.
	SlotTarget   string
	SlotFallback []*Node

	// Instance, when non-nil, marks this node as a component instance.
	Instance *Instance

	// Events maps event names to handler references.
	Events map[string]Expr

	Children []*Node
}

// IsInstance reports whether the node references another component.
func (n *Node) IsInstance() bool { return n.Instance != nil }

// IsSlotTarget reports whether the node is a slot insertion point.
func (n *Node) IsSlotTarget() bool { return n.SlotTarget != "" }

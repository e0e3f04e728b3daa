package model

// Package is the unified representation of one loaded design package:
// component definitions keyed by name, a raw token table, and the ordered
// list of packages it extends.
type Package struct {
	Name    string
	Version string

	// Extends lists the names of extended packages in declaration order.
	// On merge conflicts among extended packages, later entries win.
	Extends []string

	// Components maps component name to definition. Names are unique
	// within a single package; cross-package conflicts are settled by the
	// registry merge.
	Components map[string]*ComponentDef

	// Tokens is the raw, nested token table as decoded from the source.
	// Flattening to dot-path keys happens once, in the tokens package.
	Tokens map[string]any

	// TokenSources records the file paths token data was read from.
	TokenSources []string
}

// ComponentDef is a named, reusable node tree plus its declared contract:
// variant axes, properties, slots, and events.
type ComponentDef struct {
	Name       string
	Root       *Node
	Variants   []*VariantAxis
	Props      []*PropDef
	Slots      []*SlotDef
	Events     []*EventDef
	Deprecated string

	// LegacyProps carries the old-style flat properties attribute:
	// name to default value. Entries here count as declared properties
	// and their values as defaults during composition.
	LegacyProps map[string]Expr
}

// Axis returns the declared variant axis with the given name.
func (c *ComponentDef) Axis(name string) (*VariantAxis, bool) {
	for _, a := range c.Variants {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Prop returns the declared property with the given name.
func (c *ComponentDef) Prop(name string) (*PropDef, bool) {
	for _, p := range c.Props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Slot returns the declared slot with the given name.
func (c *ComponentDef) Slot(name string) (*SlotDef, bool) {
	for _, s := range c.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// VariantAxis is one named dimension of component variation with an
// enumerated value set and a default value. The default must be a member
// of Values; the validator flags definitions where it is not.
type VariantAxis struct {
	Name    string
	Values  []string
	Default string
}

// HasValue reports whether v is a member of the axis value set.
func (a *VariantAxis) HasValue(v string) bool {
	for _, val := range a.Values {
		if val == v {
			return true
		}
	}
	return false
}

// PropDef declares a single component property.
type PropDef struct {
	Name       string
	Type       string
	Required   bool
	Default    Expr
	Enum       []string
	Deprecated string
}

// SlotDef declares a named insertion point a consuming instance can fill.
type SlotDef struct {
	Name        string
	Required    bool
	Description string
}

// EventDef declares an event a component can emit.
type EventDef struct {
	Name        string
	Description string
}

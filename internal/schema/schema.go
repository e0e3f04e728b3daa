// Package schema holds the HCL-facing struct definitions for package
// files. These structs mirror the authoring format only; the loader
// translates them into the format-agnostic model before anything else
// sees them.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File represents one parsed .hcl package file.
type File struct {
	Package    *Package     `hcl:"package,block"`
	Tokens     []*Tokens    `hcl:"tokens,block"`
	Components []*Component `hcl:"component,block"`
}

// Package represents the `package "name" { ... }` header block.
type Package struct {
	Name    string   `hcl:"name,label"`
	Version string   `hcl:"version,optional"`
	Extends []string `hcl:"extends,optional"`
}

// Tokens represents a `tokens { ... }` block. A block may pull a token
// file in via `source` and/or declare token groups inline; inline groups
// are arbitrary attributes, hence the remain body.
type Tokens struct {
	Source string   `hcl:"source,optional"`
	Body   hcl.Body `hcl:",remain"`
}

// Component represents a `component "name" { ... }` block. Deprecated
// carries the deprecation message; empty means not deprecated.
type Component struct {
	Name       string     `hcl:"name,label"`
	Deprecated string     `hcl:"deprecated,optional"`
	Variants   []*Variant `hcl:"variant,block"`
	Props      []*Prop    `hcl:"prop,block"`
	Slots      []*Slot    `hcl:"slot,block"`
	Events     []*Event   `hcl:"event,block"`
	Root       *Node      `hcl:"node,block"`

	// Properties is the legacy flat property map predating typed prop
	// blocks: an object of name to default expression.
	Properties hcl.Expression `hcl:"properties,optional"`
}

// Variant declares one variant axis of a component.
type Variant struct {
	Name    string   `hcl:"name,label"`
	Values  []string `hcl:"values"`
	Default string   `hcl:"default,optional"`
}

// Prop declares one typed property of a component.
type Prop struct {
	Name       string         `hcl:"name,label"`
	Type       string         `hcl:"type,optional"`
	Required   bool           `hcl:"required,optional"`
	Default    hcl.Expression `hcl:"default,optional"`
	Enum       []string       `hcl:"enum,optional"`
	Deprecated string         `hcl:"deprecated,optional"`
}

// Slot declares a named content slot of a component.
type Slot struct {
	Name        string `hcl:"name,label"`
	Required    bool   `hcl:"required,optional"`
	Description string `hcl:"description,optional"`
}

// Event declares a named event a component can emit.
type Event struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// StyleBlock is a `styles { ... }` block; every attribute is one style
// property expression.
type StyleBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// VariantStyles is a `variant "axis" "value" { ... }` style override
// block; its attributes are the styles applied when the axis holds the
// value.
type VariantStyles struct {
	Axis  string   `hcl:"axis,label"`
	Value string   `hcl:"value,label"`
	Body  hcl.Body `hcl:",remain"`
}

// Compound is a `compound { when = {...} ... }` block whose styles apply
// only when every axis named in `when` holds the given value.
type Compound struct {
	When hcl.Expression `hcl:"when"`
	Body hcl.Body       `hcl:",remain"`
}

// State is a `state "hover" { ... }` block. Flat styles are attributes
// on the block itself; per-axis overrides nest as variant blocks. The two
// shapes are mutually exclusive within one block.
type State struct {
	Name     string           `hcl:"name,label"`
	Variants []*VariantStyles `hcl:"variant,block"`
	Body     hcl.Body         `hcl:",remain"`
}

// Bind is a `bind "slot" { ... }` block inside an instance node,
// supplying content for one slot of the target component. Exactly one of
// text, from_prop, forward, or child nodes is expected.
type Bind struct {
	Slot     string  `hcl:"slot,label"`
	Text     *string `hcl:"text,optional"`
	FromProp string  `hcl:"from_prop,optional"`
	Forward  string  `hcl:"forward,optional"`
	Nodes    []*Node `hcl:"node,block"`
}

// Node represents a `node "name" { ... }` block. A node with `component`
// set is an instance of another component; a node with `slot` set is a
// slot target whose children serve as fallback content.
type Node struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind,optional"`

	Text   hcl.Expression `hcl:"text,optional"`
	Slot   string         `hcl:"slot,optional"`
	On     hcl.Expression `hcl:"on,optional"`
	Styles *StyleBlock    `hcl:"styles,block"`

	Variants  []*VariantStyles `hcl:"variant,block"`
	Compounds []*Compound      `hcl:"compound,block"`
	States    []*State         `hcl:"state,block"`

	// LegacyStates is the untyped predecessor of state blocks: an object
	// of state name to entry whose flat/per-axis shape is classified
	// heuristically at load time.
	LegacyStates hcl.Expression `hcl:"states,optional"`

	// Instance surface.
	Component    string         `hcl:"component,optional"`
	Props        hcl.Expression `hcl:"props,optional"`
	VariantsAttr hcl.Expression `hcl:"variants,optional"`
	Binds        []*Bind        `hcl:"bind,block"`

	Nodes []*Node `hcl:"node,block"`
}

package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Expr is the closed set of value expressions the model can carry: literal
// values, the reference types, the computed combinators, and nested
// containers. Consumers switch exhaustively over the concrete types; there
// is no shape-sniffing of untyped maps anywhere past the loader.
type Expr interface {
	exprNode()
	// Describe returns a short, stable rendering for diagnostics.
	Describe() string
}

// TransformKind enumerates the pure coercions a PropTransform applies.
type TransformKind string

const (
	TransformBool   TransformKind = "bool"
	TransformString TransformKind = "string"
	TransformNumber TransformKind = "number"
	TransformNegate TransformKind = "negate"
	TransformUpper  TransformKind = "upper"
	TransformLower  TransformKind = "lower"
)

// ComputedKind enumerates the computed-value combinators.
type ComputedKind string

const (
	ComputedConcat     ComputedKind = "concat"
	ComputedTemplate   ComputedKind = "template"
	ComputedTernary    ComputedKind = "ternary"
	ComputedClassNames ComputedKind = "classnames"
)

// Lit is a literal value.
type Lit struct {
	Value cty.Value
}

// TokenRef references a design token by dot path, with an optional
// fallback expression used when the path does not resolve.
type TokenRef struct {
	Path     string
	Fallback Expr
}

// PropRef references a property of the enclosing component.
type PropRef struct {
	Name string
}

// PropTransform references a property and applies a pure coercion to its
// resolved value.
type PropTransform struct {
	Name string
	Kind TransformKind
}

// Computed combines recursively resolved inputs.
type Computed struct {
	Kind   ComputedKind
	Inputs []Expr
}

// EventRef references a handler for a declared event.
type EventRef struct {
	Name        string
	ExtractPath string
	ExtraArgs   []Expr
}

// AssetRef references an asset by path.
type AssetRef struct {
	Path string
}

// ExternalRef references a token path inside another package.
type ExternalRef struct {
	Package string
	Path    string
}

// List is an ordered container of expressions.
type List struct {
	Items []Expr
}

// Object is a keyed container of expressions.
type Object struct {
	Entries map[string]Expr
}

func (*Lit) exprNode()           {}
func (*TokenRef) exprNode()      {}
func (*PropRef) exprNode()       {}
func (*PropTransform) exprNode() {}
func (*Computed) exprNode()      {}
func (*EventRef) exprNode()      {}
func (*AssetRef) exprNode()      {}
func (*ExternalRef) exprNode()   {}
func (*List) exprNode()          {}
func (*Object) exprNode()        {}

func (e *Lit) Describe() string {
	if e.Value.IsNull() {
		return "null"
	}
	if e.Value.Type() == cty.String {
		return fmt.Sprintf("%q", e.Value.AsString())
	}
	return e.Value.GoString()
}

func (e *TokenRef) Describe() string {
	if e.Fallback != nil {
		return fmt.Sprintf("token.%s (fallback %s)", e.Path, e.Fallback.Describe())
	}
	return "token." + e.Path
}

func (e *PropRef) Describe() string { return "prop." + e.Name }

func (e *PropTransform) Describe() string {
	return fmt.Sprintf("%s(prop.%s)", e.Kind, e.Name)
}

func (e *Computed) Describe() string {
	parts := make([]string, len(e.Inputs))
	for i, in := range e.Inputs {
		parts[i] = in.Describe()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(parts, ", "))
}

func (e *EventRef) Describe() string { return "event." + e.Name }

func (e *AssetRef) Describe() string { return "asset." + e.Path }

func (e *ExternalRef) Describe() string { return "pkg." + e.Package + "." + e.Path }

func (e *List) Describe() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = it.Describe()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e *Object) Describe() string {
	keys := make([]string, 0, len(e.Entries))
	for k := range e.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " = " + e.Entries[k].Describe()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Str is shorthand for a literal string expression.
func Str(s string) *Lit { return &Lit{Value: cty.StringVal(s)} }

// Walk visits e and every nested expression in depth-first order. The visit
// function returning false prunes the subtree.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch x := e.(type) {
	case *TokenRef:
		Walk(x.Fallback, visit)
	case *Computed:
		for _, in := range x.Inputs {
			Walk(in, visit)
		}
	case *EventRef:
		for _, a := range x.ExtraArgs {
			Walk(a, visit)
		}
	case *List:
		for _, it := range x.Items {
			Walk(it, visit)
		}
	case *Object:
		keys := make([]string, 0, len(x.Entries))
		for k := range x.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			Walk(x.Entries[k], visit)
		}
	}
}

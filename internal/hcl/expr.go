package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
)

// Reference namespaces available inside expressions. `prop.label` reads a
// property, `token.color.primary` a design token, `pkg.base.color.bg` a
// token of another package, `asset.icons.check` an asset, `event.press` a
// declared event handler.
const (
	nsProp  = "prop"
	nsToken = "token"
	nsPkg   = "pkg"
	nsAsset = "asset"
	nsEvent = "event"
)

// expr translates one HCL expression into the model's expression sum.
// Constant expressions collapse to literals; anything unrecognized is
// reported as a warning and degrades to a null literal rather than
// failing the load.
func (t *translator) expr(e hcl.Expression) model.Expr {
	switch x := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return &model.Lit{Value: x.Val}

	case *hclsyntax.TemplateExpr:
		return t.template(x)

	case *hclsyntax.TemplateWrapExpr:
		return t.expr(x.Wrapped)

	case *hclsyntax.ParenthesesExpr:
		return t.expr(x.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		return t.traversal(x.Traversal, x.Range())

	case *hclsyntax.FunctionCallExpr:
		return t.call(x)

	case *hclsyntax.ConditionalExpr:
		return &model.Computed{
			Kind: model.ComputedTernary,
			Inputs: []model.Expr{
				t.expr(x.Condition),
				t.expr(x.TrueResult),
				t.expr(x.FalseResult),
			},
		}

	case *hclsyntax.UnaryOpExpr:
		if x.Op == hclsyntax.OpLogicalNot {
			if p, ok := t.expr(x.Val).(*model.PropRef); ok {
				return &model.PropTransform{Name: p.Name, Kind: model.TransformNegate}
			}
		}
		return t.constant(e)

	case *hclsyntax.ObjectConsExpr:
		entries := make(map[string]model.Expr, len(x.Items))
		for _, item := range x.Items {
			key, ok := t.objectKey(item.KeyExpr)
			if !ok {
				t.warn(e.Range(), "object key is not a static string")
				continue
			}
			entries[key] = t.expr(item.ValueExpr)
		}
		return &model.Object{Entries: entries}

	case *hclsyntax.TupleConsExpr:
		items := make([]model.Expr, 0, len(x.Exprs))
		for _, item := range x.Exprs {
			items = append(items, t.expr(item))
		}
		return &model.List{Items: items}

	default:
		return t.constant(e)
	}
}

// template turns a string template into a literal when it is constant and
// a concat chain when it interpolates.
func (t *translator) template(x *hclsyntax.TemplateExpr) model.Expr {
	if x.IsStringLiteral() {
		v, _ := x.Value(nil)
		return &model.Lit{Value: v}
	}
	parts := make([]model.Expr, 0, len(x.Parts))
	for _, part := range x.Parts {
		parts = append(parts, t.expr(part))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return &model.Computed{Kind: model.ComputedConcat, Inputs: parts}
}

// traversal maps a namespaced traversal onto the matching reference type.
func (t *translator) traversal(tr hcl.Traversal, rng hcl.Range) model.Expr {
	root, rest, ok := splitTraversal(tr)
	if !ok {
		t.warn(rng, "reference has no attribute path")
		return nullLit()
	}

	switch root {
	case nsProp:
		if len(rest) != 1 {
			t.warn(rng, fmt.Sprintf("prop reference %q must name exactly one property", strings.Join(rest, ".")))
			return nullLit()
		}
		return &model.PropRef{Name: rest[0]}

	case nsToken:
		return &model.TokenRef{Path: strings.Join(rest, ".")}

	case nsAsset:
		return &model.AssetRef{Path: strings.Join(rest, ".")}

	case nsEvent:
		if len(rest) != 1 {
			t.warn(rng, "event reference must name exactly one event")
			return nullLit()
		}
		return &model.EventRef{Name: rest[0]}

	case nsPkg:
		if len(rest) < 2 {
			t.warn(rng, "package reference needs a package name and a token path")
			return nullLit()
		}
		return &model.ExternalRef{Package: rest[0], Path: strings.Join(rest[1:], ".")}

	default:
		t.warn(rng, fmt.Sprintf("unknown reference namespace %q", root))
		return nullLit()
	}
}

// transformKinds maps function names onto property coercions.
var transformKinds = map[string]model.TransformKind{
	"bool":   model.TransformBool,
	"string": model.TransformString,
	"number": model.TransformNumber,
	"not":    model.TransformNegate,
	"upper":  model.TransformUpper,
	"lower":  model.TransformLower,
}

// computedKinds maps function names onto computed combinators.
var computedKinds = map[string]model.ComputedKind{
	"concat":     model.ComputedConcat,
	"template":   model.ComputedTemplate,
	"ternary":    model.ComputedTernary,
	"classnames": model.ComputedClassNames,
}

func (t *translator) call(x *hclsyntax.FunctionCallExpr) model.Expr {
	args := make([]model.Expr, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, t.expr(a))
	}

	switch {
	case x.Name == "fallback":
		if len(args) != 2 {
			t.warn(x.Range(), "fallback() takes a token reference and a fallback value")
			return nullLit()
		}
		switch ref := args[0].(type) {
		case *model.TokenRef:
			return &model.TokenRef{Path: ref.Path, Fallback: args[1]}
		default:
			t.warn(x.Range(), "fallback() first argument must be a token reference")
			return args[1]
		}

	case x.Name == "handler":
		return t.handlerCall(x, args)

	case transformKinds[x.Name] != "":
		if len(args) != 1 {
			t.warn(x.Range(), fmt.Sprintf("%s() takes exactly one property reference", x.Name))
			return nullLit()
		}
		if p, ok := args[0].(*model.PropRef); ok {
			return &model.PropTransform{Name: p.Name, Kind: transformKinds[x.Name]}
		}
		t.warn(x.Range(), fmt.Sprintf("%s() argument must be a property reference", x.Name))
		return args[0]

	case computedKinds[x.Name] != "":
		return &model.Computed{Kind: computedKinds[x.Name], Inputs: args}

	default:
		t.warn(x.Range(), fmt.Sprintf("unknown function %q", x.Name))
		return nullLit()
	}
}

// handlerCall builds an event reference with an extraction path and extra
// arguments: handler(event.press, "detail.value", prop.id).
func (t *translator) handlerCall(x *hclsyntax.FunctionCallExpr, args []model.Expr) model.Expr {
	if len(args) == 0 {
		t.warn(x.Range(), "handler() needs an event reference")
		return nullLit()
	}
	ev, ok := args[0].(*model.EventRef)
	if !ok {
		t.warn(x.Range(), "handler() first argument must be an event reference")
		return args[0]
	}
	out := &model.EventRef{Name: ev.Name}
	rest := args[1:]
	if len(rest) > 0 {
		if lit, ok := rest[0].(*model.Lit); ok && lit.Value.Type() == cty.String && !lit.Value.IsNull() {
			out.ExtractPath = lit.Value.AsString()
			rest = rest[1:]
		}
	}
	out.ExtraArgs = rest
	return out
}

// constant folds an expression that references nothing; expressions that
// need scope are reported and degrade to null.
func (t *translator) constant(e hcl.Expression) model.Expr {
	v, diags := e.Value(nil)
	if diags.HasErrors() {
		t.warn(e.Range(), "expression form is not supported")
		return nullLit()
	}
	return &model.Lit{Value: v}
}

func (t *translator) objectKey(e hclsyntax.Expression) (string, bool) {
	if wrap, ok := e.(*hclsyntax.ObjectConsKeyExpr); ok {
		if tr, ok := wrap.Wrapped.(*hclsyntax.ScopeTraversalExpr); ok && len(tr.Traversal) == 1 {
			if root, ok := tr.Traversal[0].(hcl.TraverseRoot); ok {
				return root.Name, true
			}
		}
		e = wrap.Wrapped
	}
	v, diags := e.Value(nil)
	if diags.HasErrors() || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

func splitTraversal(tr hcl.Traversal) (root string, rest []string, ok bool) {
	if len(tr) < 2 {
		return "", nil, false
	}
	r, isRoot := tr[0].(hcl.TraverseRoot)
	if !isRoot {
		return "", nil, false
	}
	for _, step := range tr[1:] {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			rest = append(rest, s.Name)
		case hcl.TraverseIndex:
			if s.Key.Type() == cty.String {
				rest = append(rest, s.Key.AsString())
			} else {
				return "", nil, false
			}
		default:
			return "", nil, false
		}
	}
	return r.Name, rest, true
}

func nullLit() model.Expr {
	return &model.Lit{Value: cty.NullVal(cty.DynamicPseudoType)}
}

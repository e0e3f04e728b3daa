// Package refs evaluates model expressions — token, property, asset, and
// computed references — against a property context and a flattened token
// table.
//
// Resolution is total and never raises: a missing token yields its fallback
// or the unresolved sentinel plus a recorded warning, a missing property
// yields a null that propagates. Structural failures are not this package's
// concern; the validator turns unresolved data into errors when asked.
//
// The current token context (e.g. light/dark) is threaded explicitly
// through the Resolver rather than captured from ambient state, so
// resolution stays a pure function of its inputs.
package refs

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/tokens"
)

// Resolver evaluates expressions against one fixed set of inputs. It is
// cheap to construct; build one per resolution request.
type Resolver struct {
	// Tokens is the merged, flattened token table.
	Tokens tokens.Table

	// External maps package name to that package's own token table, for
	// resolving pkg.<name>.<path> references.
	External map[string]tokens.Table

	// TokenContext selects the context for contextual tokens.
	TokenContext string

	// Props is the resolved property set of the enclosing component.
	Props map[string]cty.Value

	// AssetFn maps an asset path to its resolved value. When nil, asset
	// references resolve to the path itself.
	AssetFn func(path string) (cty.Value, bool)

	diags model.Diagnostics
}

// Diagnostics returns the warnings recorded so far, in order.
func (r *Resolver) Diagnostics() model.Diagnostics { return r.diags }

func (r *Resolver) warn(kind, path, ref, msg string) {
	r.diags = append(r.diags, model.Diagnostic{
		Severity:  model.SeverityWarning,
		Kind:      kind,
		Path:      path,
		Reference: ref,
		Message:   msg,
	})
}

// Resolve evaluates an expression to a concrete value. It is the single
// recursive entry point: identity for literals, recursion through nested
// containers, and the reference and computed rules for everything else.
func (r *Resolver) Resolve(e model.Expr) cty.Value {
	switch x := e.(type) {
	case nil:
		return cty.NilVal
	case *model.Lit:
		return x.Value
	case *model.TokenRef:
		return r.resolveToken(x)
	case *model.PropRef:
		return r.resolveProp(x.Name)
	case *model.PropTransform:
		return ApplyTransform(r.resolveProp(x.Name), x.Kind)
	case *model.Computed:
		return r.resolveComputed(x)
	case *model.EventRef:
		return r.resolveEvent(x)
	case *model.AssetRef:
		if r.AssetFn != nil {
			if v, ok := r.AssetFn(x.Path); ok {
				return v
			}
		}
		return cty.StringVal(x.Path)
	case *model.ExternalRef:
		return r.resolveExternal(x)
	case *model.List:
		if len(x.Items) == 0 {
			return cty.EmptyTupleVal
		}
		vals := make([]cty.Value, len(x.Items))
		for i, item := range x.Items {
			vals[i] = r.Resolve(item)
		}
		return cty.TupleVal(vals)
	case *model.Object:
		if len(x.Entries) == 0 {
			return cty.EmptyObjectVal
		}
		vals := make(map[string]cty.Value, len(x.Entries))
		for k, entry := range x.Entries {
			vals[k] = r.Resolve(entry)
		}
		return cty.ObjectVal(vals)
	}
	return cty.NilVal
}

// resolveToken looks a token up with context cascading. A miss falls back
// to the reference's own fallback expression when present, otherwise to the
// unresolved sentinel with a recorded warning.
func (r *Resolver) resolveToken(ref *model.TokenRef) cty.Value {
	if v, ok := r.Tokens.Resolve(ref.Path, r.TokenContext); ok {
		return v
	}
	if ref.Fallback != nil {
		return r.Resolve(ref.Fallback)
	}
	r.warn(model.DiagMissingToken, ref.Path, ref.Describe(),
		fmt.Sprintf("token %q not found", ref.Path))
	return Unresolved(ref.Path)
}

// resolveProp is a direct lookup. An absent property resolves to null and
// propagates; it is not an error at this layer.
func (r *Resolver) resolveProp(name string) cty.Value {
	if v, ok := r.Props[name]; ok {
		return v
	}
	return cty.NilVal
}

func (r *Resolver) resolveExternal(ref *model.ExternalRef) cty.Value {
	table, ok := r.External[ref.Package]
	if !ok {
		r.warn(model.DiagMissingPackage, ref.Path, ref.Describe(),
			fmt.Sprintf("package %q is not available", ref.Package))
		return Unresolved(ref.Package + "." + ref.Path)
	}
	if v, ok := table.Resolve(ref.Path, r.TokenContext); ok {
		return v
	}
	r.warn(model.DiagMissingToken, ref.Path, ref.Describe(),
		fmt.Sprintf("token %q not found in package %q", ref.Path, ref.Package))
	return Unresolved(ref.Package + "." + ref.Path)
}

// resolveEvent produces a handler descriptor for emitters: an object with
// the handler name and, when present, the extraction path and resolved
// extra arguments.
func (r *Resolver) resolveEvent(ref *model.EventRef) cty.Value {
	entries := map[string]cty.Value{
		"handler": cty.StringVal(ref.Name),
	}
	if ref.ExtractPath != "" {
		entries["extract"] = cty.StringVal(ref.ExtractPath)
	}
	if len(ref.ExtraArgs) > 0 {
		args := make([]cty.Value, len(ref.ExtraArgs))
		for i, a := range ref.ExtraArgs {
			args[i] = r.Resolve(a)
		}
		entries["args"] = cty.TupleVal(args)
	}
	return cty.ObjectVal(entries)
}

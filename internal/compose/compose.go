// Package compose resolves component-instance nodes into their target
// component's expanded tree and recursively flattens nested instances.
//
// The result of a Flatten call is reference-free: every expression is
// reduced to a literal, every instance marker replaced by its target's
// expanded tree, every slot target replaced by injected content or its
// declared fallback. Emitters consume that tree without touching the
// registry again.
//
// Failure handling follows the two-regime error model: a missing target
// component or a composition cycle is returned as an error; data-quality
// findings (missing tokens, absent properties) accumulate as warnings and
// never interrupt the pass.
package compose

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/refs"
	"github.com/weftui/weft/internal/registry"
)

// Resolver flattens component trees against one registry and token
// context. It is not safe for concurrent use; build one per resolution
// request (construction is free).
type Resolver struct {
	Registry *registry.Registry

	// TokenContext selects the context for contextual tokens, threaded
	// through every reference resolution in the pass.
	TokenContext string

	// AssetFn, when set, maps asset paths to resolved values.
	AssetFn func(path string) (cty.Value, bool)

	diags     model.Diagnostics
	expanding map[string]bool
	path      []string
}

// Diagnostics returns the warnings accumulated across the pass.
func (r *Resolver) Diagnostics() model.Diagnostics { return r.diags }

// refResolver builds a reference resolver scoped to one property set.
func (r *Resolver) refResolver(props map[string]cty.Value) *refs.Resolver {
	return &refs.Resolver{
		Tokens:       r.Registry.Tokens,
		External:     r.Registry.External,
		TokenContext: r.TokenContext,
		Props:        props,
		AssetFn:      r.AssetFn,
	}
}

func (r *Resolver) collect(rr *refs.Resolver) {
	r.diags = append(r.diags, rr.Diagnostics()...)
}

// ResolveInstance resolves an instance node's bindings against its target
// component. The returned property set is built lowest to highest
// precedence: component-declared defaults (including legacy properties),
// instance variant overrides treated as property values, then explicit
// property bindings resolved against the parent's own properties. Explicit
// bindings always win.
//
// A missing target is a structural failure returned as
// *ComponentNotFoundError.
func (r *Resolver) ResolveInstance(
	inst *model.Instance,
	parentProps map[string]cty.Value,
	parentSlots map[string][]*model.Node,
) (*model.ComponentDef, map[string]cty.Value, map[string][]*model.Node, error) {
	def, ok := r.Registry.Component(inst.Target)
	if !ok {
		return nil, nil, nil, &ComponentNotFoundError{Name: inst.Target}
	}

	props := make(map[string]cty.Value)

	// Defaults resolve in the target's own scope: no parent properties.
	defScope := r.refResolver(nil)
	for name, fallback := range def.LegacyProps {
		props[name] = defScope.Resolve(fallback)
	}
	for _, p := range def.Props {
		if p.Default != nil {
			props[p.Name] = defScope.Resolve(p.Default)
		}
	}
	r.collect(defScope)

	for axis, value := range inst.Variants {
		props[axis] = cty.StringVal(value)
	}

	parentScope := r.refResolver(parentProps)
	for name, binding := range inst.Props {
		props[name] = parentScope.Resolve(binding)
	}

	slots := make(map[string][]*model.Node, len(inst.Slots))
	for name, binding := range inst.Slots {
		bound, err := r.resolveSlotBinding(binding, parentProps, parentSlots)
		if err != nil {
			return nil, nil, nil, err
		}
		slots[name] = bound
	}
	r.collect(parentScope)

	return def, props, slots, nil
}

// resolveSlotBinding turns one slot binding into expanded node content. A
// literal string becomes a synthetic text leaf; a property reference
// resolves and is stringified into a text leaf; a slot-forward reference
// substitutes the parent's own content for that slot (empty if absent);
// node content is expanded in the parent's scope and passes through.
func (r *Resolver) resolveSlotBinding(
	binding *model.SlotBinding,
	parentProps map[string]cty.Value,
	parentSlots map[string][]*model.Node,
) ([]*model.Node, error) {
	switch {
	case binding == nil:
		return nil, nil

	case binding.HasText:
		return []*model.Node{textLeaf(binding.Text)}, nil

	case binding.FromProp != "":
		scope := r.refResolver(parentProps)
		text := refs.Stringify(scope.Resolve(&model.PropRef{Name: binding.FromProp}))
		r.collect(scope)
		return []*model.Node{textLeaf(text)}, nil

	case binding.Forward != "":
		return parentSlots[binding.Forward], nil

	default:
		// Node content resolves in the parent's scope before injection,
		// so its references see the parent's properties.
		var out []*model.Node
		for _, n := range binding.Nodes {
			expanded, err := r.expand(n, parentProps, parentSlots)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
		return out, nil
	}
}

// Flatten expands the named component into a reference-free tree. Callers
// accepting untrusted packages must run the dependency-graph cycle check
// first; Flatten's own expanding-set guard exists so a skipped pre-check
// still fails fast with *CycleError rather than recursing unboundedly.
func (r *Resolver) Flatten(
	component string,
	props map[string]cty.Value,
	slots map[string][]*model.Node,
) (*model.Node, error) {
	if r.expanding == nil {
		r.expanding = make(map[string]bool)
	}

	name := registry.NormalizeName(component)
	def, ok := r.Registry.Component(name)
	if !ok {
		return nil, &ComponentNotFoundError{Name: component}
	}

	if r.expanding[name] {
		return nil, &CycleError{Path: append(append([]string{}, r.path...), name)}
	}
	r.expanding[name] = true
	r.path = append(r.path, name)
	defer func() {
		delete(r.expanding, name)
		r.path = r.path[:len(r.path)-1]
	}()

	expanded, err := r.expand(def.Root, props, slots)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 1 {
		return expanded[0], nil
	}
	// A root slot target can legally expand to zero or several nodes;
	// wrap so the caller always receives a single tree.
	return &model.Node{Kind: "fragment", Children: expanded}, nil
}

// expand resolves one node in the given scope. Slot targets may expand to
// zero or several nodes, hence the slice result.
func (r *Resolver) expand(
	n *model.Node,
	props map[string]cty.Value,
	slots map[string][]*model.Node,
) ([]*model.Node, error) {
	if n == nil {
		return nil, nil
	}

	if n.IsSlotTarget() {
		if content, ok := slots[n.SlotTarget]; ok && len(content) > 0 {
			return content, nil
		}
		var fallback []*model.Node
		for _, fb := range n.SlotFallback {
			expanded, err := r.expand(fb, props, slots)
			if err != nil {
				return nil, err
			}
			fallback = append(fallback, expanded...)
		}
		return fallback, nil
	}

	if n.IsInstance() {
		def, childProps, childSlots, err := r.ResolveInstance(n.Instance, props, slots)
		if err != nil {
			return nil, err
		}
		subtree, err := r.Flatten(def.Name, childProps, childSlots)
		if err != nil {
			return nil, err
		}
		// The use site may override presentation of the target's root.
		if n.Name != "" {
			subtree.Name = n.Name
		}
		if len(n.Styles) > 0 {
			scope := r.refResolver(props)
			subtree.Styles = subtree.Styles.Merge(r.resolveStyleSet(scope, n.Styles))
			r.collect(scope)
		}
		return []*model.Node{subtree}, nil
	}

	scope := r.refResolver(props)
	out := &model.Node{
		Name:       n.Name,
		Kind:       n.Kind,
		Styles:     r.resolveStyleSet(scope, n.Styles),
		SlotTarget: "",
	}
	if n.Text != nil {
		out.Text = &model.Lit{Value: scope.Resolve(n.Text)}
	}
	if len(n.VariantStyles) > 0 {
		out.VariantStyles = make(map[string]map[string]model.StyleSet, len(n.VariantStyles))
		for axis, byValue := range n.VariantStyles {
			resolved := make(map[string]model.StyleSet, len(byValue))
			for value, styles := range byValue {
				resolved[value] = r.resolveStyleSet(scope, styles)
			}
			out.VariantStyles[axis] = resolved
		}
	}
	for _, rule := range n.CompoundVariants {
		out.CompoundVariants = append(out.CompoundVariants, &model.CompoundVariant{
			When:   rule.When,
			Styles: r.resolveStyleSet(scope, rule.Styles),
		})
	}
	if len(n.States) > 0 {
		out.States = make(map[string]*model.StateStyles, len(n.States))
		for state, entry := range n.States {
			out.States[state] = r.resolveStateStyles(scope, entry)
		}
	}
	if len(n.Events) > 0 {
		out.Events = make(map[string]model.Expr, len(n.Events))
		for name, handler := range n.Events {
			out.Events[name] = &model.Lit{Value: scope.Resolve(handler)}
		}
	}
	r.collect(scope)

	for _, c := range n.Children {
		expanded, err := r.expand(c, props, slots)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, expanded...)
	}
	return []*model.Node{out}, nil
}

func (r *Resolver) resolveStyleSet(scope *refs.Resolver, styles model.StyleSet) model.StyleSet {
	if styles == nil {
		return nil
	}
	resolved := make(model.StyleSet, len(styles))
	for k, v := range styles {
		resolved[k] = &model.Lit{Value: scope.Resolve(v)}
	}
	return resolved
}

func (r *Resolver) resolveStateStyles(scope *refs.Resolver, entry *model.StateStyles) *model.StateStyles {
	if entry == nil {
		return nil
	}
	out := &model.StateStyles{}
	if entry.Flat != nil {
		out.Flat = r.resolveStyleSet(scope, entry.Flat)
		return out
	}
	out.PerAxis = make(map[string]map[string]model.StyleSet, len(entry.PerAxis))
	for axis, byValue := range entry.PerAxis {
		resolved := make(map[string]model.StyleSet, len(byValue))
		for value, styles := range byValue {
			resolved[value] = r.resolveStyleSet(scope, styles)
		}
		out.PerAxis[axis] = resolved
	}
	return out
}

func textLeaf(text string) *model.Node {
	return &model.Node{Kind: "text", Text: model.Str(text)}
}

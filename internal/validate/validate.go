// Package validate walks a merged package with the resolution primitives in
// read-only mode and produces diagnostics: reference validity, composition
// cycles, variant-default integrity, and required prop/slot coverage.
//
// Validation never raises. Invalidity is communicated only through the
// returned Result; whether errors fail a build is entirely the caller's
// decision. Warnings never do.
package validate

import (
	"fmt"
	"sort"

	"github.com/weftui/weft/internal/dag"
	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/registry"
)

// Result is the outcome of one validation run.
type Result struct {
	Valid    bool
	Errors   model.Diagnostics
	Warnings model.Diagnostics
}

func (r *Result) add(d model.Diagnostic) {
	if d.Severity == model.SeverityError {
		r.Errors = append(r.Errors, d)
	} else {
		r.Warnings = append(r.Warnings, d)
	}
}

func (r *Result) finish() *Result {
	r.Valid = len(r.Errors) == 0
	return r
}

// Package checks every component tree in the registry: token references
// against the flattened token table, property references against the
// enclosing component's declared surface, component references against the
// merged component table, and each variant axis's default against its own
// value set. Composition cycles are appended last.
func Package(reg *registry.Registry) *Result {
	res := &Result{}

	for _, name := range reg.ComponentNames() {
		def := reg.Components[name]
		w := &walker{reg: reg, def: def, res: res, declared: declaredProps(def)}

		for _, axis := range def.Variants {
			if !axis.HasValue(axis.Default) {
				res.add(model.Diagnostic{
					Severity: model.SeverityError,
					Kind:     model.DiagInvalidVariantDefault,
					Path:     name + "/" + axis.Name,
					Message: fmt.Sprintf(
						"variant %q default %q is not in its value set %v",
						axis.Name, axis.Default, axis.Values),
				})
			}
		}

		w.walkNode(def.Root, name)
	}

	for _, cycle := range dag.Build(reg).Cycles() {
		res.add(model.Diagnostic{
			Severity: model.SeverityError,
			Kind:     model.DiagCircularReference,
			Path:     cycle[0],
			Message:  fmt.Sprintf("circular component reference: %v", cycle),
		})
	}

	return res.finish()
}

// declaredProps is the surface a property reference may target: declared
// props, legacy flat properties, and the component's own variant axis
// names.
func declaredProps(def *model.ComponentDef) map[string]bool {
	declared := make(map[string]bool)
	for _, p := range def.Props {
		declared[p.Name] = true
	}
	for name := range def.LegacyProps {
		declared[name] = true
	}
	for _, axis := range def.Variants {
		declared[axis.Name] = true
	}
	return declared
}

type walker struct {
	reg      *registry.Registry
	def      *model.ComponentDef
	res      *Result
	declared map[string]bool
}

func (w *walker) walkNode(n *model.Node, path string) {
	if n == nil {
		return
	}

	w.checkExpr(n.Text, path)
	w.checkStyles(n.Styles, path)
	for _, byValue := range n.VariantStyles {
		for _, styles := range byValue {
			w.checkStyles(styles, path)
		}
	}
	for _, rule := range n.CompoundVariants {
		w.checkStyles(rule.Styles, path)
	}
	for _, entry := range n.States {
		if entry == nil {
			continue
		}
		w.checkStyles(entry.Flat, path)
		for _, byValue := range entry.PerAxis {
			for _, styles := range byValue {
				w.checkStyles(styles, path)
			}
		}
	}
	for _, handler := range n.Events {
		w.checkExpr(handler, path)
	}

	if inst := n.Instance; inst != nil {
		target, ok := w.reg.Component(inst.Target)
		if !ok {
			w.res.add(model.Diagnostic{
				Severity:  model.SeverityError,
				Kind:      model.DiagMissingComponent,
				Path:      path,
				Reference: inst.Target,
				Message:   fmt.Sprintf("component %q not found", inst.Target),
			})
		}
		for _, binding := range sortedExprs(inst.Props) {
			w.checkExpr(binding, path)
		}
		for _, handler := range sortedExprs(inst.Events) {
			w.checkExpr(handler, path)
		}
		if ok {
			w.checkVariantOverrides(inst, target, path)
		}
		for _, slotName := range sortedSlotNames(inst.Slots) {
			binding := inst.Slots[slotName]
			if binding.FromProp != "" {
				w.checkExpr(&model.PropRef{Name: binding.FromProp}, path)
			}
			for _, bound := range binding.Nodes {
				w.walkNode(bound, path+"."+nodeLabel(bound))
			}
		}
	}

	for _, fb := range n.SlotFallback {
		w.walkNode(fb, path+"."+nodeLabel(fb))
	}
	for _, c := range n.Children {
		w.walkNode(c, path+"."+nodeLabel(c))
	}
}

func (w *walker) checkVariantOverrides(inst *model.Instance, target *model.ComponentDef, path string) {
	axes := make([]string, 0, len(inst.Variants))
	for axis := range inst.Variants {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	for _, axisName := range axes {
		value := inst.Variants[axisName]
		axis, ok := target.Axis(axisName)
		if !ok || !axis.HasValue(value) {
			w.res.add(model.Diagnostic{
				Severity:  model.SeverityWarning,
				Kind:      model.DiagInvalidVariantValue,
				Path:      path,
				Reference: inst.Target,
				Message: fmt.Sprintf(
					"variant override %s=%q does not match an axis value of %q",
					axisName, value, target.Name),
			})
		}
	}
}

func (w *walker) checkStyles(styles model.StyleSet, path string) {
	for _, key := range sortedKeys(styles) {
		w.checkExpr(styles[key], path)
	}
}

// checkExpr validates every reference nested inside an expression. A token
// reference with a fallback degrades to a warning: it still resolves, but
// the author probably wants to know.
func (w *walker) checkExpr(e model.Expr, path string) {
	model.Walk(e, func(x model.Expr) bool {
		switch ref := x.(type) {
		case *model.TokenRef:
			if _, ok := w.reg.Tokens[ref.Path]; !ok {
				sev := model.SeverityError
				if ref.Fallback != nil {
					sev = model.SeverityWarning
				}
				w.res.add(model.Diagnostic{
					Severity:  sev,
					Kind:      model.DiagMissingToken,
					Path:      path,
					Reference: ref.Describe(),
					Message:   fmt.Sprintf("token %q not found", ref.Path),
				})
			}
		case *model.PropRef:
			w.checkPropName(ref.Name, ref.Describe(), path)
		case *model.PropTransform:
			w.checkPropName(ref.Name, ref.Describe(), path)
		case *model.ExternalRef:
			table, ok := w.reg.External[ref.Package]
			if !ok {
				w.res.add(model.Diagnostic{
					Severity:  model.SeverityError,
					Kind:      model.DiagMissingPackage,
					Path:      path,
					Reference: ref.Describe(),
					Message:   fmt.Sprintf("package %q is not available", ref.Package),
				})
			} else if _, ok := table[ref.Path]; !ok {
				w.res.add(model.Diagnostic{
					Severity:  model.SeverityError,
					Kind:      model.DiagMissingToken,
					Path:      path,
					Reference: ref.Describe(),
					Message:   fmt.Sprintf("token %q not found in package %q", ref.Path, ref.Package),
				})
			}
		}
		return true
	})
}

func (w *walker) checkPropName(name, ref, path string) {
	if w.declared[name] {
		return
	}
	w.res.add(model.Diagnostic{
		Severity:  model.SeverityError,
		Kind:      model.DiagMissingProp,
		Path:      path,
		Reference: ref,
		Message: fmt.Sprintf("property %q is not declared by component %q",
			name, w.def.Name),
	})
}

func nodeLabel(n *model.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if n.Kind != "" {
		return n.Kind
	}
	return "node"
}

func sortedKeys(styles model.StyleSet) []string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedExprs(m map[string]model.Expr) []model.Expr {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.Expr, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func sortedSlotNames(m map[string]*model.SlotBinding) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

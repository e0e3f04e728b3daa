package validate

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/registry"
)

// Props checks instance-side usage against target-side declarations:
// required properties with neither a binding nor a target default, enum
// properties bound to static out-of-set values, required slots left
// unbound, and use of deprecated components or properties.
//
// Targets that do not exist are skipped here; Package already reports
// them.
func Props(reg *registry.Registry) *Result {
	res := &Result{}
	for _, name := range reg.ComponentNames() {
		walkInstances(reg.Components[name].Root, name, func(inst *model.Instance, path string) {
			target, ok := reg.Component(inst.Target)
			if !ok {
				return
			}
			checkInstance(res, inst, target, path)
		})
	}
	return res.finish()
}

func checkInstance(res *Result, inst *model.Instance, target *model.ComponentDef, path string) {
	if target.Deprecated != "" {
		res.add(model.Diagnostic{
			Severity:  model.SeverityWarning,
			Kind:      model.DiagDeprecated,
			Path:      path,
			Reference: target.Name,
			Message:   fmt.Sprintf("component %q is deprecated: %s", target.Name, target.Deprecated),
		})
	}

	for _, p := range target.Props {
		_, bound := inst.Props[p.Name]
		_, overridden := inst.Variants[p.Name]

		if p.Required && !bound && !overridden && p.Default == nil {
			res.add(model.Diagnostic{
				Severity:  model.SeverityError,
				Kind:      model.DiagMissingRequiredProp,
				Path:      path,
				Reference: target.Name,
				Message: fmt.Sprintf(
					"required property %q of %q has no binding and no default",
					p.Name, target.Name),
			})
		}
		if !bound {
			continue
		}
		if p.Deprecated != "" {
			res.add(model.Diagnostic{
				Severity:  model.SeverityWarning,
				Kind:      model.DiagDeprecated,
				Path:      path,
				Reference: target.Name,
				Message: fmt.Sprintf("property %q of %q is deprecated: %s",
					p.Name, target.Name, p.Deprecated),
			})
		}
		// Only statically-known bindings can be checked against the enum;
		// dynamic expressions are a runtime concern.
		if len(p.Enum) > 0 {
			if value, ok := staticString(inst.Props[p.Name]); ok && !contains(p.Enum, value) {
				res.add(model.Diagnostic{
					Severity:  model.SeverityError,
					Kind:      model.DiagInvalidEnumValue,
					Path:      path,
					Reference: target.Name,
					Message: fmt.Sprintf(
						"property %q of %q is bound to %q, not one of %v",
						p.Name, target.Name, value, p.Enum),
				})
			}
		}
	}

	for _, s := range target.Slots {
		if !s.Required {
			continue
		}
		if binding := inst.Slots[s.Name]; binding == nil {
			res.add(model.Diagnostic{
				Severity:  model.SeverityError,
				Kind:      model.DiagMissingRequiredSlot,
				Path:      path,
				Reference: target.Name,
				Message: fmt.Sprintf(
					"required slot %q of %q has no binding", s.Name, target.Name),
			})
		}
	}
}

// walkInstances visits every instance node in a component tree, including
// those nested inside slot bindings and slot fallbacks.
func walkInstances(n *model.Node, path string, visit func(*model.Instance, string)) {
	if n == nil {
		return
	}
	if inst := n.Instance; inst != nil {
		visit(inst, path)
		for _, binding := range inst.Slots {
			if binding == nil {
				continue
			}
			for _, bound := range binding.Nodes {
				walkInstances(bound, path+"."+nodeLabel(bound), visit)
			}
		}
	}
	for _, fb := range n.SlotFallback {
		walkInstances(fb, path+"."+nodeLabel(fb), visit)
	}
	for _, c := range n.Children {
		walkInstances(c, path+"."+nodeLabel(c), visit)
	}
}

func staticString(e model.Expr) (string, bool) {
	lit, ok := e.(*model.Lit)
	if !ok || lit.Value.IsNull() || lit.Value.Type() != cty.String {
		return "", false
	}
	return lit.Value.AsString(), true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

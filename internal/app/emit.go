package app

import (
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/refs"
)

// nodeJSON renders one flattened node as a JSON-ready map. Flatten has
// already reduced every expression to a literal, so values serialize
// directly; an unresolved token sentinel renders as an explicit marker
// object instead of failing the encode.
func nodeJSON(n *model.Node) map[string]any {
	if n == nil {
		return nil
	}
	out := make(map[string]any)
	if n.Name != "" {
		out["name"] = n.Name
	}
	if n.Kind != "" {
		out["kind"] = n.Kind
	}
	if n.Text != nil {
		out["text"] = exprJSON(n.Text)
	}
	if len(n.Styles) > 0 {
		out["styles"] = stylesJSON(n.Styles)
	}
	if len(n.VariantStyles) > 0 {
		variants := make(map[string]any, len(n.VariantStyles))
		for axis, byValue := range n.VariantStyles {
			values := make(map[string]any, len(byValue))
			for value, styles := range byValue {
				values[value] = stylesJSON(styles)
			}
			variants[axis] = values
		}
		out["variants"] = variants
	}
	if len(n.CompoundVariants) > 0 {
		rules := make([]any, 0, len(n.CompoundVariants))
		for _, rule := range n.CompoundVariants {
			rules = append(rules, map[string]any{
				"when":   rule.When,
				"styles": stylesJSON(rule.Styles),
			})
		}
		out["compound"] = rules
	}
	if len(n.States) > 0 {
		states := make(map[string]any, len(n.States))
		for name, entry := range n.States {
			states[name] = stateJSON(entry)
		}
		out["states"] = states
	}
	if len(n.Events) > 0 {
		events := make(map[string]any, len(n.Events))
		for name, handler := range n.Events {
			events[name] = exprJSON(handler)
		}
		out["events"] = events
	}
	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, nodeJSON(c))
		}
		out["children"] = children
	}
	return out
}

func stateJSON(entry *model.StateStyles) map[string]any {
	if entry == nil {
		return nil
	}
	if entry.Flat != nil {
		return map[string]any{"styles": stylesJSON(entry.Flat)}
	}
	perAxis := make(map[string]any, len(entry.PerAxis))
	for axis, byValue := range entry.PerAxis {
		values := make(map[string]any, len(byValue))
		for value, styles := range byValue {
			values[value] = stylesJSON(styles)
		}
		perAxis[axis] = values
	}
	return map[string]any{"variants": perAxis}
}

func stylesJSON(styles model.StyleSet) map[string]any {
	out := make(map[string]any, len(styles))
	for key, value := range styles {
		out[key] = exprJSON(value)
	}
	return out
}

func exprJSON(e model.Expr) any {
	lit, ok := e.(*model.Lit)
	if !ok {
		return e.Describe()
	}
	if refs.IsUnresolved(lit.Value) {
		return map[string]any{"unresolved": refs.UnresolvedPath(lit.Value)}
	}
	if lit.Value.IsNull() {
		return nil
	}
	return ctyjson.SimpleJSONValue{Value: lit.Value}
}

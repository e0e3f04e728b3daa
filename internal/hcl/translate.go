package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
	"github.com/weftui/weft/internal/schema"
	"github.com/weftui/weft/internal/variants"
)

// translator converts the HCL-facing schema structs into the agnostic
// model, accumulating load warnings as it goes. One translator covers one
// file.
type translator struct {
	filename string
	diags    model.Diagnostics
}

func (t *translator) warn(rng hcl.Range, msg string) {
	t.diags = append(t.diags, model.Diagnostic{
		Severity: model.SeverityWarning,
		Kind:     model.DiagUnreadableSource,
		Path:     rng.String(),
		Message:  msg,
	})
}

func (t *translator) component(sc *schema.Component) *model.ComponentDef {
	def := &model.ComponentDef{
		Name:       sc.Name,
		Deprecated: sc.Deprecated,
	}

	for _, v := range sc.Variants {
		axis := &model.VariantAxis{Name: v.Name, Values: v.Values, Default: v.Default}
		// An omitted default means the first declared value.
		if axis.Default == "" && len(axis.Values) > 0 {
			axis.Default = axis.Values[0]
		}
		def.Variants = append(def.Variants, axis)
	}

	for _, p := range sc.Props {
		prop := &model.PropDef{
			Name:       p.Name,
			Type:       p.Type,
			Required:   p.Required,
			Enum:       p.Enum,
			Deprecated: p.Deprecated,
		}
		if p.Default != nil {
			prop.Default = t.expr(p.Default)
		}
		def.Props = append(def.Props, prop)
	}

	for _, s := range sc.Slots {
		def.Slots = append(def.Slots, &model.SlotDef{
			Name:        s.Name,
			Required:    s.Required,
			Description: s.Description,
		})
	}
	for _, e := range sc.Events {
		def.Events = append(def.Events, &model.EventDef{
			Name:        e.Name,
			Description: e.Description,
		})
	}

	if sc.Properties != nil {
		def.LegacyProps = t.exprMap(sc.Properties)
	}

	if sc.Root != nil {
		def.Root = t.node(sc.Root)
	}
	return def
}

func (t *translator) node(sn *schema.Node) *model.Node {
	n := &model.Node{
		Name:       sn.Name,
		Kind:       sn.Kind,
		SlotTarget: sn.Slot,
	}

	if sn.Text != nil {
		n.Text = t.expr(sn.Text)
	}
	if sn.Styles != nil {
		n.Styles = t.styleSet(sn.Styles.Body)
	}

	for _, v := range sn.Variants {
		if n.VariantStyles == nil {
			n.VariantStyles = make(map[string]map[string]model.StyleSet)
		}
		byValue := n.VariantStyles[v.Axis]
		if byValue == nil {
			byValue = make(map[string]model.StyleSet)
			n.VariantStyles[v.Axis] = byValue
		}
		byValue[v.Value] = t.styleSet(v.Body)
	}

	for _, c := range sn.Compounds {
		n.CompoundVariants = append(n.CompoundVariants, &model.CompoundVariant{
			When:   t.whenMap(c.When),
			Styles: t.styleSet(c.Body),
		})
	}

	for _, s := range sn.States {
		if n.States == nil {
			n.States = make(map[string]*model.StateStyles)
		}
		n.States[s.Name] = t.stateStyles(s)
	}
	if sn.LegacyStates != nil {
		t.legacyStates(sn, n)
	}

	if sn.Component != "" {
		n.Instance = t.instance(sn)
	} else if sn.On != nil {
		n.Events = t.exprMap(sn.On)
	}

	children := make([]*model.Node, 0, len(sn.Nodes))
	for _, c := range sn.Nodes {
		children = append(children, t.node(c))
	}
	// A slot target's children are its fallback content.
	if n.IsSlotTarget() {
		n.SlotFallback = children
	} else {
		n.Children = children
	}
	return n
}

func (t *translator) instance(sn *schema.Node) *model.Instance {
	inst := &model.Instance{Target: sn.Component}
	if sn.Props != nil {
		inst.Props = t.exprMap(sn.Props)
	}
	if sn.VariantsAttr != nil {
		inst.Variants = t.stringMap(sn.VariantsAttr)
	}
	if sn.On != nil {
		inst.Events = t.exprMap(sn.On)
	}
	for _, b := range sn.Binds {
		if inst.Slots == nil {
			inst.Slots = make(map[string]*model.SlotBinding)
		}
		binding := &model.SlotBinding{
			FromProp: b.FromProp,
			Forward:  b.Forward,
		}
		if b.Text != nil {
			binding.Text = *b.Text
			binding.HasText = true
		}
		for _, bn := range b.Nodes {
			binding.Nodes = append(binding.Nodes, t.node(bn))
		}
		inst.Slots[b.Slot] = binding
	}
	return inst
}

// stateStyles reads one typed state block. Flat attributes and per-axis
// variant blocks are mutually exclusive; a block carrying both is flagged
// and read as flat.
func (t *translator) stateStyles(s *schema.State) *model.StateStyles {
	flat := t.styleSet(s.Body)
	if len(s.Variants) == 0 {
		return &model.StateStyles{Flat: flat}
	}
	if len(flat) > 0 {
		t.diags = append(t.diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Kind:     model.DiagAmbiguousStateShape,
			Path:     t.filename,
			Message: fmt.Sprintf(
				"state %q mixes flat styles with per-variant blocks; using the flat styles", s.Name),
		})
		return &model.StateStyles{Flat: flat}
	}
	perAxis := make(map[string]map[string]model.StyleSet)
	for _, v := range s.Variants {
		byValue := perAxis[v.Axis]
		if byValue == nil {
			byValue = make(map[string]model.StyleSet)
			perAxis[v.Axis] = byValue
		}
		byValue[v.Value] = t.styleSet(v.Body)
	}
	return &model.StateStyles{PerAxis: perAxis}
}

// legacyStates reads the untyped `states` attribute, classifying each
// entry's shape heuristically.
func (t *translator) legacyStates(sn *schema.Node, n *model.Node) {
	entries := t.exprMap(sn.LegacyStates)
	for name, entry := range entries {
		obj, ok := entry.(*model.Object)
		if !ok {
			t.warn(sn.LegacyStates.Range(), fmt.Sprintf("state %q is not an object", name))
			continue
		}
		classified, ambiguous := variants.ClassifyStateEntry(obj.Entries)
		if ambiguous {
			t.diags = append(t.diags, model.Diagnostic{
				Severity: model.SeverityWarning,
				Kind:     model.DiagAmbiguousStateShape,
				Path:     t.filename,
				Message: fmt.Sprintf(
					"state %q mixes flat style keys with per-variant tables; read as flat styles", name),
			})
		}
		if n.States == nil {
			n.States = make(map[string]*model.StateStyles)
		}
		// Typed state blocks win over a legacy entry of the same name.
		if _, exists := n.States[name]; !exists {
			n.States[name] = classified
		}
	}
}

// styleSet reads every attribute of a body as one style property.
func (t *translator) styleSet(body hcl.Body) model.StyleSet {
	if body == nil {
		return nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		t.warn(rangeOf(body), diags.Error())
	}
	if len(attrs) == 0 {
		return nil
	}
	set := make(model.StyleSet, len(attrs))
	for name, attr := range attrs {
		set[name] = t.expr(attr.Expr)
	}
	return set
}

// exprMap reads an object expression into a name-to-expression map.
func (t *translator) exprMap(e hcl.Expression) map[string]model.Expr {
	obj, ok := t.expr(e).(*model.Object)
	if !ok {
		t.warn(e.Range(), "expected an object")
		return nil
	}
	return obj.Entries
}

// stringMap reads an object of static strings, for variant selections.
func (t *translator) stringMap(e hcl.Expression) map[string]string {
	out := make(map[string]string)
	for key, value := range t.exprMap(e) {
		lit, ok := value.(*model.Lit)
		if !ok || lit.Value.IsNull() || lit.Value.Type() != cty.String {
			t.warn(e.Range(), fmt.Sprintf("value for %q must be a static string", key))
			continue
		}
		out[key] = lit.Value.AsString()
	}
	return out
}

// whenMap reads a compound rule's condition object.
func (t *translator) whenMap(e hcl.Expression) map[string]string {
	m := t.stringMap(e)
	if len(m) == 0 {
		t.warn(e.Range(), "compound rule matches nothing")
	}
	return m
}

func rangeOf(body hcl.Body) hcl.Range {
	if ranged, ok := body.(interface{ MissingItemRange() hcl.Range }); ok {
		return ranged.MissingItemRange()
	}
	return hcl.Range{}
}

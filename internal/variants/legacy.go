package variants

import (
	"github.com/weftui/weft/internal/model"
)

// knownStyleProps is the allow-list used to classify legacy interaction-state
// entries whose shape (flat vs. per-axis) the source data does not declare.
var knownStyleProps = map[string]bool{
	"alignItems": true, "background": true, "backgroundColor": true,
	"border": true, "borderColor": true, "borderRadius": true,
	"borderStyle": true, "borderWidth": true, "bottom": true,
	"boxShadow": true, "color": true, "cursor": true, "display": true,
	"fill": true, "flexDirection": true, "fontFamily": true,
	"fontSize": true, "fontWeight": true, "gap": true, "height": true,
	"justifyContent": true, "left": true, "letterSpacing": true,
	"lineHeight": true, "margin": true, "maxHeight": true,
	"maxWidth": true, "minHeight": true, "minWidth": true,
	"opacity": true, "outline": true, "overflow": true, "padding": true,
	"position": true, "right": true, "shadow": true, "stroke": true,
	"textAlign": true, "textDecoration": true, "textTransform": true,
	"top": true, "transform": true, "transition": true, "width": true,
	"zIndex": true,
}

// ClassifyStateEntry classifies a legacy untyped state entry into the
// explicit StateStyles sum. This is a one-time import shim for data
// predating the typed format; new data declares its shape and never passes
// through here.
//
// The entry is treated as flat when its top-level keys are known style
// property names or its values look like style leaves; otherwise it is
// treated as per-axis. The second return reports whether the entry mixed
// both readings: the flat interpretation is used, but callers should record
// a warning instead of guessing silently.
func ClassifyStateEntry(entry map[string]model.Expr) (*model.StateStyles, bool) {
	if len(entry) == 0 {
		return &model.StateStyles{Flat: model.StyleSet{}}, false
	}

	flatKeys, axisKeys := 0, 0
	for key, value := range entry {
		if knownStyleProps[key] || looksLikeStyleLeaf(value) {
			flatKeys++
		} else if looksLikeAxisTable(value) {
			axisKeys++
		} else {
			flatKeys++
		}
	}

	if axisKeys == 0 {
		flat := make(model.StyleSet, len(entry))
		for k, v := range entry {
			flat[k] = v
		}
		return &model.StateStyles{Flat: flat}, false
	}

	if flatKeys == 0 {
		perAxis := make(map[string]map[string]model.StyleSet, len(entry))
		for axis, value := range entry {
			perAxis[axis] = axisTable(value)
		}
		return &model.StateStyles{PerAxis: perAxis}, false
	}

	// Mixed shape: take the flat reading, flag the ambiguity.
	flat := make(model.StyleSet, len(entry))
	for k, v := range entry {
		flat[k] = v
	}
	return &model.StateStyles{Flat: flat}, true
}

// looksLikeStyleLeaf reports whether an expression is plausible as a single
// style value: any scalar or reference, or an object shaped like a color or
// dimension leaf.
func looksLikeStyleLeaf(e model.Expr) bool {
	obj, ok := e.(*model.Object)
	if !ok {
		return true
	}
	for key := range obj.Entries {
		switch key {
		case "r", "g", "b", "a", "h", "s", "l", "value", "unit":
		default:
			return false
		}
	}
	return len(obj.Entries) > 0
}

// looksLikeAxisTable reports whether an expression is shaped like
// value→styles, i.e. an object whose entries are themselves objects.
func looksLikeAxisTable(e model.Expr) bool {
	obj, ok := e.(*model.Object)
	if !ok || len(obj.Entries) == 0 {
		return false
	}
	for _, v := range obj.Entries {
		if _, ok := v.(*model.Object); !ok {
			return false
		}
	}
	return true
}

func axisTable(e model.Expr) map[string]model.StyleSet {
	obj, ok := e.(*model.Object)
	if !ok {
		return nil
	}
	table := make(map[string]model.StyleSet, len(obj.Entries))
	for value, styles := range obj.Entries {
		inner, ok := styles.(*model.Object)
		if !ok {
			continue
		}
		set := make(model.StyleSet, len(inner.Entries))
		for k, v := range inner.Entries {
			set[k] = v
		}
		table[value] = set
	}
	return table
}

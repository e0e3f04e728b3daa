package refs

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/weftui/weft/internal/model"
)

// ApplyTransform applies a pure coercion to a resolved value. Nulls and
// unresolved sentinels pass through untouched so absence keeps propagating;
// values a coercion cannot handle also pass through rather than failing.
func ApplyTransform(v cty.Value, kind model.TransformKind) cty.Value {
	if v == cty.NilVal || v.IsNull() || IsUnresolved(v) {
		return v
	}
	switch kind {
	case model.TransformBool:
		return cty.BoolVal(Truthy(v))
	case model.TransformNegate:
		return cty.BoolVal(!Truthy(v))
	case model.TransformString:
		return cty.StringVal(Stringify(v))
	case model.TransformNumber:
		if out, err := convert.Convert(v, cty.Number); err == nil {
			return out
		}
		return v
	case model.TransformUpper:
		return cty.StringVal(strings.ToUpper(Stringify(v)))
	case model.TransformLower:
		return cty.StringVal(strings.ToLower(Stringify(v)))
	}
	return v
}

// Truthy defines truthiness for ternary and classnames combinators: null
// and the unresolved sentinel are false, booleans are themselves, strings
// are true when non-empty, numbers when non-zero, and collections when
// non-empty.
func Truthy(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || IsUnresolved(v) {
		return false
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.String:
		return v.AsString() != ""
	case ty == cty.Number:
		return v.AsBigFloat().Sign() != 0
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType() ||
		ty.IsMapType() || ty.IsObjectType():
		return v.LengthInt() > 0
	}
	return true
}

// Stringify renders a resolved value for text content and join combinators.
// Null renders as the empty string; unresolved sentinels render their path
// so broken output is traceable rather than silent.
func Stringify(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return ""
	}
	if IsUnresolved(v) {
		return "{unresolved:" + UnresolvedPath(v) + "}"
	}
	if v.Type() == cty.String {
		return v.AsString()
	}
	if out, err := convert.Convert(v, cty.String); err == nil {
		return out.AsString()
	}
	return v.GoString()
}

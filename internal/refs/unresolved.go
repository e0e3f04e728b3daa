package refs

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

type unresolvedToken struct {
	Path string
}

// unresolvedType is a capsule type wrapping the path of a token that could
// not be resolved. Capsule values survive stringification and container
// nesting without being mistaken for author data.
var unresolvedType = cty.Capsule("unresolved", reflect.TypeOf(unresolvedToken{}))

// Unresolved returns the sentinel value for a token path that did not
// resolve and had no fallback. Resolution is total: callers receive this
// value instead of an error, and only the validator escalates it.
func Unresolved(path string) cty.Value {
	return cty.CapsuleVal(unresolvedType, &unresolvedToken{Path: path})
}

// IsUnresolved reports whether v is the unresolved sentinel.
func IsUnresolved(v cty.Value) bool {
	return v != cty.NilVal && v.Type().Equals(unresolvedType)
}

// UnresolvedPath returns the token path carried by an unresolved sentinel.
func UnresolvedPath(v cty.Value) string {
	if !IsUnresolved(v) {
		return ""
	}
	return v.EncapsulatedValue().(*unresolvedToken).Path
}

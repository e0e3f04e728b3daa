// Package tokens flattens a raw, nested token table into dot-path keys and
// resolves paths against it with context cascading (e.g. light/dark).
//
// Flattening happens once per package; every lookup afterwards is a map
// access. Resolution is total: a miss is reported through the boolean
// return, never through an error.
package tokens

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Entry is one flattened token. Either Value is set, or Contexts holds the
// per-context values with an optional declared Default context name.
type Entry struct {
	Value    cty.Value
	Contexts map[string]cty.Value
	Default  string
}

// Contextual reports whether the entry varies by context.
func (e Entry) Contextual() bool { return e.Contexts != nil }

// Table maps dot-path token names to entries.
type Table map[string]Entry

// metadata keys that may sit beside a leaf's value without becoming paths.
func isMetadataKey(k string) bool {
	if k == "" {
		return true
	}
	if k[0] == '$' {
		return true
	}
	switch k {
	case "description", "type", "comment":
		return true
	}
	return false
}

// Flatten walks the raw nested table and produces dot-path keys. A map
// containing a "value" key is a plain leaf; a map containing a "contexts"
// key is a contextual leaf with an optional "default" context name. Any
// other map is a group and recurses. Scalar values are leaves directly.
func Flatten(raw map[string]any) Table {
	t := make(Table)
	flattenInto(t, "", raw)
	return t
}

func flattenInto(t Table, prefix string, raw map[string]any) {
	for k, v := range raw {
		if prefix != "" && isMetadataKey(k) {
			continue
		}
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch node := v.(type) {
		case map[string]any:
			if inner, ok := node["value"]; ok {
				t[path] = Entry{Value: toCty(inner)}
				continue
			}
			if rawCtx, ok := node["contexts"]; ok {
				entry := Entry{Contexts: map[string]cty.Value{}}
				if ctxMap, ok := rawCtx.(map[string]any); ok {
					for name, cv := range ctxMap {
						entry.Contexts[name] = toCty(cv)
					}
				}
				if def, ok := node["default"].(string); ok {
					entry.Default = def
				}
				t[path] = entry
				continue
			}
			flattenInto(t, path, node)
		default:
			t[path] = Entry{Value: toCty(v)}
		}
	}
}

// Resolve looks up a dot-path token. For contextual entries the cascade is:
// the requested context, then the declared default context, then the first
// available context in lexicographic order. The second return is false only
// when the path is absent from the table.
func (t Table) Resolve(path, context string) (cty.Value, bool) {
	entry, ok := t[path]
	if !ok {
		return cty.NilVal, false
	}
	if !entry.Contextual() {
		return entry.Value, true
	}
	if context != "" {
		if v, ok := entry.Contexts[context]; ok {
			return v, true
		}
	}
	if entry.Default != "" {
		if v, ok := entry.Contexts[entry.Default]; ok {
			return v, true
		}
	}
	names := make([]string, 0, len(entry.Contexts))
	for name := range entry.Contexts {
		names = append(names, name)
	}
	if len(names) == 0 {
		return cty.NilVal, true
	}
	sort.Strings(names)
	return entry.Contexts[names[0]], true
}

// Paths returns every flattened token path, sorted.
func (t Table) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Merge layers over on top of t and returns a new table. Used by the
// registry for package-extension merging: entries in over win.
func (t Table) Merge(over Table) Table {
	merged := make(Table, len(t)+len(over))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

// toCty converts a decoded YAML/JSON value into a cty value. Unconvertible
// values degrade to their string rendering rather than failing; token data
// is author-supplied and resolution must stay total.
func toCty(v any) cty.Value {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	switch x := v.(type) {
	case string:
		return cty.StringVal(x)
	case bool:
		return cty.BoolVal(x)
	case int:
		return cty.NumberIntVal(int64(x))
	case int64:
		return cty.NumberIntVal(x)
	case float64:
		return cty.NumberFloatVal(x)
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal
		}
		vals := make([]cty.Value, len(x))
		for i, item := range x {
			vals[i] = toCty(item)
		}
		return cty.TupleVal(vals)
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal
		}
		vals := make(map[string]cty.Value, len(x))
		for k, item := range x {
			vals[k] = toCty(item)
		}
		return cty.ObjectVal(vals)
	}
	if ty, err := gocty.ImpliedType(v); err == nil {
		if cv, err := gocty.ToCtyValue(v, ty); err == nil {
			return cv
		}
	}
	return cty.StringVal(fmt.Sprintf("%v", v))
}

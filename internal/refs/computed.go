package refs

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/weftui/weft/internal/model"
)

// resolveComputed evaluates a computed-value combinator. Inputs are
// expressions and are resolved recursively before combination.
func (r *Resolver) resolveComputed(c *model.Computed) cty.Value {
	switch c.Kind {
	case model.ComputedConcat:
		var b strings.Builder
		for _, in := range c.Inputs {
			b.WriteString(Stringify(r.Resolve(in)))
		}
		return cty.StringVal(b.String())

	case model.ComputedTemplate:
		if len(c.Inputs) == 0 {
			return cty.StringVal("")
		}
		tmpl := Stringify(r.Resolve(c.Inputs[0]))
		args := make([]string, len(c.Inputs)-1)
		for i, in := range c.Inputs[1:] {
			args[i] = Stringify(r.Resolve(in))
		}
		return cty.StringVal(fillTemplate(tmpl, args))

	case model.ComputedTernary:
		if len(c.Inputs) == 0 {
			return cty.NilVal
		}
		cond := Truthy(r.Resolve(c.Inputs[0]))
		if cond {
			if len(c.Inputs) > 1 {
				return r.Resolve(c.Inputs[1])
			}
			return cty.NilVal
		}
		if len(c.Inputs) > 2 {
			return r.Resolve(c.Inputs[2])
		}
		return cty.NilVal

	case model.ComputedClassNames:
		var parts []string
		for _, in := range c.Inputs {
			v := r.Resolve(in)
			if !Truthy(v) {
				continue
			}
			parts = append(parts, Stringify(v))
		}
		return cty.StringVal(strings.Join(parts, " "))
	}
	return cty.NilVal
}

// fillTemplate substitutes positional {n} placeholders. Placeholders with
// no matching argument are left intact so authoring mistakes stay visible.
func fillTemplate(tmpl string, args []string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		open += i
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		end += open
		idx, err := strconv.Atoi(tmpl[open+1 : end])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteString(tmpl[i : end+1])
		} else {
			b.WriteString(tmpl[i:open])
			b.WriteString(args[idx])
		}
		i = end + 1
	}
	return b.String()
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expr Expr
		want string
	}{
		{&TokenRef{Path: "color.primary"}, "token.color.primary"},
		{&PropRef{Name: "label"}, "prop.label"},
		{&PropTransform{Name: "disabled", Kind: TransformNegate}, "negate(prop.disabled)"},
		{&EventRef{Name: "press"}, "event.press"},
		{&AssetRef{Path: "icons.check"}, "asset.icons.check"},
		{&ExternalRef{Package: "base", Path: "color.bg"}, "pkg.base.color.bg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.expr.Describe())
	}
}

func TestWalk_VisitsNestedReferences(t *testing.T) {
	t.Parallel()

	expr := &Computed{
		Kind: ComputedTernary,
		Inputs: []Expr{
			&PropRef{Name: "disabled"},
			&TokenRef{Path: "color.muted"},
			&Object{Entries: map[string]Expr{
				"deep": &TokenRef{
					Path:     "color.primary",
					Fallback: &TokenRef{Path: "color.backup"},
				},
			}},
		},
	}

	var tokens, props []string
	Walk(expr, func(e Expr) bool {
		switch x := e.(type) {
		case *TokenRef:
			tokens = append(tokens, x.Path)
		case *PropRef:
			props = append(props, x.Name)
		}
		return true
	})

	assert.Equal(t, []string{"color.muted", "color.primary", "color.backup"}, tokens)
	assert.Equal(t, []string{"disabled"}, props)
}

func TestWalk_StopsWhenVisitorDeclines(t *testing.T) {
	t.Parallel()

	expr := &List{Items: []Expr{
		&TokenRef{Path: "a"},
		&TokenRef{Path: "b"},
	}}

	var seen int
	Walk(expr, func(e Expr) bool {
		if _, ok := e.(*List); ok {
			return false
		}
		seen++
		return true
	})
	assert.Zero(t, seen, "declining the container must prune its children")
}

func TestStr(t *testing.T) {
	t.Parallel()

	lit := Str("hello")
	assert.Equal(t, cty.StringVal("hello"), lit.Value)
}

func TestStyleSet_Merge(t *testing.T) {
	t.Parallel()

	base := StyleSet{"color": Str("black"), "padding": Str("8px")}
	over := StyleSet{"color": Str("blue")}

	merged := base.Merge(over)

	assert.Equal(t, Str("blue"), merged["color"])
	assert.Equal(t, Str("8px"), merged["padding"])
	assert.Equal(t, Str("black"), base["color"], "merge must not mutate the receiver")
}

func TestStyleSet_MergeNil(t *testing.T) {
	t.Parallel()

	var base StyleSet
	merged := base.Merge(StyleSet{"color": Str("red")})
	assert.Equal(t, Str("red"), merged["color"])

	again := merged.Merge(nil)
	assert.Equal(t, Str("red"), again["color"])
}

func TestStyleSet_Clone(t *testing.T) {
	t.Parallel()

	base := StyleSet{"color": Str("black")}
	clone := base.Clone()
	clone["color"] = Str("white")

	assert.Equal(t, Str("black"), base["color"])
}
